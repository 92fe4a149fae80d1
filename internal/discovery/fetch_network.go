package discovery

import (
	"context"

	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

// listNetworkResources returns every VCN followed by its subnets
func listNetworkResources(ctx context.Context, d *deps, scopeID string) ([]models.Resource, error) {
	client := d.clients().VirtualNetwork
	log := d.log.WithContext(ctx).WithFields(logger.String("compartment_id", scopeID))

	vcns, err := concurrency.Call(ctx, d.gate, "ListVcns", func(ctx context.Context) ([]providers.VCN, error) {
		return client.ListVCNs(ctx, scopeID)
	})
	if err != nil {
		return nil, err
	}

	return gather(ctx, d.maxConcurrency, len(vcns), func(ctx context.Context, i int) []models.Resource {
		vcn := vcns[i]
		records := []models.Resource{{
			Type:           models.ResourceTypeVCN,
			ID:             vcn.ID,
			DisplayName:    vcn.DisplayName,
			LifecycleState: vcn.LifecycleState,
			TimeCreated:    utc(vcn.TimeCreated),
			Network:        &models.NetworkAttributes{CIDRBlock: stringOr(vcn.CIDRBlock, unknownValue)},
		}}

		subnets, err := concurrency.Call(ctx, d.gate, "ListSubnets", func(ctx context.Context) ([]providers.Subnet, error) {
			return client.ListSubnets(ctx, scopeID, vcn.ID)
		})
		if err != nil {
			log.Warn("Failed to get subnets", logger.String("vcn_id", vcn.ID), logger.Error(err))
			return records
		}

		for _, s := range subnets {
			records = append(records, models.Resource{
				Type:           models.ResourceTypeSubnet,
				ID:             s.ID,
				DisplayName:    childName(s.DisplayName),
				LifecycleState: s.LifecycleState,
				ParentID:       vcn.ID,
				TimeCreated:    utc(s.TimeCreated),
				Network: &models.NetworkAttributes{
					CIDRBlock: stringOr(s.CIDRBlock, unknownValue),
					VCNID:     vcn.ID,
				},
			})
		}
		return records
	}), nil
}
