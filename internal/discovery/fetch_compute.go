package discovery

import (
	"context"

	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

func listComputeInstances(ctx context.Context, d *deps, scopeID string) ([]models.Resource, error) {
	client := d.clients().Compute
	instances, err := concurrency.Call(ctx, d.gate, "ListInstances", func(ctx context.Context) ([]providers.Instance, error) {
		return client.ListInstances(ctx, scopeID)
	})
	if err != nil {
		return nil, err
	}

	region := d.policy.Region()
	out := make([]models.Resource, 0, len(instances))
	for _, in := range instances {
		out = append(out, models.Resource{
			Type:           models.ResourceTypeComputeInstance,
			ID:             in.ID,
			DisplayName:    in.DisplayName,
			LifecycleState: in.LifecycleState,
			TimeCreated:    utc(in.TimeCreated),
			Compute: &models.ComputeAttributes{
				Shape:              stringOr(in.Shape, unknownValue),
				AvailabilityDomain: stringOr(in.AvailabilityDomain, unknownValue),
				Region:             stringOr(in.Region, region),
			},
		})
	}
	return out, nil
}
