package discovery

import (
	"context"

	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

func listBlockVolumes(ctx context.Context, d *deps, scopeID string) ([]models.Resource, error) {
	client := d.clients().BlockStorage
	volumes, err := concurrency.Call(ctx, d.gate, "ListVolumes", func(ctx context.Context) ([]providers.Volume, error) {
		return client.ListVolumes(ctx, scopeID)
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Resource, 0, len(volumes))
	for _, v := range volumes {
		out = append(out, models.Resource{
			Type:           models.ResourceTypeBlockVolume,
			ID:             v.ID,
			DisplayName:    v.DisplayName,
			LifecycleState: v.LifecycleState,
			TimeCreated:    utc(v.TimeCreated),
			Volume: &models.VolumeAttributes{
				SizeInGBs:          int64Or(v.SizeInGBs, 0),
				AvailabilityDomain: stringOr(v.AvailabilityDomain, unknownValue),
				VolumeGroupID:      stringValue(v.VolumeGroupID),
				IsHydrated:         boolOr(v.IsHydrated, true),
			},
		})
	}
	return out, nil
}

// listFileSystems queries every availability domain of the tenancy. A failing
// domain is skipped; failing to list the domains fails the category.
func listFileSystems(ctx context.Context, d *deps, scopeID string) ([]models.Resource, error) {
	clients := d.clients()
	tenancyID := d.policy.TenancyID()
	log := d.log.WithContext(ctx).WithFields(logger.String("compartment_id", scopeID))

	ads, err := concurrency.Call(ctx, d.gate, "ListAvailabilityDomains", func(ctx context.Context) ([]providers.AvailabilityDomain, error) {
		return clients.Identity.ListAvailabilityDomains(ctx, tenancyID)
	})
	if err != nil {
		return nil, err
	}

	return gather(ctx, d.maxConcurrency, len(ads), func(ctx context.Context, i int) []models.Resource {
		ad := ads[i].Name
		systems, err := concurrency.Call(ctx, d.gate, "ListFileSystems", func(ctx context.Context) ([]providers.FileSystem, error) {
			return clients.FileStorage.ListFileSystems(ctx, scopeID, ad)
		})
		if err != nil {
			log.Warn("Failed to get file systems", logger.String("availability_domain", ad), logger.Error(err))
			return nil
		}

		records := make([]models.Resource, 0, len(systems))
		for _, fs := range systems {
			records = append(records, models.Resource{
				Type:           models.ResourceTypeFileSystem,
				ID:             fs.ID,
				DisplayName:    fs.DisplayName,
				LifecycleState: fs.LifecycleState,
				TimeCreated:    utc(fs.TimeCreated),
				FileSystem: &models.FileSystemAttributes{
					AvailabilityDomain: stringOr(fs.AvailabilityDomain, ad),
					MeteredBytes:       int64Or(fs.MeteredBytes, 0),
				},
			})
		}
		return records
	}), nil
}
