package discovery

import (
	"context"

	"github.com/catherinevee/inventorymgr/internal/cache"
	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

// Directory resolves the compartments reachable from the tenancy
type Directory struct {
	deps *deps
}

// ListScopes returns the root scope first followed by every compartment of
// the subtree, unique by identifier. It never fails: a remote error yields a
// single uncached fallback scope.
func (d *Directory) ListScopes(ctx context.Context) []models.Scope {
	key := cache.CompartmentsKey()
	log := d.deps.log.WithContext(ctx)

	var cached []models.Scope
	if d.deps.cache.Get(ctx, key, &cached) {
		return cached
	}

	clients := d.deps.clients()
	if !d.deps.policy.IsLive() || clients.Identity == nil {
		scopes := mockScopes()
		d.deps.cache.Set(ctx, key, scopes, cache.TopologyTTL)
		log.Debug("Serving mock compartments", logger.Int("count", len(scopes)))
		return scopes
	}

	ctx, span := tracer.Start(ctx, "directory.list_scopes")
	defer span.End()

	tenancyID := d.deps.policy.TenancyID()
	compartments, err := concurrency.Call(ctx, d.deps.gate, "ListCompartments", func(ctx context.Context) ([]providers.Compartment, error) {
		return d.deps.clients().Identity.ListCompartments(ctx, tenancyID)
	})
	if err != nil {
		span.RecordError(err)
		log.Error("Failed to list compartments, serving fallback scope", logger.Error(err))
		return errorFallbackScopes()
	}

	scopes := buildScopes(tenancyID, compartments)
	d.deps.cache.Set(ctx, key, scopes, cache.TopologyTTL)
	log.Info("Listed compartments", logger.Int("count", len(scopes)))
	return scopes
}

// buildScopes prepends the synthesized root and dedupes by identifier, first wins
func buildScopes(tenancyID string, compartments []providers.Compartment) []models.Scope {
	scopes := make([]models.Scope, 0, len(compartments)+1)
	scopes = append(scopes, models.Scope{
		ID:             tenancyID,
		Name:           models.RootScopeName,
		Description:    models.RootScopeDescription,
		LifecycleState: "ACTIVE",
	})
	seen := map[string]struct{}{tenancyID: {}}

	for _, c := range compartments {
		if c.ID == "" {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}

		name := c.Name
		if name == models.ProviderRootName {
			name = models.RootScopeName
		}
		scopes = append(scopes, models.Scope{
			ID:             c.ID,
			Name:           name,
			Description:    stringOr(c.Description, models.DefaultDescription),
			LifecycleState: c.LifecycleState,
			ParentID:       stringOr(c.CompartmentID, tenancyID),
			TimeCreated:    utc(c.TimeCreated),
		})
	}
	return scopes
}
