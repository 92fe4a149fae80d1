package discovery

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/catherinevee/inventorymgr/internal/cache"
	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/degradation"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

var tracer = otel.Tracer("inventorymgr/discovery")

// deps is shared by the directory, every fetcher and the engine
type deps struct {
	policy         *degradation.Policy
	cache          *cache.Aside
	gate           *concurrency.Gate
	log            logger.Logger
	maxConcurrency int
	now            func() time.Time
}

func (d *deps) clients() *providers.Clients {
	return d.policy.Clients()
}

// liveFunc fetches and normalizes one category for one scope. A returned
// error is a top-level failure; nested failures are logged and folded.
type liveFunc func(ctx context.Context, d *deps, scopeID string) ([]models.Resource, error)

// Fetcher lists one category of resources for one scope, cache first
type Fetcher struct {
	category  models.Category
	keyOp     string
	available func(*providers.Clients) bool
	mock      func(d *deps) []models.Resource
	live      liveFunc
	deps      *deps
}

// Category returns the category served by f
func (f *Fetcher) Category() models.Category {
	return f.category
}

// CacheKey returns the inventory key for scopeID
func (f *Fetcher) CacheKey(scopeID string) string {
	return cache.InventoryKey(f.keyOp, scopeID)
}

// List never fails. Cached data wins; in degraded mode, or when the
// capability is missing, the fixed mock set is returned; a top-level live
// failure yields an empty, uncached sequence.
func (f *Fetcher) List(ctx context.Context, scopeID string) []models.Resource {
	key := f.CacheKey(scopeID)
	log := f.deps.log.WithContext(ctx).WithFields(
		logger.String("category", string(f.category)),
		logger.String("compartment_id", scopeID),
	)

	var cached []models.Resource
	if f.deps.cache.Get(ctx, key, &cached) {
		if cached == nil {
			cached = []models.Resource{}
		}
		return cached
	}

	if !f.deps.policy.IsLive() || !f.available(f.deps.clients()) {
		resources := f.mock(f.deps)
		f.deps.cache.Set(ctx, key, resources, cache.InventoryTTL)
		log.Debug("Serving mock resources", logger.Int("count", len(resources)))
		return resources
	}

	ctx, span := tracer.Start(ctx, "fetch."+string(f.category))
	span.SetAttributes(attribute.String("compartment_id", scopeID))
	defer span.End()

	resources, err := f.live(ctx, f.deps, scopeID)
	if err != nil {
		span.RecordError(err)
		log.Error("Failed to list resources", logger.Error(err))
		return []models.Resource{}
	}
	if resources == nil {
		resources = []models.Resource{}
	}

	f.deps.cache.Set(ctx, key, resources, cache.InventoryTTL)
	log.Info("Listed resources", logger.Int("count", len(resources)))
	return resources
}

func newFetchers(d *deps) map[models.Category]*Fetcher {
	defs := []*Fetcher{
		{
			category:  models.CategoryComputeInstances,
			keyOp:     "compute",
			available: func(c *providers.Clients) bool { return c.Compute != nil },
			mock:      mockComputeInstances,
			live:      listComputeInstances,
		},
		{
			category:  models.CategoryDatabases,
			keyOp:     "databases",
			available: func(c *providers.Clients) bool { return c.Database != nil },
			mock:      mockDatabases,
			live:      listDatabases,
		},
		{
			category:  models.CategoryOKEClusters,
			keyOp:     "oke",
			available: func(c *providers.Clients) bool { return c.ContainerEngine != nil },
			mock:      mockClusters,
			live:      listClusters,
		},
		{
			category:  models.CategoryAPIGateways,
			keyOp:     "api_gateways",
			available: func(c *providers.Clients) bool { return c.APIGateway != nil },
			mock:      mockGateways,
			live:      listGateways,
		},
		{
			category:  models.CategoryLoadBalancers,
			keyOp:     "load_balancers",
			available: func(c *providers.Clients) bool { return c.LoadBalancer != nil },
			mock:      mockLoadBalancers,
			live:      listLoadBalancers,
		},
		{
			category:  models.CategoryNetworkResources,
			keyOp:     "network",
			available: func(c *providers.Clients) bool { return c.VirtualNetwork != nil },
			mock:      mockNetworkResources,
			live:      listNetworkResources,
		},
		{
			category:  models.CategoryBlockVolumes,
			keyOp:     "block_volumes",
			available: func(c *providers.Clients) bool { return c.BlockStorage != nil },
			mock:      mockBlockVolumes,
			live:      listBlockVolumes,
		},
		{
			category:  models.CategoryFileSystems,
			keyOp:     "file_systems",
			available: func(c *providers.Clients) bool { return c.FileStorage != nil && c.Identity != nil },
			mock:      mockFileSystems,
			live:      listFileSystems,
		},
	}

	fetchers := make(map[models.Category]*Fetcher, len(defs))
	for _, f := range defs {
		f.deps = d
		fetchers[f.category] = f
	}
	return fetchers
}
