package discovery

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/catherinevee/inventorymgr/internal/cache"
	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/degradation"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/observability/metrics"
	errorspkg "github.com/catherinevee/inventorymgr/internal/shared/errors"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

// DefaultMaxConcurrency bounds the fan-out when Options leaves it unset
const DefaultMaxConcurrency = 10

// Aggregation modes reported to metrics and spans
const (
	modeSingleScope = "single_scope"
	modeAllScopes   = "all_scopes"
)

// Options wires the engine's collaborators. Only Policy is required; the
// rest fall back to a disabled cache, a default gate and a no-op logger.
type Options struct {
	Policy         *degradation.Policy
	Cache          *cache.Aside
	Gate           *concurrency.Gate
	Metrics        *metrics.Metrics
	Logger         logger.Logger
	MaxConcurrency int
	Now            func() time.Time
}

// Engine aggregates inventory across categories and compartments
type Engine struct {
	deps      *deps
	directory *Directory
	fetchers  map[models.Category]*Fetcher
	metrics   *metrics.Metrics
	log       logger.Logger
}

// NewEngine creates a new aggregation engine
func NewEngine(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithFields(logger.String("component", "discovery"))

	if opts.Policy == nil {
		opts.Policy = degradation.NewMock("no provider configured")
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewAside(nil, opts.Metrics, log)
	}
	if opts.Gate == nil {
		opts.Gate = concurrency.NewGate(concurrency.DefaultGateConfig(), opts.Metrics)
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	d := &deps{
		policy:         opts.Policy,
		cache:          opts.Cache,
		gate:           opts.Gate,
		log:            log,
		maxConcurrency: opts.MaxConcurrency,
		now:            opts.Now,
	}

	return &Engine{
		deps:      d,
		directory: &Directory{deps: d},
		fetchers:  newFetchers(d),
		metrics:   opts.Metrics,
		log:       log,
	}
}

// IsLive reports whether the engine serves the live provider
func (e *Engine) IsLive() bool {
	return e.deps.policy.IsLive()
}

// TenancyID returns the root scope identifier
func (e *Engine) TenancyID() string {
	return e.deps.policy.TenancyID()
}

// Fetcher returns the fetcher of a category
func (e *Engine) Fetcher(category models.Category) (*Fetcher, bool) {
	f, ok := e.fetchers[category]
	return f, ok
}

// ListScopes returns every compartment reachable from the tenancy
func (e *Engine) ListScopes(ctx context.Context) []models.Scope {
	return e.directory.ListScopes(ctx)
}

// ListResources lists one category in one scope. An empty scope means the root.
func (e *Engine) ListResources(ctx context.Context, category, scopeID string) ([]models.Resource, error) {
	c, ok := models.ParseCategory(category)
	if !ok {
		return nil, errorspkg.NewValidationError("category", "unknown resource category: "+category)
	}
	if err := ctx.Err(); err != nil {
		return nil, errorspkg.NewUnavailableError("request cancelled before listing resources", err)
	}
	if scopeID == "" {
		scopeID = e.TenancyID()
	}
	return e.fetchers[c].List(ctx, scopeID), nil
}

// IsRootScope reports whether scopeID selects the all-compartments path
func (e *Engine) IsRootScope(scopeID string) bool {
	switch scopeID {
	case "", models.AllCompartments, models.MockRootID, e.TenancyID():
		return true
	}
	return false
}

// GetAllResources aggregates the requested categories for one scope, or for
// every scope when the root is requested. An empty filter selects every
// category; unknown names are ignored. The only failures are a cancelled
// request and an empty compartment directory.
func (e *Engine) GetAllResources(ctx context.Context, scopeID string, filter []string) (*models.AggregateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, errorspkg.NewUnavailableError("request cancelled before aggregation", err)
	}

	categories := e.resolveFilter(ctx, filter)
	mode := modeSingleScope
	if e.IsRootScope(scopeID) {
		mode = modeAllScopes
	}

	ctx, span := tracer.Start(ctx, "engine.get_all_resources")
	span.SetAttributes(
		attribute.String("compartment_id", scopeID),
		attribute.String("mode", mode),
		attribute.Int("categories", len(categories)),
	)
	defer span.End()

	start := time.Now()
	var (
		resp *models.AggregateResponse
		err  error
	)
	if mode == modeAllScopes {
		resp, err = e.aggregateAll(ctx, categories)
	} else {
		resp = e.aggregateScope(ctx, scopeID, categories)
	}
	e.metrics.RecordAggregation(mode, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	for c, resources := range resp.Resources {
		e.metrics.SetDiscoveredResources(string(c), len(resources))
	}
	span.SetAttributes(attribute.Int("total_resources", resp.TotalResources))

	e.log.WithContext(ctx).Info("Aggregated resources",
		logger.String("compartment_id", resp.CompartmentID),
		logger.String("mode", mode),
		logger.Int("total_resources", resp.TotalResources),
		logger.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

func (e *Engine) aggregateScope(ctx context.Context, scopeID string, categories []models.Category) *models.AggregateResponse {
	acc := newAccumulator(categories)
	for i, resources := range e.fetchCategories(ctx, scopeID, categories) {
		acc.add(categories[i], scopeID, resources)
	}
	return acc.response(scopeID, e.deps.now(), 0)
}

// aggregateAll walks the scopes one at a time, fetching the categories of
// each scope in parallel.
func (e *Engine) aggregateAll(ctx context.Context, categories []models.Category) (*models.AggregateResponse, error) {
	scopes := e.directory.ListScopes(ctx)
	if len(scopes) == 0 {
		return nil, errorspkg.NewUnavailableError("no compartments could be resolved", nil)
	}

	log := e.log.WithContext(ctx)
	acc := newAccumulator(categories)
	queried := 0
	for _, scope := range scopes {
		if ctx.Err() != nil {
			log.Warn("Aggregation cancelled, returning partial inventory",
				logger.Int("compartments_queried", queried),
				logger.Error(ctx.Err()),
			)
			break
		}

		for i, resources := range e.fetchCategories(ctx, scope.ID, categories) {
			tagged := make([]models.Resource, len(resources))
			for j, r := range resources {
				tagged[j] = r.WithSourceScope(scope.Name)
			}
			acc.add(categories[i], scope.ID, tagged)
		}
		queried++
	}

	return acc.response(models.AllCompartments, e.deps.now(), queried), nil
}

// fetchCategories lists every category of one scope concurrently. Slot i
// holds the records of categories[i].
func (e *Engine) fetchCategories(ctx context.Context, scopeID string, categories []models.Category) [][]models.Resource {
	slots := make([][]models.Resource, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.deps.maxConcurrency)
	for i, c := range categories {
		f := e.fetchers[c]
		g.Go(func() error {
			slots[i] = f.List(gctx, scopeID)
			return nil
		})
	}
	_ = g.Wait()

	return slots
}

func (e *Engine) resolveFilter(ctx context.Context, filter []string) []models.Category {
	if len(filter) == 0 {
		return models.AllCategories()
	}

	seen := make(map[models.Category]bool, len(filter))
	out := make([]models.Category, 0, len(filter))
	for _, name := range filter {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, ok := models.ParseCategory(name)
		if !ok {
			e.log.WithContext(ctx).Warn("Ignoring unknown resource category", logger.String("category", name))
			continue
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Invalidate drops the cached inventories of a scope, and the compartment
// topology when the root is given. It returns the number of keys removed.
func (e *Engine) Invalidate(ctx context.Context, scopeID string) int {
	if scopeID == "" || scopeID == models.AllCompartments {
		scopeID = e.TenancyID()
	}

	removed := 0
	for _, c := range models.AllCategories() {
		if e.deps.cache.Delete(ctx, e.fetchers[c].CacheKey(scopeID)) {
			removed++
		}
	}
	if e.IsRootScope(scopeID) && e.deps.cache.Delete(ctx, cache.CompartmentsKey()) {
		removed++
	}

	e.log.WithContext(ctx).Info("Invalidated cached inventory",
		logger.String("compartment_id", scopeID),
		logger.Int("keys_removed", removed),
	)
	return removed
}

// accumulator merges category sequences, dropping repeated
// (resource_type, scope, id) triples while keeping discovery order.
type accumulator struct {
	resources map[models.Category][]models.Resource
	seen      map[dedupKey]struct{}
}

type dedupKey struct {
	kind  models.ResourceType
	scope string
	id    string
}

func newAccumulator(categories []models.Category) *accumulator {
	acc := &accumulator{
		resources: make(map[models.Category][]models.Resource, len(categories)),
		seen:      make(map[dedupKey]struct{}),
	}
	for _, c := range categories {
		acc.resources[c] = []models.Resource{}
	}
	return acc
}

func (a *accumulator) add(c models.Category, scopeID string, resources []models.Resource) {
	for _, r := range resources {
		k := dedupKey{kind: r.Type, scope: scopeID, id: r.ID}
		if _, dup := a.seen[k]; dup {
			continue
		}
		a.seen[k] = struct{}{}
		a.resources[c] = append(a.resources[c], r)
	}
}

func (a *accumulator) response(compartmentID string, now time.Time, queried int) *models.AggregateResponse {
	resp := &models.AggregateResponse{
		CompartmentID:       compartmentID,
		Resources:           a.resources,
		LastUpdated:         now.UTC(),
		CompartmentsQueried: queried,
	}
	resp.TotalResources = resp.Count()
	return resp
}
