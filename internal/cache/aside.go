package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/observability/metrics"
	errorspkg "github.com/catherinevee/inventorymgr/internal/shared/errors"
)

// ErrDisabled is returned by Ping when caching is turned off
var ErrDisabled = errors.New("cache disabled")

// Stats is a snapshot of cache activity
type Stats struct {
	Backend   string  `json:"backend"`
	Enabled   bool    `json:"enabled"`
	Available bool    `json:"available"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Errors    int64   `json:"errors"`
	Sets      int64   `json:"sets"`
	Deletes   int64   `json:"deletes"`
	HitRate   float64 `json:"hit_rate"`
}

// Aside is the cache-aside layer: JSON values over a Store. It is advisory;
// every failure degrades to a miss or a false return.
type Aside struct {
	store   Store
	enabled bool
	metrics *metrics.Metrics
	log     logger.Logger

	hits    atomic.Int64
	misses  atomic.Int64
	errors  atomic.Int64
	sets    atomic.Int64
	deletes atomic.Int64
}

// NewAside wraps store. A nil store or a NoopStore yields a disabled cache.
func NewAside(store Store, m *metrics.Metrics, log logger.Logger) *Aside {
	if log == nil {
		log = logger.Nop()
	}
	if store == nil {
		store = NoopStore{}
	}
	_, noop := store.(NoopStore)

	return &Aside{
		store:   store,
		enabled: !noop,
		metrics: m,
		log:     log.WithFields(logger.String("component", "cache")),
	}
}

// Enabled reports whether a real backend is attached
func (a *Aside) Enabled() bool {
	return a.enabled
}

// Get decodes the value under key into dest. Absent keys, disabled caching
// and undecodable values all report false.
func (a *Aside) Get(ctx context.Context, key string, dest interface{}) bool {
	if !a.enabled {
		return false
	}

	op := operationOf(key)
	data, ok := a.store.Get(ctx, key)
	if !ok {
		a.misses.Add(1)
		a.metrics.RecordCacheMiss(op)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		a.errors.Add(1)
		a.misses.Add(1)
		a.metrics.RecordCacheError(op)
		a.metrics.RecordCacheMiss(op)
		a.log.Warn("Discarding undecodable cache entry",
			logger.String("key", key),
			logger.Error(errorspkg.NewCacheError("decode", key, err)),
		)
		return false
	}

	a.hits.Add(1)
	a.metrics.RecordCacheHit(op)
	a.log.Debug("Cache hit", logger.String("key", key))
	return true
}

// Set encodes value as JSON and stores it with ttl
func (a *Aside) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) bool {
	if !a.enabled {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		a.errors.Add(1)
		a.metrics.RecordCacheError(operationOf(key))
		a.log.Warn("Failed to encode cache value",
			logger.String("key", key),
			logger.Error(errorspkg.NewCacheError("encode", key, err)),
		)
		return false
	}

	if !a.store.SetWithTTL(ctx, key, data, ttl) {
		a.errors.Add(1)
		a.metrics.RecordCacheError(operationOf(key))
		return false
	}

	a.sets.Add(1)
	return true
}

// Delete removes key
func (a *Aside) Delete(ctx context.Context, key string) bool {
	if !a.enabled {
		return false
	}

	if !a.store.Delete(ctx, key) {
		a.errors.Add(1)
		a.metrics.RecordCacheError(operationOf(key))
		return false
	}

	a.deletes.Add(1)
	return true
}

// Ping checks the backend
func (a *Aside) Ping(ctx context.Context) error {
	if !a.enabled {
		return ErrDisabled
	}
	return a.store.Ping(ctx)
}

// Stats returns counters and backend availability
func (a *Aside) Stats(ctx context.Context) Stats {
	stats := Stats{
		Backend: a.store.Name(),
		Enabled: a.enabled,
		Hits:    a.hits.Load(),
		Misses:  a.misses.Load(),
		Errors:  a.errors.Load(),
		Sets:    a.sets.Load(),
		Deletes: a.deletes.Load(),
	}
	stats.Available = a.Ping(ctx) == nil

	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}

	return stats
}
