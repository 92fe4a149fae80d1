package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catherinevee/inventorymgr/internal/observability/metrics"
)

type record struct {
	ID   string `json:"id"`
	Size int    `json:"size"`
}

// failingStore accepts nothing
type failingStore struct{ NoopStore }

func (failingStore) Name() string { return "failing" }

func newTestAside() (*Aside, *MemoryStore) {
	ms := NewMemoryStore(0, 0)
	return NewAside(ms, metrics.NewMetrics(prometheus.NewRegistry()), nil), ms
}

func TestAsideRoundTrip(t *testing.T) {
	a, _ := newTestAside()
	ctx := context.Background()

	in := []record{{ID: "a", Size: 1}, {ID: "b", Size: 2}}
	require.True(t, a.Set(ctx, InventoryKey("compute", "c1"), in, InventoryTTL))

	var out []record
	require.True(t, a.Get(ctx, InventoryKey("compute", "c1"), &out))
	assert.Equal(t, in, out)
}

func TestAsideEmptyListIsAHit(t *testing.T) {
	a, _ := newTestAside()
	ctx := context.Background()

	require.True(t, a.Set(ctx, "oci:compute:c1", []record{}, InventoryTTL))

	var out []record
	assert.True(t, a.Get(ctx, "oci:compute:c1", &out))
	assert.Empty(t, out)
}

func TestAsideDecodeFailureIsAMiss(t *testing.T) {
	a, ms := newTestAside()
	ctx := context.Background()

	ms.SetWithTTL(ctx, "oci:compute:c1", []byte("{not json"), time.Minute)

	var out []record
	assert.False(t, a.Get(ctx, "oci:compute:c1", &out))

	stats := a.Stats(ctx)
	assert.Equal(t, int64(1), stats.Errors)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestAsideDisabled(t *testing.T) {
	a := NewAside(NoopStore{}, nil, nil)
	ctx := context.Background()

	assert.False(t, a.Enabled())
	assert.False(t, a.Set(ctx, "k", "v", time.Minute))
	var out string
	assert.False(t, a.Get(ctx, "k", &out))
	assert.False(t, a.Delete(ctx, "k"))
	assert.ErrorIs(t, a.Ping(ctx), ErrDisabled)

	stats := a.Stats(ctx)
	assert.Equal(t, "none", stats.Backend)
	assert.False(t, stats.Available)
}

func TestAsideNilStoreIsDisabled(t *testing.T) {
	assert.False(t, NewAside(nil, nil, nil).Enabled())
}

func TestAsideBackendFailuresAreCounted(t *testing.T) {
	a := NewAside(failingStore{}, nil, nil)
	ctx := context.Background()

	require.True(t, a.Enabled())
	assert.False(t, a.Set(ctx, "oci:compute:c1", []record{}, time.Minute))
	assert.False(t, a.Delete(ctx, "oci:compute:c1"))
	assert.Equal(t, int64(2), a.Stats(ctx).Errors)
}

func TestAsideUnencodableValue(t *testing.T) {
	a, _ := newTestAside()
	assert.False(t, a.Set(context.Background(), "k", make(chan int), time.Minute))
}

func TestAsideDeleteAndStats(t *testing.T) {
	a, _ := newTestAside()
	ctx := context.Background()

	a.Set(ctx, "k", "v", time.Minute)
	var out string
	a.Get(ctx, "k", &out)
	assert.True(t, a.Delete(ctx, "k"))
	a.Get(ctx, "k", &out)

	stats := a.Stats(ctx)
	assert.Equal(t, "memory", stats.Backend)
	assert.True(t, stats.Available)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, int64(1), stats.Deletes)
	assert.InDelta(t, 0.5, stats.HitRate, 0.0001)
}
