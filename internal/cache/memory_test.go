package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	ms := NewMemoryStore(0, 0)
	defer ms.Close()
	ctx := context.Background()

	assert.True(t, ms.SetWithTTL(ctx, "k", []byte("v"), time.Minute))

	got, ok := ms.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	_, ok = ms.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ms := NewMemoryStore(0, 0)
	ctx := context.Background()

	value := []byte("abc")
	ms.SetWithTTL(ctx, "k", value, time.Minute)
	value[0] = 'z'

	got, _ := ms.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _ := ms.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStoreExpiration(t *testing.T) {
	ms := NewMemoryStore(0, 0)
	ctx := context.Background()
	now := time.Now()
	ms.now = func() time.Time { return now }

	ms.SetWithTTL(ctx, "k", []byte("v"), time.Second)

	_, ok := ms.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = ms.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, ms.Len())
}

func TestMemoryStoreRejectsNonPositiveTTL(t *testing.T) {
	ms := NewMemoryStore(0, 0)
	assert.False(t, ms.SetWithTTL(context.Background(), "k", []byte("v"), 0))
	assert.Equal(t, 0, ms.Len())
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ms := NewMemoryStore(2, 0)
	ctx := context.Background()
	now := time.Now()
	ms.now = func() time.Time { return now }

	ms.SetWithTTL(ctx, "a", []byte("1"), time.Minute)
	now = now.Add(time.Millisecond)
	ms.SetWithTTL(ctx, "b", []byte("2"), time.Minute)
	now = now.Add(time.Millisecond)
	ms.Get(ctx, "a")
	now = now.Add(time.Millisecond)
	ms.SetWithTTL(ctx, "c", []byte("3"), time.Minute)

	assert.Equal(t, 2, ms.Len())
	_, ok := ms.Get(ctx, "b")
	assert.False(t, ok, "b was least recently used")
	_, ok = ms.Get(ctx, "a")
	assert.True(t, ok)
}

func TestMemoryStoreSweep(t *testing.T) {
	ms := NewMemoryStore(0, 0)
	ctx := context.Background()
	now := time.Now()
	ms.now = func() time.Time { return now }

	ms.SetWithTTL(ctx, "short", []byte("1"), time.Second)
	ms.SetWithTTL(ctx, "long", []byte("2"), time.Hour)

	now = now.Add(time.Minute)
	ms.sweep()
	assert.Equal(t, 1, ms.Len())
}

func TestMemoryStoreConcurrency(t *testing.T) {
	ms := NewMemoryStore(50, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", id%10)
			ms.SetWithTTL(ctx, key, []byte("v"), time.Minute)
			ms.Get(ctx, key)
			ms.Delete(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, ms.Len(), 10)
}
