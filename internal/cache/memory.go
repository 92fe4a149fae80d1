package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value      []byte
	expiration time.Time
	lastAccess time.Time
}

// MemoryStore is an in-process Store with TTL expiry and LRU eviction once
// maxEntries is reached.
type MemoryStore struct {
	mu          sync.RWMutex
	items       map[string]*memoryEntry
	maxEntries  int
	now         func() time.Time
	stopCleaner chan struct{}
	stopOnce    sync.Once
}

// NewMemoryStore creates a memory store. A cleanupInterval of zero disables
// the background sweeper; expired entries are still dropped on read.
func NewMemoryStore(maxEntries int, cleanupInterval time.Duration) *MemoryStore {
	ms := &MemoryStore{
		items:       make(map[string]*memoryEntry),
		maxEntries:  maxEntries,
		now:         time.Now,
		stopCleaner: make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go ms.cleanupExpired(cleanupInterval)
	}

	return ms
}

// Get retrieves a value
func (ms *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	entry, exists := ms.items[key]
	if !exists {
		return nil, false
	}

	now := ms.now()
	if now.After(entry.expiration) {
		delete(ms.items, key)
		return nil, false
	}

	entry.lastAccess = now
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true
}

// SetWithTTL stores a value. A non-positive ttl is rejected.
func (ms *MemoryStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.items[key]; !exists && ms.maxEntries > 0 && len(ms.items) >= ms.maxEntries {
		ms.evictLRU()
	}

	now := ms.now()
	stored := make([]byte, len(value))
	copy(stored, value)
	ms.items[key] = &memoryEntry{
		value:      stored,
		expiration: now.Add(ttl),
		lastAccess: now,
	}

	return true
}

// Delete removes a value
func (ms *MemoryStore) Delete(_ context.Context, key string) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
	return true
}

// Ping always succeeds
func (ms *MemoryStore) Ping(context.Context) error { return nil }

// Name returns "memory"
func (ms *MemoryStore) Name() string { return "memory" }

// Len returns the number of entries, expired ones included until swept
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.items)
}

// Close stops the background sweeper
func (ms *MemoryStore) Close() {
	ms.stopOnce.Do(func() { close(ms.stopCleaner) })
}

// evictLRU drops the least recently used entry. Caller holds the lock.
func (ms *MemoryStore) evictLRU() {
	var oldestKey string
	var oldest time.Time

	for key, entry := range ms.items {
		if oldestKey == "" || entry.lastAccess.Before(oldest) {
			oldestKey = key
			oldest = entry.lastAccess
		}
	}

	if oldestKey != "" {
		delete(ms.items, oldestKey)
	}
}

func (ms *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.sweep()
		case <-ms.stopCleaner:
			return
		}
	}
}

func (ms *MemoryStore) sweep() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, entry := range ms.items {
		if now.After(entry.expiration) {
			delete(ms.items, key)
		}
	}
}
