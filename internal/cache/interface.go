package cache

import (
	"context"
	"time"
)

// Store is a key to bytes store with per-entry TTL. Implementations never
// return errors from data operations: a failing backend behaves like an
// empty one.
type Store interface {
	// Get returns the stored bytes and whether the key was present
	Get(ctx context.Context, key string) ([]byte, bool)

	// SetWithTTL stores value under key and reports success
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) bool

	// Delete removes key and reports whether the backend accepted the delete
	Delete(ctx context.Context, key string) bool

	// Ping checks the backend is reachable
	Ping(ctx context.Context) error

	// Name identifies the backend in stats and logs
	Name() string
}
