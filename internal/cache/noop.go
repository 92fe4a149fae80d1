package cache

import (
	"context"
	"time"
)

// NoopStore is used when caching is disabled or the backend was unreachable at startup
type NoopStore struct{}

func (NoopStore) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (NoopStore) SetWithTTL(context.Context, string, []byte, time.Duration) bool { return false }

func (NoopStore) Delete(context.Context, string) bool { return false }

func (NoopStore) Ping(context.Context) error { return ErrDisabled }

func (NoopStore) Name() string { return "none" }
