package cache

import (
	"time"

	"github.com/catherinevee/inventorymgr/internal/logger"
)

// Backend types
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Options selects and configures a backend
type Options struct {
	Type       string
	Redis      *RedisConfig
	MaxEntries int
}

// NewStore builds the configured backend. Redis is attempted once; if it
// cannot be reached caching stays disabled for the process lifetime.
func NewStore(opts Options, log logger.Logger) Store {
	if log == nil {
		log = logger.Nop()
	}

	switch opts.Type {
	case BackendRedis:
		store, err := NewRedisStore(opts.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, caching disabled", logger.Error(err))
			return NoopStore{}
		}
		return store
	case BackendMemory:
		return NewMemoryStore(opts.MaxEntries, time.Minute)
	default:
		log.Info("Caching disabled", logger.String("type", opts.Type))
		return NoopStore{}
	}
}
