package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/catherinevee/inventorymgr/internal/logger"
	errorspkg "github.com/catherinevee/inventorymgr/internal/shared/errors"
)

// RedisConfig configures the Redis connection
type RedisConfig struct {
	// Standalone Redis
	Addr     string
	Password string
	DB       int

	// Redis Cluster
	ClusterAddrs []string

	// Connection options
	PoolSize       int
	MinIdleConns   int
	MaxRetries     int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	KeyPrefix string
}

// DefaultRedisConfig returns default Redis configuration
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:           "localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		MaxRetries:     1,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
	}
}

// RedisStore is a Store backed by Redis
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	log    logger.Logger
}

// NewRedisStore connects to Redis and pings it once. A failed ping is
// returned as a cache error so the caller can fall back to NoopStore for
// the lifetime of the process.
func NewRedisStore(config *RedisConfig, log logger.Logger) (*RedisStore, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}
	if log == nil {
		log = logger.Nop()
	}

	var client redis.UniversalClient
	if len(config.ClusterAddrs) > 0 {
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        config.ClusterAddrs,
			Password:     config.Password,
			PoolSize:     config.PoolSize,
			MinIdleConns: config.MinIdleConns,
			MaxRetries:   config.MaxRetries,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			DialTimeout:  config.ConnectTimeout,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:         config.Addr,
			Password:     config.Password,
			DB:           config.DB,
			PoolSize:     config.PoolSize,
			MinIdleConns: config.MinIdleConns,
			MaxRetries:   config.MaxRetries,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			DialTimeout:  config.ConnectTimeout,
		})
	}

	timeout := config.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errorspkg.NewCacheError("connect", config.Addr, err)
	}

	store := &RedisStore{
		client: client,
		prefix: config.KeyPrefix,
		log:    log.WithFields(logger.String("component", "redis_store")),
	}

	store.log.Info("Redis cache initialized",
		logger.String("addr", config.Addr),
		logger.String("prefix", config.KeyPrefix),
	)

	return store, nil
}

// Get retrieves a value
func (rs *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := rs.client.Get(ctx, rs.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			rs.log.Warn("Failed to get value from Redis",
				logger.String("key", key),
				logger.Error(errorspkg.NewCacheError("get", key, err)),
			)
		}
		return nil, false
	}
	return data, true
}

// SetWithTTL stores a value
func (rs *RedisStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if err := rs.client.Set(ctx, rs.prefix+key, value, ttl).Err(); err != nil {
		rs.log.Warn("Failed to set value in Redis",
			logger.String("key", key),
			logger.Error(errorspkg.NewCacheError("set", key, err)),
		)
		return false
	}
	return true
}

// Delete removes a value
func (rs *RedisStore) Delete(ctx context.Context, key string) bool {
	if err := rs.client.Del(ctx, rs.prefix+key).Err(); err != nil {
		rs.log.Warn("Failed to delete value from Redis",
			logger.String("key", key),
			logger.Error(errorspkg.NewCacheError("delete", key, err)),
		)
		return false
	}
	return true
}

// Ping checks the connection
func (rs *RedisStore) Ping(ctx context.Context) error {
	if err := rs.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Name returns "redis"
func (rs *RedisStore) Name() string { return "redis" }

// Close closes the client
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
