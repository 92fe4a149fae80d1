// Package app assembles the inventory service from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/catherinevee/inventorymgr/internal/api"
	"github.com/catherinevee/inventorymgr/internal/cache"
	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/degradation"
	"github.com/catherinevee/inventorymgr/internal/discovery"
	"github.com/catherinevee/inventorymgr/internal/infrastructure/config"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/observability/health"
	"github.com/catherinevee/inventorymgr/internal/observability/metrics"
	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/internal/providers/oci"
)

// Version is reported by the health endpoint and the CLI
var Version = "dev"

// App holds the wired services
type App struct {
	Config   *config.Config
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Cache    *cache.Aside
	Policy   *degradation.Policy
	Engine   *discovery.Engine
	Health   *health.Service

	store cache.Store
	log   logger.Logger
}

// Option overrides a collaborator, mainly for tests
type Option func(*options)

type options struct {
	initializer providers.Initializer
	registry    *prometheus.Registry
}

// WithInitializer replaces the OCI initializer
func WithInitializer(initializer providers.Initializer) Option {
	return func(o *options) { o.initializer = initializer }
}

// WithRegistry replaces the process registry
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// New builds every service. It fails only on invalid configuration: an
// unreachable provider or cache degrades instead.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if log == nil {
		log = logger.Nop()
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
		o.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := metrics.NewMetrics(o.registry)

	store := cache.NewStore(cacheOptions(cfg.Cache), log)
	aside := cache.NewAside(store, m, log)

	initializer := o.initializer
	if initializer == nil && !cfg.OCI.UseMock {
		initializer = oci.NewInitializer(ociConfig(cfg.OCI), log)
	}
	policy := degradation.New(ctx, degradation.Options{
		ForceMock:   cfg.OCI.UseMock,
		Initializer: initializer,
		Metrics:     m,
	}, log)

	gate := concurrency.NewGate(concurrency.GateConfig{
		MaxInFlight:       cfg.Inventory.MaxConcurrency,
		RequestsPerSecond: cfg.Inventory.RequestsPerSecond,
		Burst:             cfg.Inventory.Burst,
		CallTimeout:       cfg.Inventory.CallTimeout,
	}, m)

	engine := discovery.NewEngine(discovery.Options{
		Policy:         policy,
		Cache:          aside,
		Gate:           gate,
		Metrics:        m,
		Logger:         log,
		MaxConcurrency: cfg.Inventory.MaxConcurrency,
	})

	a := &App{
		Config:   cfg,
		Registry: o.registry,
		Metrics:  m,
		Cache:    aside,
		Policy:   policy,
		Engine:   engine,
		Health:   health.NewService(Version, log),
		store:    store,
		log:      log,
	}
	a.registerChecks()

	return a, nil
}

func (a *App) registerChecks() {
	a.Health.RegisterCheck(health.Check{
		Name:        "cache",
		Description: "Cache backend reachability",
		CheckFunc: func(ctx context.Context) error {
			if !a.Cache.Enabled() {
				return fmt.Errorf("%w: caching disabled", health.ErrDegraded)
			}
			if err := a.Cache.Ping(ctx); err != nil {
				return fmt.Errorf("%w: %v", health.ErrDegraded, err)
			}
			return nil
		},
	})
	a.Health.RegisterCheck(health.Check{
		Name:        "provider",
		Description: "Live OCI provider",
		CheckFunc: func(ctx context.Context) error {
			if !a.Policy.IsLive() {
				return fmt.Errorf("%w: %s", health.ErrDegraded, a.Policy.Reason())
			}
			return nil
		},
	})
}

// Server builds the REST API over the app
func (a *App) Server() *api.Server {
	srv := a.Config.Server
	return api.NewServer(api.Config{
		Address:           srv.Address(),
		ReadTimeout:       srv.ReadTimeout,
		WriteTimeout:      srv.WriteTimeout,
		IdleTimeout:       srv.IdleTimeout,
		ShutdownTimeout:   srv.ShutdownTimeout,
		AllowedOrigins:    srv.AllowedOrigins,
		RequestsPerSecond: srv.RequestsPerSecond,
		Burst:             srv.Burst,
	}, api.Dependencies{
		Inventory: a.Engine,
		Cache:     a.Cache,
		Health:    a.Health,
		Metrics:   a.Metrics,
		Gatherer:  a.Registry,
		Logger:    a.log,
	})
}

// Close releases the cache backend
func (a *App) Close() error {
	switch s := a.store.(type) {
	case *cache.RedisStore:
		return s.Close()
	case *cache.MemoryStore:
		s.Close()
	}
	return nil
}

func cacheOptions(c config.CacheConfig) cache.Options {
	opts := cache.Options{Type: c.Type, MaxEntries: c.MaxEntries}
	if c.Type == cache.BackendRedis {
		redis := cache.DefaultRedisConfig()
		redis.Addr = c.RedisAddr
		redis.Password = c.RedisPassword
		redis.DB = c.RedisDB
		redis.ConnectTimeout = c.DialTimeout
		redis.ReadTimeout = c.ReadTimeout
		redis.WriteTimeout = c.WriteTimeout
		redis.KeyPrefix = c.KeyPrefix
		opts.Redis = redis
	}
	return opts
}

func ociConfig(c config.OCIConfig) oci.Config {
	return oci.Config{
		ConfigFile:    c.ConfigFile,
		Profile:       c.Profile,
		TenancyID:     c.TenancyID,
		UserID:        c.UserID,
		Fingerprint:   c.Fingerprint,
		KeyFile:       c.KeyFile,
		KeyPassphrase: c.KeyPassphrase,
		Region:        c.Region,
	}
}
