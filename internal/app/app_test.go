package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catherinevee/inventorymgr/internal/cache"
	"github.com/catherinevee/inventorymgr/internal/infrastructure/config"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/observability/health"
	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/internal/providers/mock"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			Host:            "localhost",
			ShutdownTimeout: time.Second,
		},
		Cache: config.CacheConfig{Type: "memory", MaxEntries: 100},
		Inventory: config.InventoryConfig{
			MaxConcurrency: 4,
			CallTimeout:    time.Second,
		},
	}
}

func results(report health.Report) map[string]health.Status {
	out := make(map[string]health.Status, len(report.Results))
	for _, r := range report.Results {
		out[r.Name] = r.Status
	}
	return out
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(context.Background(), nil, logger.Nop())
	assert.Error(t, err)
}

func TestNewMockMode(t *testing.T) {
	cfg := testConfig()
	cfg.OCI.UseMock = true

	a, err := New(context.Background(), cfg, logger.Nop(), WithRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Policy.IsLive())
	assert.False(t, a.Engine.IsLive())
	assert.Equal(t, models.MockRootID, a.Engine.TenancyID())
	assert.True(t, a.Cache.Enabled())

	scopes := a.Engine.ListScopes(context.Background())
	assert.NotEmpty(t, scopes)

	report := a.Health.RunAllChecks(context.Background())
	assert.Equal(t, health.StatusDegraded, report.Status)
	assert.Equal(t, health.StatusHealthy, results(report)["cache"])
	assert.Equal(t, health.StatusDegraded, results(report)["provider"])
}

func TestNewLiveWithInitializer(t *testing.T) {
	clients := mock.NewMockClients()
	initializer := providers.InitializerFunc(func(ctx context.Context) (*providers.Session, error) {
		return &providers.Session{
			Clients:   clients.Clients(),
			TenancyID: "ocid1.tenancy.oc1..app",
			Region:    "us-ashburn-1",
		}, nil
	})

	a, err := New(context.Background(), testConfig(), logger.Nop(),
		WithInitializer(initializer), WithRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)
	defer a.Close()

	assert.True(t, a.Engine.IsLive())
	assert.Equal(t, "ocid1.tenancy.oc1..app", a.Engine.TenancyID())

	report := a.Health.RunAllChecks(context.Background())
	assert.Equal(t, health.StatusHealthy, report.Status)
}

func TestFailingInitializerDegrades(t *testing.T) {
	initializer := providers.InitializerFunc(func(ctx context.Context) (*providers.Session, error) {
		return nil, errors.New("no credentials")
	})

	a, err := New(context.Background(), testConfig(), logger.Nop(),
		WithInitializer(initializer), WithRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Engine.IsLive())
	assert.Equal(t, "provider initialization failed", a.Policy.Reason())
}

func TestDisabledCacheReportsDegraded(t *testing.T) {
	cfg := testConfig()
	cfg.OCI.UseMock = true
	cfg.Cache.Type = "none"

	a, err := New(context.Background(), cfg, logger.Nop(), WithRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Cache.Enabled())
	assert.Equal(t, health.StatusDegraded, results(a.Health.RunAllChecks(context.Background()))["cache"])
}

func TestServerServesInventory(t *testing.T) {
	cfg := testConfig()
	cfg.OCI.UseMock = true

	a, err := New(context.Background(), cfg, logger.Nop(), WithRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)
	defer a.Close()

	handler := a.Server().Handler()

	for _, path := range []string{"/health", "/api/v1/compartments", "/api/v1/resources", "/metrics"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestCacheOptions(t *testing.T) {
	opts := cacheOptions(config.CacheConfig{
		Type:        cache.BackendRedis,
		RedisAddr:   "redis:6379",
		RedisDB:     2,
		DialTimeout: time.Second,
		KeyPrefix:   "inv:",
	})
	require.NotNil(t, opts.Redis)
	assert.Equal(t, "redis:6379", opts.Redis.Addr)
	assert.Equal(t, 2, opts.Redis.DB)
	assert.Equal(t, time.Second, opts.Redis.ConnectTimeout)
	assert.Equal(t, "inv:", opts.Redis.KeyPrefix)

	assert.Nil(t, cacheOptions(config.CacheConfig{Type: cache.BackendMemory}).Redis)
}
