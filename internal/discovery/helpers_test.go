package discovery

import (
	"testing"
	"time"

	"github.com/catherinevee/inventorymgr/internal/cache"
	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/degradation"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/internal/providers/mock"
)

const testTenancy = "ocid1.tenancy.oc1..test"

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	engine  *Engine
	clients *mock.MockClients
	store   *cache.MemoryStore
}

func liveEnv(t *testing.T) *testEnv {
	t.Helper()
	clients := mock.NewMockClients()
	policy := degradation.NewLive(&providers.Session{
		Clients:   clients.Clients(),
		TenancyID: testTenancy,
		Region:    "eu-frankfurt-1",
	})
	return newEnv(t, policy, clients)
}

func mockEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnv(t, degradation.NewMock("test"), mock.NewMockClients())
}

func newEnv(t *testing.T, policy *degradation.Policy, clients *mock.MockClients) *testEnv {
	t.Helper()
	store := cache.NewMemoryStore(1000, 0)
	t.Cleanup(store.Close)

	engine := NewEngine(Options{
		Policy: policy,
		Cache:  cache.NewAside(store, nil, logger.Nop()),
		Gate: concurrency.NewGate(concurrency.GateConfig{
			MaxInFlight: 8,
			CallTimeout: time.Second,
		}, nil),
		Logger:         logger.Nop(),
		MaxConcurrency: 4,
		Now:            func() time.Time { return testNow },
	})
	return &testEnv{engine: engine, clients: clients, store: store}
}

func (e *testEnv) fetcher(t *testing.T, name string) *Fetcher {
	t.Helper()
	for c, f := range e.engine.fetchers {
		if string(c) == name {
			return f
		}
	}
	t.Fatalf("no fetcher for %s", name)
	return nil
}
