package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/catherinevee/inventorymgr/internal/providers"
)

// Method names accepted by SetError, SetErrorFor and CallCount
const (
	MethodListCompartments        = "ListCompartments"
	MethodListAvailabilityDomains = "ListAvailabilityDomains"
	MethodListInstances           = "ListInstances"
	MethodListDBSystems           = "ListDBSystems"
	MethodListDBHomes             = "ListDBHomes"
	MethodListDatabases           = "ListDatabases"
	MethodListAutonomousDatabases = "ListAutonomousDatabases"
	MethodListClusters            = "ListClusters"
	MethodListGateways            = "ListGateways"
	MethodListLoadBalancers       = "ListLoadBalancers"
	MethodListVCNs                = "ListVCNs"
	MethodListSubnets             = "ListSubnets"
	MethodListVolumes             = "ListVolumes"
	MethodListFileSystems         = "ListFileSystems"
	MethodSummarizeMetrics        = "SummarizeMetrics"
)

// MockClients implements every provider capability from in-memory data.
// Per-compartment data is keyed by compartment id; nested data by parent id.
// Every call is counted and can be made to fail.
type MockClients struct {
	mu sync.Mutex

	Compartments        []providers.Compartment
	AvailabilityDomains []providers.AvailabilityDomain
	Instances           map[string][]providers.Instance
	DBSystems           map[string][]providers.DBSystem
	DBHomes             map[string][]providers.DBHome   // by DB system id
	Databases           map[string][]providers.Database // by DB home id
	AutonomousDatabases map[string][]providers.AutonomousDatabase
	Clusters            map[string][]providers.Cluster
	Gateways            map[string][]providers.Gateway
	LoadBalancers       map[string][]providers.LoadBalancer
	VCNs                map[string][]providers.VCN
	Subnets             map[string][]providers.Subnet     // by VCN id
	Volumes             map[string][]providers.Volume
	FileSystems         map[string][]providers.FileSystem // by availability domain
	Datapoints          map[string][]providers.Datapoint  // by metric name

	errors  map[string]error
	calls   map[string]int
	queries []providers.MetricQuery
	delay   time.Duration
}

// NewMockClients creates an empty mock
func NewMockClients() *MockClients {
	return &MockClients{
		Instances:           make(map[string][]providers.Instance),
		DBSystems:           make(map[string][]providers.DBSystem),
		DBHomes:             make(map[string][]providers.DBHome),
		Databases:           make(map[string][]providers.Database),
		AutonomousDatabases: make(map[string][]providers.AutonomousDatabase),
		Clusters:            make(map[string][]providers.Cluster),
		Gateways:            make(map[string][]providers.Gateway),
		LoadBalancers:       make(map[string][]providers.LoadBalancer),
		VCNs:                make(map[string][]providers.VCN),
		Subnets:             make(map[string][]providers.Subnet),
		Volumes:             make(map[string][]providers.Volume),
		FileSystems:         make(map[string][]providers.FileSystem),
		Datapoints:          make(map[string][]providers.Datapoint),
		errors:              make(map[string]error),
		calls:               make(map[string]int),
	}
}

// Clients exposes the mock through every capability
func (m *MockClients) Clients() *providers.Clients {
	return &providers.Clients{
		Identity:        m,
		Compute:         m,
		Database:        m,
		ContainerEngine: m,
		APIGateway:      m,
		LoadBalancer:    m,
		VirtualNetwork:  m,
		BlockStorage:    m,
		FileStorage:     m,
		Monitoring:      m,
	}
}

// SetError makes every call of method fail with err
func (m *MockClients) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method] = err
}

// SetErrorFor makes calls of method whose last argument equals arg fail with err
func (m *MockClients) SetErrorFor(method, arg string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method+":"+arg] = err
}

// SetDelay makes every call wait d or until its context ends
func (m *MockClients) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// CallCount returns how often method was called
func (m *MockClients) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of calls across all methods
func (m *MockClients) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// Queries returns the monitoring queries received so far
func (m *MockClients) Queries() []providers.MetricQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]providers.MetricQuery(nil), m.queries...)
}

func (m *MockClients) record(ctx context.Context, method string, args ...string) error {
	m.mu.Lock()
	m.calls[method]++
	err := m.errors[method]
	if len(args) > 0 {
		if specific, ok := m.errors[method+":"+args[len(args)-1]]; ok {
			err = specific
		}
	}
	delay := m.delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// ListCompartments returns Compartments
func (m *MockClients) ListCompartments(ctx context.Context, tenancyID string) ([]providers.Compartment, error) {
	if err := m.record(ctx, MethodListCompartments, tenancyID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]providers.Compartment(nil), m.Compartments...), nil
}

// ListAvailabilityDomains returns AvailabilityDomains
func (m *MockClients) ListAvailabilityDomains(ctx context.Context, compartmentID string) ([]providers.AvailabilityDomain, error) {
	if err := m.record(ctx, MethodListAvailabilityDomains, compartmentID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]providers.AvailabilityDomain(nil), m.AvailabilityDomains...), nil
}

func (m *MockClients) ListInstances(ctx context.Context, compartmentID string) ([]providers.Instance, error) {
	if err := m.record(ctx, MethodListInstances, compartmentID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Instances[compartmentID], nil
}

func (m *MockClients) ListDBSystems(ctx context.Context, compartmentID string) ([]providers.DBSystem, error) {
	if err := m.record(ctx, MethodListDBSystems, compartmentID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DBSystems[compartmentID], nil
}

func (m *MockClients) ListDBHomes(ctx context.Context, compartmentID, dbSystemID string) ([]providers.DBHome, error) {
	if err := m.record(ctx, MethodListDBHomes, compartmentID, dbSystemID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DBHomes[dbSystemID], nil
}

func (m *MockClients) ListDatabases(ctx context.Context, compartmentID, dbHomeID string) ([]providers.Database, error) {
	if err := m.record(ctx, MethodListDatabases, compartmentID, dbHomeID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Databases[dbHomeID], nil
}

func (m *MockClients) ListAutonomousDatabases(ctx context.Context, compartmentID string) ([]providers.AutonomousDatabase, error) {
	if err := m.record(ctx, MethodListAutonomousDatabases, compartmentID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.AutonomousDatabases[compartmentID], nil
}

func (m *MockClients) ListClusters(ctx context.Context, compartmentID string) ([]providers.Cluster, error) {
	if err := m.record(ctx, MethodListClusters, compartmentID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Clusters[compartmentID], nil
}

func (m *MockClients) ListGateways(ctx context.Context, compartmentID string) ([]providers.Gateway, error) {
	if err := m.record(ctx, MethodListGateways, compartmentID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Gateways[compartmentID], nil
}

func (m *MockClients) ListLoadBalancers(ctx context.Context, compartmentID string) ([]providers.LoadBalancer, error) {
	if err := m.record(ctx, MethodListLoadBalancers, compartmentID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LoadBalancers[compartmentID], nil
}

func (m *MockClients) ListVCNs(ctx context.Context, compartmentID string) ([]providers.VCN, error) {
	if err := m.record(ctx, MethodListVCNs, compartmentID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.VCNs[compartmentID], nil
}

func (m *MockClients) ListSubnets(ctx context.Context, compartmentID, vcnID string) ([]providers.Subnet, error) {
	if err := m.record(ctx, MethodListSubnets, compartmentID, vcnID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Subnets[vcnID], nil
}

func (m *MockClients) ListVolumes(ctx context.Context, compartmentID string) ([]providers.Volume, error) {
	if err := m.record(ctx, MethodListVolumes, compartmentID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Volumes[compartmentID], nil
}

func (m *MockClients) ListFileSystems(ctx context.Context, compartmentID, availabilityDomain string) ([]providers.FileSystem, error) {
	if err := m.record(ctx, MethodListFileSystems, compartmentID, availabilityDomain); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FileSystems[availabilityDomain], nil
}

// SummarizeMetrics answers from Datapoints keyed by the metric name at the
// start of the query, e.g. "CpuUtilization"
func (m *MockClients) SummarizeMetrics(ctx context.Context, query providers.MetricQuery) ([]providers.Datapoint, error) {
	metric := query.Query
	if i := strings.IndexAny(metric, "[{."); i >= 0 {
		metric = metric[:i]
	}
	if err := m.record(ctx, MethodSummarizeMetrics, metric); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	return m.Datapoints[metric], nil
}
