package providers

import "context"

// IdentityClient lists compartments and availability domains
type IdentityClient interface {
	// ListCompartments returns every compartment in the subtree of tenancyID
	ListCompartments(ctx context.Context, tenancyID string) ([]Compartment, error)
	ListAvailabilityDomains(ctx context.Context, compartmentID string) ([]AvailabilityDomain, error)
}

// ComputeClient lists compute instances
type ComputeClient interface {
	ListInstances(ctx context.Context, compartmentID string) ([]Instance, error)
}

// DatabaseClient walks DB systems, DB homes and databases
type DatabaseClient interface {
	ListDBSystems(ctx context.Context, compartmentID string) ([]DBSystem, error)
	ListDBHomes(ctx context.Context, compartmentID, dbSystemID string) ([]DBHome, error)
	ListDatabases(ctx context.Context, compartmentID, dbHomeID string) ([]Database, error)
	ListAutonomousDatabases(ctx context.Context, compartmentID string) ([]AutonomousDatabase, error)
}

// ContainerEngineClient lists OKE clusters
type ContainerEngineClient interface {
	ListClusters(ctx context.Context, compartmentID string) ([]Cluster, error)
}

// APIGatewayClient lists API gateways
type APIGatewayClient interface {
	ListGateways(ctx context.Context, compartmentID string) ([]Gateway, error)
}

// LoadBalancerClient lists load balancers
type LoadBalancerClient interface {
	ListLoadBalancers(ctx context.Context, compartmentID string) ([]LoadBalancer, error)
}

// VirtualNetworkClient lists VCNs and their subnets
type VirtualNetworkClient interface {
	ListVCNs(ctx context.Context, compartmentID string) ([]VCN, error)
	ListSubnets(ctx context.Context, compartmentID, vcnID string) ([]Subnet, error)
}

// BlockStorageClient lists block volumes
type BlockStorageClient interface {
	ListVolumes(ctx context.Context, compartmentID string) ([]Volume, error)
}

// FileStorageClient lists file systems of one availability domain
type FileStorageClient interface {
	ListFileSystems(ctx context.Context, compartmentID, availabilityDomain string) ([]FileSystem, error)
}

// MonitoringClient runs monitoring queries
type MonitoringClient interface {
	SummarizeMetrics(ctx context.Context, query MetricQuery) ([]Datapoint, error)
}

// Clients is the set of provider capabilities. Any field may be nil when the
// corresponding client could not be built; callers treat a nil capability
// like degraded mode for that category.
type Clients struct {
	Identity        IdentityClient
	Compute         ComputeClient
	Database        DatabaseClient
	ContainerEngine ContainerEngineClient
	APIGateway      APIGatewayClient
	LoadBalancer    LoadBalancerClient
	VirtualNetwork  VirtualNetworkClient
	BlockStorage    BlockStorageClient
	FileStorage     FileStorageClient
	Monitoring      MonitoringClient
}

// Session is what an Initializer produces: live clients plus the identity
// of the tenancy they are bound to.
type Session struct {
	Clients     *Clients
	TenancyID   string
	TenancyName string
	Region      string
}

// Initializer loads credentials, builds clients and verifies them with a
// round trip. Any error means the provider is not usable.
type Initializer interface {
	Initialize(ctx context.Context) (*Session, error)
}

// InitializerFunc adapts a function to Initializer
type InitializerFunc func(ctx context.Context) (*Session, error)

// Initialize calls f
func (f InitializerFunc) Initialize(ctx context.Context) (*Session, error) {
	return f(ctx)
}
