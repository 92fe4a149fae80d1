package oci

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/apigateway"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/containerengine"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/database"
	"github.com/oracle/oci-go-sdk/v65/filestorage"
	"github.com/oracle/oci-go-sdk/v65/identity"
	"github.com/oracle/oci-go-sdk/v65/loadbalancer"
	"github.com/oracle/oci-go-sdk/v65/monitoring"

	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/providers"
	errorspkg "github.com/catherinevee/inventorymgr/internal/shared/errors"
)

// Config selects the credentials. Discrete fields win over the config file
// when tenancy, user, fingerprint and key file are all set.
type Config struct {
	ConfigFile    string
	Profile       string
	TenancyID     string
	UserID        string
	Fingerprint   string
	KeyFile       string
	KeyPassphrase string
	Region        string
}

// Initializer builds live OCI clients
type Initializer struct {
	config Config
	log    logger.Logger
}

// NewInitializer creates an initializer for cfg
func NewInitializer(cfg Config, log logger.Logger) *Initializer {
	if log == nil {
		log = logger.Nop()
	}
	return &Initializer{
		config: cfg,
		log:    log.WithFields(logger.String("component", "oci")),
	}
}

// Initialize loads credentials, builds every service client and checks the
// credentials with a GetTenancy round trip
func (i *Initializer) Initialize(ctx context.Context) (*providers.Session, error) {
	provider, err := i.configurationProvider()
	if err != nil {
		return nil, err
	}

	if ok, err := common.IsConfigurationProviderValid(provider); !ok {
		return nil, errorspkg.NewConfigurationError("OCI configuration is invalid", err)
	}

	tenancyID, err := provider.TenancyOCID()
	if err != nil {
		return nil, errorspkg.NewConfigurationError("OCI configuration has no tenancy", err)
	}
	region := i.config.Region
	if region == "" {
		if region, err = provider.Region(); err != nil {
			return nil, errorspkg.NewConfigurationError("OCI configuration has no region", err)
		}
	}

	identityClient, err := identity.NewIdentityClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, clientError("identity", err)
	}
	identityClient.SetRegion(region)

	computeClient, err := core.NewComputeClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, clientError("compute", err)
	}
	computeClient.SetRegion(region)

	networkClient, err := core.NewVirtualNetworkClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, clientError("virtual network", err)
	}
	networkClient.SetRegion(region)

	blockClient, err := core.NewBlockstorageClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, clientError("block storage", err)
	}
	blockClient.SetRegion(region)

	databaseClient, err := database.NewDatabaseClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, clientError("database", err)
	}
	databaseClient.SetRegion(region)

	containerClient, err := containerengine.NewContainerEngineClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, clientError("container engine", err)
	}
	containerClient.SetRegion(region)

	gatewayClient, err := apigateway.NewGatewayClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, clientError("api gateway", err)
	}
	gatewayClient.SetRegion(region)

	lbClient, err := loadbalancer.NewLoadBalancerClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, clientError("load balancer", err)
	}
	lbClient.SetRegion(region)

	fsClient, err := filestorage.NewFileStorageClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, clientError("file storage", err)
	}
	fsClient.SetRegion(region)

	monitoringClient, err := monitoring.NewMonitoringClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, clientError("monitoring", err)
	}
	monitoringClient.SetRegion(region)

	tenancy, err := identityClient.GetTenancy(ctx, identity.GetTenancyRequest{TenancyId: common.String(tenancyID)})
	if err != nil {
		return nil, errorspkg.NewConfigurationError("OCI credential check failed", translateError(err))
	}

	session := &providers.Session{
		Clients: &providers.Clients{
			Identity:        &identityAdapter{client: identityClient},
			Compute:         &computeAdapter{client: computeClient},
			Database:        &databaseAdapter{client: databaseClient},
			ContainerEngine: &containerEngineAdapter{client: containerClient},
			APIGateway:      &gatewayAdapter{client: gatewayClient},
			LoadBalancer:    &loadBalancerAdapter{client: lbClient},
			VirtualNetwork:  &networkAdapter{client: networkClient},
			BlockStorage:    &blockStorageAdapter{client: blockClient},
			FileStorage:     &fileStorageAdapter{client: fsClient},
			Monitoring:      &monitoringAdapter{client: monitoringClient},
		},
		TenancyID:   tenancyID,
		TenancyName: deref(tenancy.Name),
		Region:      region,
	}

	i.log.Info("Connected to OCI",
		logger.String("tenancy", session.TenancyName),
		logger.String("region", region),
	)

	return session, nil
}

func (i *Initializer) configurationProvider() (common.ConfigurationProvider, error) {
	cfg := i.config

	if cfg.TenancyID != "" && cfg.UserID != "" && cfg.Fingerprint != "" && cfg.KeyFile != "" {
		key, err := os.ReadFile(expandHome(cfg.KeyFile))
		if err != nil {
			return nil, errorspkg.NewConfigurationError("failed to read OCI private key", err)
		}
		var passphrase *string
		if cfg.KeyPassphrase != "" {
			passphrase = common.String(cfg.KeyPassphrase)
		}
		return common.NewRawConfigurationProvider(cfg.TenancyID, cfg.UserID, cfg.Region, cfg.Fingerprint, string(key), passphrase), nil
	}

	path := cfg.ConfigFile
	if path == "" {
		path = "~/.oci/config"
	}
	path = expandHome(path)
	if _, err := os.Stat(path); err != nil {
		return nil, errorspkg.NewConfigurationError(fmt.Sprintf("OCI config file %s not found", path), err)
	}

	profile := cfg.Profile
	if profile == "" {
		profile = "DEFAULT"
	}

	provider, err := common.ConfigurationProviderFromFileWithProfile(path, profile, cfg.KeyPassphrase)
	if err != nil {
		return nil, errorspkg.NewConfigurationError("failed to load OCI config file", err)
	}
	return provider, nil
}

func clientError(service string, err error) error {
	return errorspkg.NewConfigurationError(fmt.Sprintf("failed to create OCI %s client", service), err)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
