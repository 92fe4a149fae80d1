package discovery

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/internal/providers/mock"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

const testScope = "ocid1.compartment.oc1..apps"

func TestMockFetcherCounts(t *testing.T) {
	want := map[models.Category]int{
		models.CategoryComputeInstances: 3,
		models.CategoryDatabases:        3,
		models.CategoryOKEClusters:      2,
		models.CategoryAPIGateways:      2,
		models.CategoryLoadBalancers:    2,
		models.CategoryNetworkResources: 3,
		models.CategoryBlockVolumes:     2,
		models.CategoryFileSystems:      2,
	}

	env := mockEnv(t)
	for _, c := range models.AllCategories() {
		t.Run(string(c), func(t *testing.T) {
			f, ok := env.engine.Fetcher(c)
			require.True(t, ok)

			resources := f.List(context.Background(), testScope)
			assert.Len(t, resources, want[c])
			for _, r := range resources {
				assert.NoError(t, r.Validate())
				assert.Contains(t, c.ResourceTypes(), r.Type)
			}

			_, cached := env.store.Get(context.Background(), f.CacheKey(testScope))
			assert.True(t, cached)
		})
	}
	assert.Zero(t, env.clients.TotalCalls())
}

func TestMockHierarchy(t *testing.T) {
	env := mockEnv(t)

	dbs := env.fetcher(t, "databases").List(context.Background(), testScope)
	require.Len(t, dbs, 3)
	assert.Equal(t, models.ResourceTypeDBSystem, dbs[0].Type)
	assert.Equal(t, dbs[0].ID, dbs[1].ParentID)
	assert.True(t, strings.HasPrefix(dbs[1].DisplayName, models.ChildPrefix))

	network := env.fetcher(t, "network_resources").List(context.Background(), testScope)
	require.Len(t, network, 3)
	for _, subnet := range network[1:] {
		assert.Equal(t, network[0].ID, subnet.ParentID)
		assert.Equal(t, network[0].ID, subnet.Network.VCNID)
	}
}

func TestFetcherCachesLiveResults(t *testing.T) {
	env := liveEnv(t)
	env.clients.Instances[testScope] = []providers.Instance{
		{ID: "ocid1.instance.oc1..1", DisplayName: "web-1", LifecycleState: "RUNNING", Shape: providers.String("VM.Standard.E4.Flex")},
	}
	f := env.fetcher(t, "compute_instances")

	first := f.List(context.Background(), testScope)
	second := f.List(context.Background(), testScope)

	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, env.clients.CallCount(mock.MethodListInstances))

	_, cached := env.store.Get(context.Background(), "oci:compute:"+testScope)
	assert.True(t, cached)
}

func TestFetcherCachesEmptyResults(t *testing.T) {
	env := liveEnv(t)
	f := env.fetcher(t, "oke_clusters")

	assert.Empty(t, f.List(context.Background(), testScope))
	assert.NotNil(t, f.List(context.Background(), testScope))
	assert.Equal(t, 1, env.clients.CallCount(mock.MethodListClusters))
}

func TestFetcherTopLevelFailureNotCached(t *testing.T) {
	env := liveEnv(t)
	env.clients.SetError(mock.MethodListVolumes, &providers.ServiceError{StatusCode: 500, Message: "internal"})
	f := env.fetcher(t, "block_volumes")

	resources := f.List(context.Background(), testScope)
	assert.NotNil(t, resources)
	assert.Empty(t, resources)

	f.List(context.Background(), testScope)
	assert.Equal(t, 2, env.clients.CallCount(mock.MethodListVolumes))
}

func TestFetcherMissingCapabilityServesMock(t *testing.T) {
	env := liveEnv(t)
	env.engine.deps.policy.Clients().Compute = nil

	resources := env.fetcher(t, "compute_instances").List(context.Background(), testScope)
	assert.Len(t, resources, 3)
	assert.Zero(t, env.clients.CallCount(mock.MethodListInstances))
}

func TestComputeDefaults(t *testing.T) {
	env := liveEnv(t)
	env.clients.Instances[testScope] = []providers.Instance{
		{ID: "ocid1.instance.oc1..1", DisplayName: "bare", LifecycleState: "RUNNING"},
	}

	resources := env.fetcher(t, "compute_instances").List(context.Background(), testScope)
	require.Len(t, resources, 1)
	assert.Equal(t, "Unknown", resources[0].Compute.Shape)
	assert.Equal(t, "Unknown", resources[0].Compute.AvailabilityDomain)
	assert.Equal(t, "eu-frankfurt-1", resources[0].Compute.Region)
}

func TestDatabaseHierarchy(t *testing.T) {
	env := liveEnv(t)
	const systemID = "ocid1.dbsystem.oc1..sys"
	const homeID = "ocid1.dbhome.oc1..home"
	env.clients.DBSystems[testScope] = []providers.DBSystem{
		{ID: systemID, DisplayName: "orders-db", LifecycleState: "AVAILABLE"},
	}
	env.clients.DBHomes[systemID] = []providers.DBHome{{ID: homeID, DBSystemID: providers.String(systemID)}}
	env.clients.Databases[homeID] = []providers.Database{
		{ID: "ocid1.database.oc1..db", DBName: "ORDERS", LifecycleState: "AVAILABLE", IsCDB: providers.Bool(true)},
	}

	resources := env.fetcher(t, "databases").List(context.Background(), testScope)

	require.Len(t, resources, 2)
	system, db := resources[0], resources[1]

	assert.Equal(t, models.ResourceTypeDBSystem, system.Type)
	assert.Equal(t, 1, system.DBSystem.NodeCount)
	assert.Equal(t, "Unknown", system.DBSystem.Shape)

	assert.Equal(t, models.ResourceTypeDatabase, db.Type)
	assert.Equal(t, systemID, db.ParentID)
	assert.Equal(t, models.ChildPrefix+"ORDERS (Database)", db.DisplayName)
	assert.Equal(t, systemID, db.Database.DBSystemID)
	assert.Equal(t, homeID, db.Database.DBHomeID)
	assert.True(t, db.Database.IsCDB)
	assert.Equal(t, "Unknown", db.Database.DBWorkload)
}

func TestDatabasePartialFailure(t *testing.T) {
	env := liveEnv(t)
	env.clients.DBSystems[testScope] = []providers.DBSystem{
		{ID: "sys-a", DisplayName: "a"},
		{ID: "sys-b", DisplayName: "b"},
	}
	env.clients.DBHomes["sys-a"] = []providers.DBHome{{ID: "home-a"}}
	env.clients.DBHomes["sys-b"] = []providers.DBHome{{ID: "home-b"}}
	env.clients.Databases["home-a"] = []providers.Database{{ID: "db-a", DBName: "A"}}
	env.clients.Databases["home-b"] = []providers.Database{{ID: "db-b", DBName: "B"}}
	env.clients.AutonomousDatabases[testScope] = []providers.AutonomousDatabase{{ID: "adb", DisplayName: "adb"}}
	env.clients.SetErrorFor(mock.MethodListDBHomes, "sys-b", errors.New("denied"))

	resources := env.fetcher(t, "databases").List(context.Background(), testScope)

	ids := make([]string, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"sys-a", "db-a", "sys-b", "adb"}, ids)
}

func TestDatabaseSystemsFailureKeepsAutonomous(t *testing.T) {
	env := liveEnv(t)
	env.clients.AutonomousDatabases[testScope] = []providers.AutonomousDatabase{{ID: "adb", DisplayName: "adb"}}
	env.clients.SetError(mock.MethodListDBSystems, errors.New("denied"))

	resources := env.fetcher(t, "databases").List(context.Background(), testScope)
	require.Len(t, resources, 1)
	assert.Equal(t, models.ResourceTypeAutonomousDatabase, resources[0].Type)
}

func TestDatabaseBothListingsFail(t *testing.T) {
	env := liveEnv(t)
	env.clients.SetError(mock.MethodListDBSystems, errors.New("denied"))
	env.clients.SetError(mock.MethodListAutonomousDatabases, errors.New("denied"))
	f := env.fetcher(t, "databases")

	assert.Empty(t, f.List(context.Background(), testScope))
	f.List(context.Background(), testScope)
	assert.Equal(t, 2, env.clients.CallCount(mock.MethodListDBSystems))
}

func TestNetworkSubnetFailureKeepsVCN(t *testing.T) {
	env := liveEnv(t)
	env.clients.VCNs[testScope] = []providers.VCN{
		{ID: "vcn-a", DisplayName: "a", CIDRBlock: providers.String("10.0.0.0/16")},
		{ID: "vcn-b", DisplayName: "b"},
	}
	env.clients.Subnets["vcn-a"] = []providers.Subnet{{ID: "sub-a", DisplayName: "a1", CIDRBlock: providers.String("10.0.1.0/24")}}
	env.clients.SetErrorFor(mock.MethodListSubnets, "vcn-b", errors.New("denied"))

	resources := env.fetcher(t, "network_resources").List(context.Background(), testScope)

	require.Len(t, resources, 3)
	assert.Equal(t, "vcn-a", resources[0].ID)
	assert.Equal(t, "sub-a", resources[1].ID)
	assert.Equal(t, "vcn-a", resources[1].ParentID)
	assert.Equal(t, models.ChildPrefix+"a1", resources[1].DisplayName)
	assert.Equal(t, "vcn-b", resources[2].ID)
	assert.Equal(t, "Unknown", resources[2].Network.CIDRBlock)
}

func TestFileSystemsAcrossDomains(t *testing.T) {
	env := liveEnv(t)
	env.clients.AvailabilityDomains = []providers.AvailabilityDomain{{Name: "AD-1"}, {Name: "AD-2"}, {Name: "AD-3"}}
	env.clients.FileSystems["AD-1"] = []providers.FileSystem{{ID: "fs-1", DisplayName: "one"}}
	env.clients.FileSystems["AD-3"] = []providers.FileSystem{{ID: "fs-3", DisplayName: "three", MeteredBytes: providers.Int64(42)}}
	env.clients.SetErrorFor(mock.MethodListFileSystems, "AD-2", errors.New("denied"))

	resources := env.fetcher(t, "file_systems").List(context.Background(), testScope)

	require.Len(t, resources, 2)
	assert.Equal(t, "AD-1", resources[0].FileSystem.AvailabilityDomain)
	assert.Equal(t, int64(42), resources[1].FileSystem.MeteredBytes)
}

func TestFileSystemsDomainListingFails(t *testing.T) {
	env := liveEnv(t)
	env.clients.SetError(mock.MethodListAvailabilityDomains, errors.New("denied"))

	assert.Empty(t, env.fetcher(t, "file_systems").List(context.Background(), testScope))
	assert.Zero(t, env.clients.CallCount(mock.MethodListFileSystems))
}

func TestServiceDefaults(t *testing.T) {
	env := liveEnv(t)
	env.clients.Gateways[testScope] = []providers.Gateway{{ID: "gw", DisplayName: "gw"}}
	env.clients.Volumes[testScope] = []providers.Volume{{ID: "vol", DisplayName: "vol"}}
	env.clients.LoadBalancers[testScope] = []providers.LoadBalancer{{ID: "lb", DisplayName: "lb"}}
	env.clients.Clusters[testScope] = []providers.Cluster{{ID: "oke", Name: "oke"}}

	gw := env.fetcher(t, "api_gateways").List(context.Background(), testScope)
	require.Len(t, gw, 1)
	assert.Equal(t, "N/A", gw[0].Gateway.Hostname)

	vol := env.fetcher(t, "block_volumes").List(context.Background(), testScope)
	require.Len(t, vol, 1)
	assert.True(t, vol[0].Volume.IsHydrated)
	assert.Zero(t, vol[0].Volume.SizeInGBs)

	lb := env.fetcher(t, "load_balancers").List(context.Background(), testScope)
	require.Len(t, lb, 1)
	assert.Equal(t, "Unknown", lb[0].LoadBalancer.ShapeName)
	assert.False(t, lb[0].LoadBalancer.IsPrivate)

	oke := env.fetcher(t, "oke_clusters").List(context.Background(), testScope)
	require.Len(t, oke, 1)
	assert.Equal(t, "oke", oke[0].DisplayName)
	assert.Equal(t, "Unknown", oke[0].Cluster.KubernetesVersion)
}

func TestFetcherCallTimeout(t *testing.T) {
	env := liveEnv(t)
	env.clients.Instances[testScope] = []providers.Instance{{ID: "i"}}
	env.clients.SetDelay(5 * time.Second)

	start := time.Now()
	resources := env.fetcher(t, "compute_instances").List(context.Background(), testScope)

	assert.Empty(t, resources)
	assert.Less(t, time.Since(start), 4*time.Second)
}
