package discovery

import (
	"github.com/catherinevee/inventorymgr/pkg/models"
)

const mockRegion = "eu-frankfurt-1"

func mockScopes() []models.Scope {
	return []models.Scope{
		{ID: models.MockRootID, Name: models.RootScopeName, Description: models.RootScopeDescription, LifecycleState: "ACTIVE"},
		{ID: "ocid1.compartment.oc1..prod", Name: "production", Description: "Production compartment", LifecycleState: "ACTIVE", ParentID: models.MockRootID},
		{ID: "ocid1.compartment.oc1..stg", Name: "staging", Description: "Staging compartment", LifecycleState: "ACTIVE", ParentID: models.MockRootID},
		{ID: "ocid1.compartment.oc1..dev", Name: "development", Description: "Development compartment", LifecycleState: "ACTIVE", ParentID: models.MockRootID},
	}
}

func errorFallbackScopes() []models.Scope {
	return []models.Scope{{
		ID:             models.ErrorFallbackID,
		Name:           models.ErrorFallbackScopeName,
		Description:    "Fallback compartment due to API error",
		LifecycleState: "ACTIVE",
	}}
}

func mockComputeInstances(d *deps) []models.Resource {
	now := d.now().UTC()
	instance := func(id, name, state, shape, ad string) models.Resource {
		return models.Resource{
			Type: models.ResourceTypeComputeInstance, ID: id, DisplayName: name, LifecycleState: state, TimeCreated: &now,
			Compute: &models.ComputeAttributes{Shape: shape, AvailabilityDomain: ad, Region: mockRegion},
		}
	}
	return []models.Resource{
		instance("ocid1.instance.oc1..vm1", "prod-web-1", "RUNNING", "VM.Standard3.Flex", "AD-1"),
		instance("ocid1.instance.oc1..vm2", "prod-db-1", "STOPPED", "VM.Standard3.Flex", "AD-1"),
		instance("ocid1.instance.oc1..vm3", "stg-api-1", "RUNNING", "VM.Standard.E4.Flex", "AD-2"),
	}
}

func mockDatabases(d *deps) []models.Resource {
	now := d.now().UTC()
	return []models.Resource{
		{
			Type: models.ResourceTypeDBSystem, ID: "ocid1.dbsystem.oc1..dbsys1", DisplayName: "prod-db-system",
			LifecycleState: "AVAILABLE", TimeCreated: &now,
			DBSystem: &models.DBSystemAttributes{
				DatabaseEdition: "ENTERPRISE_EDITION_HIGH_PERFORMANCE", Shape: "VM.Standard2.2",
				CPUCoreCount: 4, DataStorageSizeInGBs: 512, NodeCount: 2, AvailabilityDomain: "AD-1",
			},
		},
		{
			Type: models.ResourceTypeDatabase, ID: "ocid1.database.oc1..db1", DisplayName: childName("PRODDB (Database)"),
			LifecycleState: "AVAILABLE", ParentID: "ocid1.dbsystem.oc1..dbsys1", TimeCreated: &now,
			Database: &models.DatabaseAttributes{
				DBName: "PRODDB", DBWorkload: "OLTP", CharacterSet: "AL32UTF8",
				DBSystemID: "ocid1.dbsystem.oc1..dbsys1", DBHomeID: "ocid1.dbhome.oc1..dbh1",
			},
		},
		{
			Type: models.ResourceTypeAutonomousDatabase, ID: "ocid1.autonomousdatabase.oc1..adb1", DisplayName: "prod-adb",
			LifecycleState: "AVAILABLE", TimeCreated: &now,
			AutonomousDatabase: &models.AutonomousDatabaseAttributes{
				DBName: "ADWPROD", DBWorkload: "DW", CPUCoreCount: 2, DataStorageSizeInTBs: 1,
			},
		},
	}
}

func mockClusters(*deps) []models.Resource {
	cluster := func(id, name, version, vcn string) models.Resource {
		return models.Resource{
			Type: models.ResourceTypeContainerCluster, ID: id, DisplayName: name, LifecycleState: "ACTIVE",
			Cluster: &models.ClusterAttributes{KubernetesVersion: version, VCNID: vcn},
		}
	}
	return []models.Resource{
		cluster("ocid1.cluster.oc1..oke1", "prod-oke", "1.27.3", "ocid1.vcn.oc1..vcn1"),
		cluster("ocid1.cluster.oc1..oke2", "stg-oke", "1.26.6", "ocid1.vcn.oc1..vcn2"),
	}
}

func mockGateways(*deps) []models.Resource {
	gateway := func(id, name, hostname string) models.Resource {
		return models.Resource{
			Type: models.ResourceTypeAPIGateway, ID: id, DisplayName: name, LifecycleState: "ACTIVE",
			Gateway: &models.GatewayAttributes{Hostname: hostname},
		}
	}
	return []models.Resource{
		gateway("ocid1.apigateway.oc1..gw1", "prod-gateway", "api.prod.example.com"),
		gateway("ocid1.apigateway.oc1..gw2", "stg-gateway", "api.stg.example.com"),
	}
}

func mockLoadBalancers(*deps) []models.Resource {
	lb := func(id, name string, private bool) models.Resource {
		return models.Resource{
			Type: models.ResourceTypeLoadBalancer, ID: id, DisplayName: name, LifecycleState: "ACTIVE",
			LoadBalancer: &models.LoadBalancerAttributes{ShapeName: "flexible", IsPrivate: private},
		}
	}
	return []models.Resource{
		lb("ocid1.loadbalancer.oc1..lb1", "prod-lb", false),
		lb("ocid1.loadbalancer.oc1..lb2", "stg-lb", true),
	}
}

func mockNetworkResources(d *deps) []models.Resource {
	now := d.now().UTC()
	const vcnID = "ocid1.vcn.oc1..vcn1"
	subnet := func(id, name, cidr string) models.Resource {
		return models.Resource{
			Type: models.ResourceTypeSubnet, ID: id, DisplayName: childName(name), LifecycleState: "AVAILABLE",
			ParentID: vcnID, TimeCreated: &now,
			Network: &models.NetworkAttributes{CIDRBlock: cidr, VCNID: vcnID},
		}
	}
	return []models.Resource{
		{
			Type: models.ResourceTypeVCN, ID: vcnID, DisplayName: "prod-vcn", LifecycleState: "AVAILABLE", TimeCreated: &now,
			Network: &models.NetworkAttributes{CIDRBlock: "10.0.0.0/16"},
		},
		subnet("ocid1.subnet.oc1..sub1", "prod-subnet-a", "10.0.1.0/24"),
		subnet("ocid1.subnet.oc1..sub2", "prod-subnet-b", "10.0.2.0/24"),
	}
}

func mockBlockVolumes(d *deps) []models.Resource {
	now := d.now().UTC()
	volume := func(id, name string, size int64) models.Resource {
		return models.Resource{
			Type: models.ResourceTypeBlockVolume, ID: id, DisplayName: name, LifecycleState: "AVAILABLE", TimeCreated: &now,
			Volume: &models.VolumeAttributes{SizeInGBs: size, AvailabilityDomain: "AD-1", IsHydrated: true},
		}
	}
	return []models.Resource{
		volume("ocid1.volume.oc1..vol1", "prod-volume-a", 256),
		volume("ocid1.volume.oc1..vol2", "prod-volume-b", 512),
	}
}

func mockFileSystems(d *deps) []models.Resource {
	now := d.now().UTC()
	fs := func(id, name string, bytes int64) models.Resource {
		return models.Resource{
			Type: models.ResourceTypeFileSystem, ID: id, DisplayName: name, LifecycleState: "ACTIVE", TimeCreated: &now,
			FileSystem: &models.FileSystemAttributes{AvailabilityDomain: "AD-1", MeteredBytes: bytes},
		}
	}
	return []models.Resource{
		fs("ocid1.filesystem.oc1..fs1", "prod-fs-a", 123456789),
		fs("ocid1.filesystem.oc1..fs2", "prod-fs-b", 987654321),
	}
}
