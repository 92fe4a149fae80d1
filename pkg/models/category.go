package models

import "strings"

// Category groups resource types the way they are fetched and reported
type Category string

const (
	CategoryComputeInstances Category = "compute_instances"
	CategoryDatabases        Category = "databases"
	CategoryOKEClusters      Category = "oke_clusters"
	CategoryAPIGateways      Category = "api_gateways"
	CategoryLoadBalancers    Category = "load_balancers"
	CategoryNetworkResources Category = "network_resources"
	CategoryBlockVolumes     Category = "block_volumes"
	CategoryFileSystems      Category = "file_systems"
)

var allCategories = []Category{
	CategoryComputeInstances,
	CategoryDatabases,
	CategoryOKEClusters,
	CategoryAPIGateways,
	CategoryLoadBalancers,
	CategoryNetworkResources,
	CategoryBlockVolumes,
	CategoryFileSystems,
}

// AllCategories returns every category in a stable order
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory resolves a category name, ignoring case and surrounding space
func ParseCategory(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range allCategories {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// ResourceTypes returns the record kinds a category can contain
func (c Category) ResourceTypes() []ResourceType {
	switch c {
	case CategoryComputeInstances:
		return []ResourceType{ResourceTypeComputeInstance}
	case CategoryDatabases:
		return []ResourceType{ResourceTypeDBSystem, ResourceTypeDatabase, ResourceTypeAutonomousDatabase}
	case CategoryOKEClusters:
		return []ResourceType{ResourceTypeContainerCluster}
	case CategoryAPIGateways:
		return []ResourceType{ResourceTypeAPIGateway}
	case CategoryLoadBalancers:
		return []ResourceType{ResourceTypeLoadBalancer}
	case CategoryNetworkResources:
		return []ResourceType{ResourceTypeVCN, ResourceTypeSubnet}
	case CategoryBlockVolumes:
		return []ResourceType{ResourceTypeBlockVolume}
	case CategoryFileSystems:
		return []ResourceType{ResourceTypeFileSystem}
	}
	return nil
}
