package models

import (
	"fmt"
	"time"
)

// ResourceType tags the kind of a single inventory record
type ResourceType string

const (
	ResourceTypeComputeInstance    ResourceType = "compute_instance"
	ResourceTypeDBSystem           ResourceType = "db_system"
	ResourceTypeDatabase           ResourceType = "database"
	ResourceTypeAutonomousDatabase ResourceType = "autonomous_database"
	ResourceTypeContainerCluster   ResourceType = "container_cluster"
	ResourceTypeAPIGateway         ResourceType = "api_gateway"
	ResourceTypeLoadBalancer       ResourceType = "load_balancer"
	ResourceTypeVCN                ResourceType = "vcn"
	ResourceTypeSubnet             ResourceType = "subnet"
	ResourceTypeBlockVolume        ResourceType = "block_volume"
	ResourceTypeFileSystem         ResourceType = "file_system"
)

// ChildPrefix marks a record nested under the record preceding it
const ChildPrefix = "  └─ "

// Resource is one normalized inventory record. The header fields are shared by
// every kind; exactly one of the payload pointers is set and it must match Type.
type Resource struct {
	Type           ResourceType `json:"resource_type"`
	ID             string       `json:"id"`
	DisplayName    string       `json:"display_name"`
	LifecycleState string       `json:"lifecycle_state"`
	ParentID       string       `json:"parent_id,omitempty"`
	SourceScope    string       `json:"source_scope,omitempty"`
	TimeCreated    *time.Time   `json:"time_created,omitempty"`

	Compute            *ComputeAttributes            `json:"compute,omitempty"`
	DBSystem           *DBSystemAttributes           `json:"db_system,omitempty"`
	Database           *DatabaseAttributes           `json:"database,omitempty"`
	AutonomousDatabase *AutonomousDatabaseAttributes `json:"autonomous_database,omitempty"`
	Cluster            *ClusterAttributes            `json:"cluster,omitempty"`
	Gateway            *GatewayAttributes            `json:"gateway,omitempty"`
	LoadBalancer       *LoadBalancerAttributes       `json:"load_balancer,omitempty"`
	Network            *NetworkAttributes            `json:"network,omitempty"`
	Volume             *VolumeAttributes             `json:"volume,omitempty"`
	FileSystem         *FileSystemAttributes         `json:"file_system,omitempty"`
}

// ComputeAttributes describes a compute instance
type ComputeAttributes struct {
	Shape              string `json:"shape"`
	AvailabilityDomain string `json:"availability_domain"`
	Region             string `json:"region,omitempty"`
}

// DBSystemAttributes describes a VM or bare metal DB system
type DBSystemAttributes struct {
	DatabaseEdition      string `json:"database_edition"`
	Shape                string `json:"shape"`
	CPUCoreCount         int    `json:"cpu_core_count"`
	DataStorageSizeInGBs int    `json:"data_storage_size_in_gbs"`
	NodeCount            int    `json:"node_count"`
	AvailabilityDomain   string `json:"availability_domain"`
}

// DatabaseAttributes describes a database inside a DB home
type DatabaseAttributes struct {
	DBName       string `json:"db_name"`
	DBWorkload   string `json:"db_workload"`
	CharacterSet string `json:"character_set"`
	PDBName      string `json:"pdb_name,omitempty"`
	IsCDB        bool   `json:"is_cdb"`
	DBSystemID   string `json:"db_system_id"`
	DBHomeID     string `json:"db_home_id"`
}

// AutonomousDatabaseAttributes describes an autonomous database
type AutonomousDatabaseAttributes struct {
	DBName               string `json:"db_name"`
	DBWorkload           string `json:"db_workload"`
	CPUCoreCount         int    `json:"cpu_core_count"`
	DataStorageSizeInTBs int    `json:"data_storage_size_in_tbs"`
}

// ClusterAttributes describes a container engine cluster
type ClusterAttributes struct {
	KubernetesVersion string `json:"kubernetes_version"`
	VCNID             string `json:"vcn_id,omitempty"`
}

// GatewayAttributes describes an API gateway
type GatewayAttributes struct {
	Hostname string `json:"hostname"`
}

// LoadBalancerAttributes describes a load balancer
type LoadBalancerAttributes struct {
	ShapeName string `json:"shape_name"`
	IsPrivate bool   `json:"is_private"`
}

// NetworkAttributes describes a VCN or one of its subnets
type NetworkAttributes struct {
	CIDRBlock string `json:"cidr_block"`
	VCNID     string `json:"vcn_id,omitempty"`
}

// VolumeAttributes describes a block volume
type VolumeAttributes struct {
	SizeInGBs          int64  `json:"size_in_gbs"`
	AvailabilityDomain string `json:"availability_domain"`
	VolumeGroupID      string `json:"volume_group_id,omitempty"`
	IsHydrated         bool   `json:"is_hydrated"`
}

// FileSystemAttributes describes a file storage file system
type FileSystemAttributes struct {
	AvailabilityDomain string `json:"availability_domain"`
	MeteredBytes       int64  `json:"metered_bytes"`
}

// Payload returns the kind-specific attributes, or nil if none are set
func (r Resource) Payload() interface{} {
	switch {
	case r.Compute != nil:
		return r.Compute
	case r.DBSystem != nil:
		return r.DBSystem
	case r.Database != nil:
		return r.Database
	case r.AutonomousDatabase != nil:
		return r.AutonomousDatabase
	case r.Cluster != nil:
		return r.Cluster
	case r.Gateway != nil:
		return r.Gateway
	case r.LoadBalancer != nil:
		return r.LoadBalancer
	case r.Network != nil:
		return r.Network
	case r.Volume != nil:
		return r.Volume
	case r.FileSystem != nil:
		return r.FileSystem
	}
	return nil
}

// Validate checks that the record carries an identifier and exactly one
// payload that matches its type tag.
func (r Resource) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%s record has no id", r.Type)
	}

	set := 0
	for _, present := range []bool{
		r.Compute != nil, r.DBSystem != nil, r.Database != nil, r.AutonomousDatabase != nil,
		r.Cluster != nil, r.Gateway != nil, r.LoadBalancer != nil, r.Network != nil,
		r.Volume != nil, r.FileSystem != nil,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("record %s carries %d payloads, want 1", r.ID, set)
	}

	var ok bool
	switch r.Type {
	case ResourceTypeComputeInstance:
		ok = r.Compute != nil
	case ResourceTypeDBSystem:
		ok = r.DBSystem != nil
	case ResourceTypeDatabase:
		ok = r.Database != nil
	case ResourceTypeAutonomousDatabase:
		ok = r.AutonomousDatabase != nil
	case ResourceTypeContainerCluster:
		ok = r.Cluster != nil
	case ResourceTypeAPIGateway:
		ok = r.Gateway != nil
	case ResourceTypeLoadBalancer:
		ok = r.LoadBalancer != nil
	case ResourceTypeVCN, ResourceTypeSubnet:
		ok = r.Network != nil
	case ResourceTypeBlockVolume:
		ok = r.Volume != nil
	case ResourceTypeFileSystem:
		ok = r.FileSystem != nil
	default:
		return fmt.Errorf("record %s has unknown type %q", r.ID, r.Type)
	}
	if !ok {
		return fmt.Errorf("record %s payload does not match type %s", r.ID, r.Type)
	}
	return nil
}

// WithSourceScope returns a copy of the record labeled with the scope it was found in
func (r Resource) WithSourceScope(scopeName string) Resource {
	r.SourceScope = scopeName
	return r
}

// IsChild reports whether the record hangs off another record of the same sequence
func (r Resource) IsChild() bool {
	return r.ParentID != ""
}
