package providers

import "time"

// Records returned by the provider clients. Optional attributes are
// pointers; normalization into models.Resource applies the defaults.

// Compartment is an identity compartment
type Compartment struct {
	ID             string
	Name           string
	Description    *string
	LifecycleState string
	CompartmentID  *string // parent
	TimeCreated    *time.Time
}

// AvailabilityDomain is one AD of the tenancy's region
type AvailabilityDomain struct {
	Name string
}

// Instance is a compute instance
type Instance struct {
	ID                 string
	DisplayName        string
	LifecycleState     string
	Shape              *string
	AvailabilityDomain *string
	Region             *string
	TimeCreated        *time.Time
}

// DBSystem is a VM or bare metal database system
type DBSystem struct {
	ID                   string
	DisplayName          string
	LifecycleState       string
	DatabaseEdition      *string
	Shape                *string
	CPUCoreCount         *int
	DataStorageSizeInGBs *int
	NodeCount            *int
	AvailabilityDomain   *string
	TimeCreated          *time.Time
}

// DBHome groups databases inside a DB system
type DBHome struct {
	ID             string
	DisplayName    string
	LifecycleState string
	DBSystemID     *string
}

// Database is a database inside a DB home
type Database struct {
	ID             string
	DBName         string
	LifecycleState string
	DBWorkload     *string
	CharacterSet   *string
	PDBName        *string
	IsCDB          *bool
	TimeCreated    *time.Time
}

// AutonomousDatabase is a serverless autonomous database
type AutonomousDatabase struct {
	ID                   string
	DisplayName          string
	LifecycleState       string
	DBName               *string
	DBWorkload           *string
	CPUCoreCount         *int
	DataStorageSizeInTBs *int
	TimeCreated          *time.Time
}

// Cluster is a container engine (OKE) cluster
type Cluster struct {
	ID                string
	Name              string
	LifecycleState    string
	KubernetesVersion *string
	VCNID             *string
	TimeCreated       *time.Time
}

// Gateway is an API gateway
type Gateway struct {
	ID             string
	DisplayName    string
	LifecycleState string
	Hostname       *string
	TimeCreated    *time.Time
}

// LoadBalancer is a flexible or fixed-shape load balancer
type LoadBalancer struct {
	ID             string
	DisplayName    string
	LifecycleState string
	ShapeName      *string
	IsPrivate      *bool
	TimeCreated    *time.Time
}

// VCN is a virtual cloud network
type VCN struct {
	ID             string
	DisplayName    string
	LifecycleState string
	CIDRBlock      *string
	TimeCreated    *time.Time
}

// Subnet is a subnet inside a VCN
type Subnet struct {
	ID             string
	DisplayName    string
	LifecycleState string
	CIDRBlock      *string
	VCNID          *string
	TimeCreated    *time.Time
}

// Volume is a block volume
type Volume struct {
	ID                 string
	DisplayName        string
	LifecycleState     string
	SizeInGBs          *int64
	AvailabilityDomain *string
	VolumeGroupID      *string
	IsHydrated         *bool
	TimeCreated        *time.Time
}

// FileSystem is a file storage file system
type FileSystem struct {
	ID                 string
	DisplayName        string
	LifecycleState     string
	AvailabilityDomain *string
	MeteredBytes       *int64
	TimeCreated        *time.Time
}

// MetricQuery is one monitoring query in MQL
type MetricQuery struct {
	Namespace     string
	Query         string
	CompartmentID string
	InSubtree     bool
	Start         time.Time
	End           time.Time
}

// Datapoint is one aggregated monitoring sample
type Datapoint struct {
	Timestamp time.Time
	Value     float64
}

// String returns a pointer to s
func String(s string) *string { return &s }

// Int returns a pointer to i
func Int(i int) *int { return &i }

// Int64 returns a pointer to i
func Int64(i int64) *int64 { return &i }

// Bool returns a pointer to b
func Bool(b bool) *bool { return &b }

// Time returns a pointer to t
func Time(t time.Time) *time.Time { return &t }
