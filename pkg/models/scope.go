package models

import "time"

// Scope is a compartment, or the tenancy itself when ParentID is empty
type Scope struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	LifecycleState string     `json:"lifecycle_state"`
	ParentID       string     `json:"compartment_id,omitempty"`
	TimeCreated    *time.Time `json:"time_created,omitempty"`
}

// IsRoot reports whether the scope has no parent
func (s Scope) IsRoot() bool {
	return s.ParentID == ""
}

// Well-known scope identifiers and names
const (
	MockRootID      = "ocid1.tenancy.oc1..dummyroot"
	ErrorFallbackID = "ocid1.compartment.oc1..error1"

	RootScopeName          = "Root Tenancy"
	RootScopeDescription   = "Root tenancy compartment"
	DefaultDescription     = "No description"
	ProviderRootName       = "(root)"
	ErrorFallbackScopeName = "Error-Fallback"
)
