package models

import "time"

// AllCompartments is the scope reported when every compartment was queried
const AllCompartments = "all_compartments"

// AggregateResponse is the merged inventory of one or all scopes
type AggregateResponse struct {
	CompartmentID       string                  `json:"compartment_id"`
	Resources           map[Category][]Resource `json:"resources"`
	TotalResources      int                     `json:"total_resources"`
	LastUpdated         time.Time               `json:"last_updated"`
	CompartmentsQueried int                     `json:"compartments_queried,omitempty"`
}

// Count sums the per-category sequence lengths
func (r *AggregateResponse) Count() int {
	total := 0
	for _, resources := range r.Resources {
		total += len(resources)
	}
	return total
}

// Health states reported with resource metrics
const (
	HealthHealthy  = "HEALTHY"
	HealthWarning  = "WARNING"
	HealthCritical = "CRITICAL"
	HealthUnknown  = "UNKNOWN"
)

// MetricValues holds the sampled utilization figures of a resource
type MetricValues struct {
	CPUUtilization    float64 `json:"cpu_utilization"`
	MemoryUtilization float64 `json:"memory_utilization"`
	NetworkBytesIn    int64   `json:"network_bytes_in"`
	NetworkBytesOut   int64   `json:"network_bytes_out"`
}

// ResourceMetrics is a point-in-time metrics summary for one resource
type ResourceMetrics struct {
	ResourceID   string       `json:"resource_id"`
	ResourceType ResourceType `json:"resource_type"`
	Metrics      MetricValues `json:"metrics"`
	Timestamp    time.Time    `json:"timestamp"`
	HealthStatus string       `json:"health_status"`
}

// HealthFromCPU derives a coarse health state from CPU utilization
func HealthFromCPU(cpu float64, sampled bool) string {
	switch {
	case !sampled:
		return HealthUnknown
	case cpu > 90:
		return HealthCritical
	case cpu > 75:
		return HealthWarning
	default:
		return HealthHealthy
	}
}
