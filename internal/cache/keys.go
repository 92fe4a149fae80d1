package cache

import (
	"strings"
	"time"
)

// TTLs per key family
const (
	TopologyTTL  = 600 * time.Second
	InventoryTTL = 300 * time.Second
	MetricsTTL   = 60 * time.Second
)

const keyNamespace = "oci"

// Key builds a cache key of the form oci:<operation>[:<arg>...]
func Key(operation string, args ...string) string {
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, keyNamespace, operation)
	parts = append(parts, args...)
	return strings.Join(parts, ":")
}

// CompartmentsKey is the key of the scope directory
func CompartmentsKey() string {
	return Key("compartments")
}

// InventoryKey is the key of one category inventory in one scope
func InventoryKey(operation, scopeID string) string {
	return Key(operation, scopeID)
}

// MetricsKey is the key of one resource's metrics
func MetricsKey(resourceID, resourceType string) string {
	return Key("metrics", resourceID, resourceType)
}

// operationOf extracts the operation segment used as a metrics label
func operationOf(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 || parts[0] != keyNamespace {
		return "other"
	}
	return parts[1]
}
