package api

import (
	"context"
	"time"

	"github.com/catherinevee/inventorymgr/internal/cache"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

// APIResponse represents a standardized API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// APIMeta represents response metadata
type APIMeta struct {
	Count     int    `json:"count,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Inventory is the query surface served over HTTP
type Inventory interface {
	ListScopes(ctx context.Context) []models.Scope
	ListResources(ctx context.Context, category, scopeID string) ([]models.Resource, error)
	GetAllResources(ctx context.Context, scopeID string, filter []string) (*models.AggregateResponse, error)
	GetResourceMetrics(ctx context.Context, resourceID, resourceType string) (*models.ResourceMetrics, error)
	Invalidate(ctx context.Context, scopeID string) int
	IsLive() bool
}

// CacheInspector exposes cache statistics
type CacheInspector interface {
	Stats(ctx context.Context) cache.Stats
}

// InvalidateResult is returned by the cache invalidation endpoint
type InvalidateResult struct {
	CompartmentID string `json:"compartment_id"`
	KeysRemoved   int    `json:"keys_removed"`
}

// CategoryResources is returned by the single-category endpoint
type CategoryResources struct {
	CompartmentID string            `json:"compartment_id"`
	Category      models.Category   `json:"category"`
	Resources     []models.Resource `json:"resources"`
	Count         int               `json:"count"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}, meta *APIMeta) *APIResponse {
	if meta == nil {
		meta = &APIMeta{}
	}
	if meta.Timestamp == "" {
		meta.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return &APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message, details string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}
