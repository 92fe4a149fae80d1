package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError is a failed provider call carrying the HTTP status
type ServiceError struct {
	StatusCode   int
	Code         string
	Message      string
	OpcRequestID string
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("service error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("service error %d: %s", e.StatusCode, e.Message)
}

// IsAuthError reports 401 and 403 responses
func (e *ServiceError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsThrottled reports 429 responses
func (e *ServiceError) IsThrottled() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// AsServiceError unwraps err into a ServiceError
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
