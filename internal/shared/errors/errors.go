package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration" // Missing or invalid credentials, fatal at construction
	ErrorTypeTransport     ErrorType = "transport"     // A remote call failed
	ErrorTypeCache         ErrorType = "cache"         // Cache store unreachable or corrupt
	ErrorTypeUnavailable   ErrorType = "unavailable"   // No degraded result could be produced
	ErrorTypeValidation    ErrorType = "validation"    // Caller input errors
	ErrorTypeNotFound      ErrorType = "not_found"     // Resource not found errors
)

// ErrorSeverity represents the severity level
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "critical"
	SeverityHigh     ErrorSeverity = "high"
	SeverityMedium   ErrorSeverity = "medium"
	SeverityLow      ErrorSeverity = "low"
)

// InventoryError is the typed error surfaced by the inventory core
type InventoryError struct {
	Type       ErrorType              `json:"type"`
	Severity   ErrorSeverity          `json:"severity"`
	Code       string                 `json:"code,omitempty"`
	Message    string                 `json:"message"`
	UserHelp   string                 `json:"user_help,omitempty"`
	Resource   string                 `json:"resource,omitempty"`
	Operation  string                 `json:"operation,omitempty"`
	StatusCode int                    `json:"status_code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	StackTrace string                 `json:"stack_trace,omitempty"`
	Wrapped    error                  `json:"-"`
}

// Error implements the error interface
func (e *InventoryError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	parts = append(parts, e.Message)

	if e.Resource != "" {
		parts = append(parts, fmt.Sprintf("(resource: %s)", e.Resource))
	}

	if e.Wrapped != nil {
		parts = append(parts, fmt.Sprintf("caused by: %v", e.Wrapped))
	}

	return strings.Join(parts, " ")
}

// Unwrap returns the wrapped error
func (e *InventoryError) Unwrap() error {
	return e.Wrapped
}

// Is matches on type and code so sentinel-style comparisons work with errors.Is
func (e *InventoryError) Is(target error) bool {
	t, ok := target.(*InventoryError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithDetails adds additional context details
func (e *InventoryError) WithDetails(key string, value interface{}) *InventoryError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON serializes error to JSON
func (e *InventoryError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// ErrorBuilder provides fluent API for building errors
type ErrorBuilder struct {
	err *InventoryError
}

// NewError creates a new error builder
func NewError(errType ErrorType, message string) *ErrorBuilder {
	_, file, line, _ := runtime.Caller(1)

	return &ErrorBuilder{
		err: &InventoryError{
			Type:       errType,
			Severity:   SeverityMedium,
			Message:    message,
			Timestamp:  time.Now(),
			StackTrace: fmt.Sprintf("%s:%d", file, line),
			Details:    make(map[string]interface{}),
		},
	}
}

// WithCode sets error code
func (b *ErrorBuilder) WithCode(code string) *ErrorBuilder {
	b.err.Code = code
	return b
}

// WithSeverity sets error severity
func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.Severity = severity
	return b
}

// WithResource sets the affected resource
func (b *ErrorBuilder) WithResource(resource string) *ErrorBuilder {
	b.err.Resource = resource
	return b
}

// WithOperation sets the operation that failed
func (b *ErrorBuilder) WithOperation(operation string) *ErrorBuilder {
	b.err.Operation = operation
	return b
}

// WithStatusCode records the provider status code
func (b *ErrorBuilder) WithStatusCode(code int) *ErrorBuilder {
	b.err.StatusCode = code
	return b
}

// WithUserHelp adds user help text
func (b *ErrorBuilder) WithUserHelp(help string) *ErrorBuilder {
	b.err.UserHelp = help
	return b
}

// WithDetails adds context details
func (b *ErrorBuilder) WithDetails(key string, value interface{}) *ErrorBuilder {
	b.err.Details[key] = value
	return b
}

// WithWrapped wraps another error
func (b *ErrorBuilder) WithWrapped(err error) *ErrorBuilder {
	b.err.Wrapped = err
	return b
}

// Build returns the built error
func (b *ErrorBuilder) Build() *InventoryError {
	return b.err
}

// Common error constructors

// NewConfigurationError reports credentials or settings that prevent live mode
func NewConfigurationError(message string, cause error) *InventoryError {
	return NewError(ErrorTypeConfiguration, message).
		WithCode("CONFIG").
		WithSeverity(SeverityHigh).
		WithWrapped(cause).
		WithUserHelp("Check the OCI config file, profile and key file, or set oci.use_mock").
		Build()
}

// NewTransportError reports a failed remote call
func NewTransportError(operation string, cause error) *InventoryError {
	return NewError(ErrorTypeTransport, fmt.Sprintf("remote call %s failed", operation)).
		WithCode("TRANSPORT").
		WithOperation(operation).
		WithWrapped(cause).
		Build()
}

// NewCacheError reports a cache store failure; callers treat it as a miss
func NewCacheError(operation, key string, cause error) *InventoryError {
	return NewError(ErrorTypeCache, fmt.Sprintf("cache %s failed", operation)).
		WithCode("CACHE").
		WithSeverity(SeverityLow).
		WithOperation(operation).
		WithResource(key).
		WithWrapped(cause).
		Build()
}

// NewUnavailableError reports a request that could not produce even a degraded result
func NewUnavailableError(message string, cause error) *InventoryError {
	return NewError(ErrorTypeUnavailable, message).
		WithCode("UNAVAILABLE").
		WithSeverity(SeverityCritical).
		WithWrapped(cause).
		WithUserHelp("The inventory service is temporarily unavailable, try again later").
		Build()
}

// NewValidationError creates a validation error
func NewValidationError(resource string, message string) *InventoryError {
	return NewError(ErrorTypeValidation, message).
		WithCode("VALIDATION").
		WithResource(resource).
		WithSeverity(SeverityLow).
		WithUserHelp("Please check your input and try again").
		Build()
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *InventoryError {
	return NewError(ErrorTypeNotFound, fmt.Sprintf("Resource not found: %s", resource)).
		WithCode("NOT_FOUND").
		WithResource(resource).
		WithSeverity(SeverityLow).
		Build()
}

// IsType reports whether err, or anything it wraps, is an InventoryError of the given type
func IsType(err error, errType ErrorType) bool {
	var invErr *InventoryError
	if stderrors.As(err, &invErr) {
		return invErr.Type == errType
	}
	return false
}

// TypeOf returns the error type of err, or an empty type for foreign errors
func TypeOf(err error) ErrorType {
	var invErr *InventoryError
	if stderrors.As(err, &invErr) {
		return invErr.Type
	}
	return ""
}
