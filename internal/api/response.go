package api

import (
	"encoding/json"
	"errors"
	"net/http"

	errorspkg "github.com/catherinevee/inventorymgr/internal/shared/errors"
)

// ResponseWriter wraps http.ResponseWriter with additional functionality
type ResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

// NewResponseWriter creates a new ResponseWriter
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader captures the status code
func (rw *ResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// StatusCode returns the captured status code
func (rw *ResponseWriter) StatusCode() int {
	return rw.statusCode
}

// WriteJSON writes a JSON response with proper headers
func (rw *ResponseWriter) WriteJSON(statusCode int, data interface{}) error {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	return json.NewEncoder(rw).Encode(data)
}

// WriteSuccess writes a success response
func (rw *ResponseWriter) WriteSuccess(data interface{}, meta *APIMeta) error {
	return rw.WriteJSON(http.StatusOK, NewSuccessResponse(data, meta))
}

// WriteError writes an error response
func (rw *ResponseWriter) WriteError(statusCode int, code, message, details string) error {
	return rw.WriteJSON(statusCode, NewErrorResponse(code, message, details))
}

// WriteBadRequest writes a bad request error response
func (rw *ResponseWriter) WriteBadRequest(message string) error {
	return rw.WriteError(http.StatusBadRequest, "BAD_REQUEST", message, "")
}

// WriteNotFound writes a not found error response
func (rw *ResponseWriter) WriteNotFound(resource string) error {
	return rw.WriteError(http.StatusNotFound, "NOT_FOUND", resource+" not found", "")
}

// WriteInternalError writes an internal server error response
func (rw *ResponseWriter) WriteInternalError(message string) error {
	return rw.WriteError(http.StatusInternalServerError, "INTERNAL_ERROR", message, "")
}

// WriteTooManyRequests writes a rate limit response
func (rw *ResponseWriter) WriteTooManyRequests() error {
	return rw.WriteError(http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded", "")
}

// WriteInventoryError maps a typed error onto its status code
func (rw *ResponseWriter) WriteInventoryError(err error) error {
	var invErr *errorspkg.InventoryError
	if !errors.As(err, &invErr) {
		return rw.WriteInternalError(err.Error())
	}
	return rw.WriteError(StatusForError(invErr.Type), invErr.Code, invErr.Message, invErr.UserHelp)
}

// StatusForError returns the HTTP status of an error type
func StatusForError(t errorspkg.ErrorType) int {
	switch t {
	case errorspkg.ErrorTypeValidation:
		return http.StatusBadRequest
	case errorspkg.ErrorTypeNotFound:
		return http.StatusNotFound
	case errorspkg.ErrorTypeUnavailable, errorspkg.ErrorTypeTransport:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// SetNoCacheHeaders sets no-cache headers
func SetNoCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// SetSecurityHeaders sets security headers
func SetSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}
