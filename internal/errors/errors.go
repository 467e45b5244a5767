package errors

import (
	"fmt"
	"net/http"
)

// APIError is a request-level failure with a fixed status and error code.
// ErrorHandler renders it as a problem document.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// ValidationError describes one rejected query parameter
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// ErrRateLimitExceeded is returned by the rate limiter middleware
var ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

// ErrValidation creates a validation error for a single parameter
func ErrValidation(field, message string) *APIError {
	return NewValidationErrors([]ValidationError{{Field: field, Message: message}})
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errs []ValidationError) *APIError {
	e := New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	e.Details = ValidationErrors{Errors: errs}
	return e
}

// NotFoundError creates a not found error naming the resource
func NotFoundError(resource string) *APIError {
	e := New(http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", resource))
	e.Details = map[string]string{"resource": resource}
	return e
}
