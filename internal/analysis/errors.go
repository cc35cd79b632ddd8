package analysis

import (
	"fmt"
	"strings"
)

// ErrorType represents the kind of failure at the request boundary
type ErrorType string

const (
	// ErrTypeValidation indicates rejected input; no request was sent
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeTimeout indicates the client-side deadline fired
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeHTTP indicates a non-2xx response
	ErrTypeHTTP ErrorType = "http"

	// ErrTypeMalformedResponse indicates a 2xx response without a usable object
	ErrTypeMalformedResponse ErrorType = "malformed_response"

	// ErrTypeNetwork indicates the request could not be completed
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeCanceled indicates the caller canceled the request
	ErrTypeCanceled ErrorType = "canceled"
)

// Sentinels for errors.Is comparisons; only Type is compared.
var (
	ErrValidation        = &Error{Type: ErrTypeValidation}
	ErrTimeout           = &Error{Type: ErrTypeTimeout}
	ErrHTTP              = &Error{Type: ErrTypeHTTP}
	ErrMalformedResponse = &Error{Type: ErrTypeMalformedResponse}
	ErrNetwork           = &Error{Type: ErrTypeNetwork}
	ErrCanceled          = &Error{Type: ErrTypeCanceled}
)

// Error is a terminal failure of one analysis request
type Error struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message is the human-readable text shown to the user
	Message string `json:"message"`

	// Field names the rejected input for validation errors
	Field string `json:"field,omitempty"`

	// StatusCode for HTTP errors
	StatusCode int `json:"status_code,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Type)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error type
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Type == t.Type
	}
	return false
}

// NewValidationError creates a validation error
func NewValidationError(field, message string) *Error {
	return &Error{Type: ErrTypeValidation, Field: field, Message: message}
}

// NewHTTPError creates an HTTP error carrying the server-supplied or synthesized message
func NewHTTPError(statusCode int, message string) *Error {
	return &Error{Type: ErrTypeHTTP, StatusCode: statusCode, Message: message}
}

// NewMalformedResponseError creates a malformed response error
func NewMalformedResponseError(cause error) *Error {
	return &Error{
		Type:    ErrTypeMalformedResponse,
		Message: "the server returned invalid data",
		Cause:   cause,
	}
}

func newTimeoutError(cause error) *Error {
	return &Error{Type: ErrTypeTimeout, Message: "request timed out", Cause: cause}
}

func newCanceledError(cause error) *Error {
	return &Error{Type: ErrTypeCanceled, Message: "request canceled", Cause: cause}
}

func newNetworkError(message string, cause error) *Error {
	return &Error{Type: ErrTypeNetwork, Message: message, Cause: cause}
}
