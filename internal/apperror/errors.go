// Package apperror provides the domain error types for examboard. Each error
// carries an HTTP status code and a client-safe message. The Echo error
// handler maps them to the JSON error envelope.
//
// NEVER return raw database or infrastructure errors to the client. Wrap them
// in an apperror type or return NewInternal.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error types carried in the envelope's "error" field.
const (
	TypeValidation        = "validation_error"
	TypeDuplicateIdentity = "duplicate_identity"
	TypeDuplicateKey      = "duplicate_key"
	TypeUnauthorized      = "unauthorized"
	TypeAccessDenied      = "access_denied"
	TypeNotFound          = "not_found"
	TypeInternal          = "internal_error"
)

// AppError is the base error type for all domain errors.
type AppError struct {
	// Code is the HTTP status code (e.g., 404, 400, 500).
	Code int `json:"-"`

	// Type is a machine-readable error classifier (e.g., "not_found").
	Type string `json:"error"`

	// Message is a human-readable description safe for the client.
	Message string `json:"message"`

	// Fields names the offending request fields for validation errors.
	Fields []string `json:"fields,omitempty"`

	// Internal holds the underlying error for logging. Never exposed in production.
	Internal error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// WithType returns a copy of e with a more specific Type. Used for validation
// sub-kinds such as "invalid_date".
func (e *AppError) WithType(t string) *AppError {
	cp := *e
	cp.Type = t
	return &cp
}

// --- Constructors ---

// NewValidation creates a 400 error naming the invalid fields.
func NewValidation(message string, fields ...string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    TypeValidation,
		Message: message,
		Fields:  fields,
	}
}

// NewBadRequest creates a 400 error for malformed input that is not tied to
// a particular field (unparseable JSON, bad path ids).
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    TypeValidation,
		Message: message,
	}
}

// NewDuplicateIdentity creates a 400 error for a taken username or email.
func NewDuplicateIdentity(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    TypeDuplicateIdentity,
		Message: message,
	}
}

// NewDuplicateKey creates a 400 error for any other unique-constraint hit.
func NewDuplicateKey(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    TypeDuplicateKey,
		Message: message,
	}
}

// NewUnauthorized creates a 401 Unauthorized error.
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    TypeUnauthorized,
		Message: message,
	}
}

// NewForbidden creates a 403 error for an authenticated caller with the
// wrong role.
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:    http.StatusForbidden,
		Type:    TypeAccessDenied,
		Message: message,
	}
}

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Type:    TypeNotFound,
		Message: message,
	}
}

// NewInternal creates a 500 error. The real error is kept in Internal for
// logging; the client only sees a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     TypeInternal,
		Message:  "An unexpected error occurred. Please try again.",
		Internal: err,
	}
}

// errMissingContext is the shared internal error for nil precondition checks.
var errMissingContext = errors.New("missing required context")

// NewMissingContext creates a 500 error for handlers that run without the
// identity the auth middleware should have attached.
func NewMissingContext() *AppError {
	return NewInternal(errMissingContext)
}

// As extracts an *AppError from err, or returns nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t string) bool {
	appErr := As(err)
	return appErr != nil && appErr.Type == t
}

// SafeCode returns the HTTP status code from an AppError, or 500 for
// any other error type.
func SafeCode(err error) int {
	if appErr := As(err); appErr != nil {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
