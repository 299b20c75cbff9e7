// Package apierrors defines the error taxonomy that crosses the API boundary.
// Anything not expressible in this taxonomy is reported as a generic internal
// error; raw detail stays server-side.
package apierrors

import (
	"fmt"
	"net/http"
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError carries an HTTP status and a client-safe body. Validation errors
// carry a field-message list; all other kinds carry a single message.
type APIError struct {
	Status  int          `json:"-"`
	Message string       `json:"error,omitempty"`
	Fields  []FieldError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("validation failed: %d field error(s)", len(e.Fields))
	}
	return e.Message
}

// NewValidation reports malformed or missing input as a field-message list.
func NewValidation(fields ...FieldError) *APIError {
	return &APIError{
		Status: http.StatusBadRequest,
		Fields: fields,
	}
}

// NewEmailTaken reports a registration conflict as a validation-style error.
func NewEmailTaken() *APIError {
	return NewValidation(FieldError{
		Field:   "email",
		Message: "email is already registered",
	})
}

// NewAuthFailed reports bad login credentials. The message is identical for
// unknown email and wrong password so neither cause is revealed.
func NewAuthFailed() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: "invalid credentials",
	}
}

// NewMissingToken reports a request without a bearer credential.
func NewMissingToken() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: "authorization token required",
	}
}

// NewInvalidToken reports a malformed, forged or expired bearer credential.
func NewInvalidToken() *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Message: "invalid or expired token",
	}
}

// NewTaskNotFound reports an absent task. The response is identical whether
// the task does not exist or belongs to another user.
func NewTaskNotFound() *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Message: "task not found",
	}
}

// NewInternal reports an unexpected failure without leaking its cause.
func NewInternal() *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
	}
}
