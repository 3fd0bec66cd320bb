package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned when a record with the same business key already exists.
	ErrConflict = errors.New("resource already exists")
	// ErrBadRequest is returned for malformed request payloads.
	ErrBadRequest = errors.New("bad request")
	// ErrStore wraps unexpected store failures.
	ErrStore = errors.New("store error")
	// ErrUnavailable is returned when a collaborator did not answer in time.
	ErrUnavailable = errors.New("service temporarily unavailable")

	ErrDuplicateUser      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("user is already verified")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email not verified, please verify your OTP first")
	ErrOTPNotFound        = errors.New("OTP not found or expired")
	ErrOTPMismatch        = errors.New("invalid OTP")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrMailDeliveryFailed = errors.New("failed to deliver email")
)

// FieldError describes one failing field of a payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every failing field of a payload, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
