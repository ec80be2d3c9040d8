package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an entity with the same unique attributes already exists.
	ErrConflict = errors.New("already exists")
	// ErrValidation is the parent of every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrDecryption is the only error the secret cipher reports.
	ErrDecryption = errors.New("failed to decrypt secret")
	// ErrInvalidToken covers malformed, tampered, expired and revoked tokens alike.
	ErrInvalidToken = errors.New("token is invalid or expired")
	// ErrInvalidCredentials is returned by login for unknown email, wrong password or inactive account.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInactiveCredential is returned when a deactivated credential is asked for its secret.
	ErrInactiveCredential = errors.New("credential is inactive")
	// ErrQuotaExceeded is raised by callers that check quota before an outbound call.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrUpstream wraps failures of the outbound model provider.
	ErrUpstream = errors.New("upstream model call failed")
)

// ValidationError describes malformed input for a single field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for the field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
