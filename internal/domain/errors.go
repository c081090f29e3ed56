package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyClaimed  = errors.New("application already claimed")
	ErrAlreadyResolved = errors.New("already resolved")
)

// AuthorizationError is returned when the caller lacks the permission or
// party relationship required for an operation. The API layer maps it to 403.
type AuthorizationError struct {
	Permission string
	Track      Track
}

func (e *AuthorizationError) Error() string {
	if e.Permission != "" {
		return fmt.Sprintf("requires %s permission", e.Permission)
	}
	return fmt.Sprintf("requires %s moderation access", e.Track)
}

// ValidationError is a user-facing input failure. No state is mutated when
// one is returned. The API layer maps it to 422.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsAuthorization reports whether err is an AuthorizationError anywhere in
// its chain.
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

// IsValidation reports whether err is a ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
