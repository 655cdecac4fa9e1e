package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the service and repository layers.
var (
	// ErrNotFound indicates a lookup by identifier yielded nothing.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a caller-supplied value violated a precondition.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAlreadyExists indicates a uniqueness constraint violation (e.g. email taken).
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError reports a violated entity invariant. The API layer maps it
// to a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
