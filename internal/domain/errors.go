package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when caller-supplied input violates a field contract.
	// It is usually wrapped in a ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is not a well-formed store key.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidTaskStatus is returned when a status is not one of the enumerated values.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrEmptyTaskTitle is returned when a title is missing or trims to empty.
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")

	// ErrEmptyTaskSubtitle is returned when a subtitle is set to an empty value.
	// Empty subtitles must be expressed as a removal instead.
	ErrEmptyTaskSubtitle = errors.New("task subtitle cannot be empty")
)

// ValidationError describes a field-level contract violation. Message is
// human-readable and safe to return to API clients.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for field. If err is nil the
// error wraps ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// IsValidationError reports whether err is or wraps a ValidationError or one of
// the validation sentinels.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID)
}
