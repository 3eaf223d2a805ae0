package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across stores.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEventNotFound is returned when a booking references an event that
	// does not exist at the moment of the write.
	ErrEventNotFound = errors.New("referenced event does not exist")

	// ErrDuplicateSlug is returned when a write would produce a slug that
	// already belongs to a different event.
	ErrDuplicateSlug = errors.New("an event with this slug already exists")

	// ErrDuplicateBooking is returned when the same email books the same
	// event twice.
	ErrDuplicateBooking = errors.New("this email has already booked this event")
)

// ValidationError reports a missing or malformed input field. The field name
// is preserved so callers can surface which input was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError returns a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
