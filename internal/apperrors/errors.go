package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories, services and handlers.
var (
	// ErrNotFound signals that a product or purchase ID did not resolve
	// to an existing row.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateName signals a unique-constraint violation on the
	// product name. The purchase-by-name path never returns it; that path
	// reuses the existing product instead.
	ErrDuplicateName = errors.New("product name already exists")
)

// ValidationError reports a rejected input field. It maps to a 400 response
// with a field-level message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
