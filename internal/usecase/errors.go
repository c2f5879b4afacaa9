package usecase

import (
	"errors"

	"campus-shop/pkg/utils"
)

// Typed failures services return. The adaptor layer maps each one to a
// fixed status code and a stable message; raw storage errors never leave
// this package unwrapped.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrForbidden       = errors.New("account is deactivated")
	ErrConflict        = errors.New("already registered")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// ValidationError carries field-level detail to the boundary layer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func newValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
