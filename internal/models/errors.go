package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every layer. Transports map them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrServiceUnavailable = errors.New("service unavailable")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one or more field-level problems and unwraps to ErrValidation.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// Unavailable wraps cause so that errors.Is(err, ErrServiceUnavailable) holds.
func Unavailable(reason string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, reason)
	}
	return fmt.Errorf("%w: %s: %v", ErrServiceUnavailable, reason, cause)
}
