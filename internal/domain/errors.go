package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel every validation failure wraps. Callers
// can match the whole class with errors.Is and recover the offending
// field with errors.As on *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports the first field that failed entity validation.
// The field name is the wire name shared by both engines (camelCase),
// not the Go struct field name.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s %s", e.Entity, e.Field, e.Reason)
}

// Unwrap ties every ValidationError to the ErrValidation sentinel.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for entity's field.
func NewValidationError(entity, field, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}
