// Package apperr defines the error taxonomy shared by services and HTTP
// handlers: field-level validation failures, missing entities, and storage
// failures. Handlers map each kind to a status code; storage detail is never
// returned to callers.
package apperr

import (
	"errors"
	"fmt"
)

// Validation constraint names reported alongside the offending field.
const (
	ConstraintRequired     = "required"
	ConstraintLength       = "length"
	ConstraintFormat       = "format"
	ConstraintRange        = "range"
	ConstraintEnum         = "enum"
	ConstraintUnknownField = "unknown_field"
)

// ValidationError reports the first field that failed a declared constraint.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, describe(e.Constraint))
}

// Validation builds a *ValidationError.
func Validation(field, constraint string) error {
	return &ValidationError{Field: field, Constraint: constraint}
}

func describe(constraint string) string {
	switch constraint {
	case ConstraintRequired:
		return "field is required"
	case ConstraintLength:
		return "length out of bounds"
	case ConstraintFormat:
		return "malformed value"
	case ConstraintRange:
		return "value out of range"
	case ConstraintEnum:
		return "not an allowed value"
	case ConstraintUnknownField:
		return "unknown field"
	default:
		return constraint
	}
}

// NotFoundError reports that no entity matched the referenced id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// NotFound builds a *NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// StorageError wraps a persistence failure (connectivity loss, timeout,
// unacknowledged write) with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a *StorageError. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsStorage reports whether err is (or wraps) a *StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
