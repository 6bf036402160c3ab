package services

import (
	"fmt"

	"github.com/NEERAJ-0/TrackMyScore-Academic-Performance-Management-System/internal/validation"
)

// ValidationError carries per-field messages for a rejected write.
// Nothing is persisted when one is returned.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

// NewValidationError wraps a set of field errors.
func NewValidationError(fields validation.FieldErrors) error {
	return &ValidationError{Fields: fields}
}

// ConflictError signals a uniqueness violation or a delete blocked by
// referencing records, detected either by the pre-check or by the store.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflictError builds a ConflictError with the given message.
func NewConflictError(msg string) error {
	return &ConflictError{Message: msg}
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NewNotFoundError builds a NotFoundError for the named resource.
func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}
