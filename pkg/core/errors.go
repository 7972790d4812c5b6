package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrReadOnly      = errors.New("collection is in read-only mode")
	ErrInvalidID     = errors.New("identifier cannot be empty")
	ErrInvalidEntity = errors.New("invalid entity")
)

// NotFoundError reports a lookup of an identifier absent from a collection.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q not found", e.Collection, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFound builds a NotFoundError for id in collection.
func NewNotFound(collection, id string) error {
	return &NotFoundError{Collection: collection, ID: id}
}

// ValidationError reports a missing or malformed entity field.
// It matches ErrInvalidEntity with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEntity
}

// Required returns a ValidationError when value is empty.
func Required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "required"}
	}
	return nil
}
