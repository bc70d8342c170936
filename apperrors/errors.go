// Package apperrors defines the error taxonomy shared by services and
// controllers. Errors carry human-readable messages only; callers branch on
// them with errors.Is.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateResult = errors.New("test already submitted")
	ErrInvalidInput    = errors.New("invalid input")
)

// NotFoundError names the entity and id a lookup missed. It matches
// ErrNotFound under errors.Is.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
