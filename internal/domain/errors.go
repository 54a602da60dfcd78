package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the sentinel behind every InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConsistency signals a broken internal invariant, such as scaled
	// activity durations not adding up to the requested phase total.
	ErrConsistency = errors.New("consistency violation")

	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the session's role may not run an operation.
	ErrForbidden = errors.New("forbidden")
)

// InvalidInputError carries the offending field and why it was rejected.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput is shorthand for a formatted InvalidInputError.
func NewInvalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ForbiddenError names the role that was refused.
type ForbiddenError struct {
	Role      Role
	Operation string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("role %s may not %s", e.Role, e.Operation)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound reports whether err indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsForbidden reports whether err is an authorization refusal.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
