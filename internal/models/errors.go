package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a malformed or out-of-range evaluation input
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariantViolation indicates an internal consistency check failed
	ErrInvariantViolation = errors.New("invariant violation")
)

// InputError names the offending input field
type InputError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: field %s (value %v): %s", e.Field, e.Value, e.Reason)
}

// Is matches ErrInvalidInput
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInputError creates a new input error
func NewInputError(field string, value interface{}, reason string) *InputError {
	return &InputError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// InvariantError describes a failed internal consistency check
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated [%s]: %s", e.Invariant, e.Detail)
}

// Is matches ErrInvariantViolation
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// NewInvariantError creates a new invariant error
func NewInvariantError(invariant, detail string) *InvariantError {
	return &InvariantError{
		Invariant: invariant,
		Detail:    detail,
	}
}
