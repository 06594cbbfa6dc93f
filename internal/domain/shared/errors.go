// Package shared contains common domain types, errors and events that are
// used across all domain packages. This package has no dependencies outside
// the standard library except for event identifiers.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// ErrInvalidArgument marks malformed or out-of-bounds input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a lookup with no match.
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists marks an attempt to add an entry that is already present.
	ErrAlreadyExists = errors.New("entity already exists")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g. "student", "roster"
	Op      string // Operation that failed, e.g. "Create", "AddGrade"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching against both Kind and Err.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Roster errors surfaced by the application layer. The store itself reports
// these outcomes as boolean results.
var (
	ErrStudentNotFound      = NewDomainError("roster", "Find", ErrNotFound, "student not found")
	ErrStudentAlreadyExists = NewDomainError("roster", "AddStudent", ErrAlreadyExists, "student already exists")
)

// IsInvalidArgument checks if the error is a validation error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
