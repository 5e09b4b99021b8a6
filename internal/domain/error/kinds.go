// Package error defines domain-specific errors for the receipt split application.
package error

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain sentinel wraps exactly one of these so callers can
// tell a malformed input apart from a business rule violation with errors.Is.
var (
	// ErrValidation marks errors raised while constructing a domain value.
	ErrValidation = errors.New("validation failed")

	// ErrPrecondition marks errors raised when an operation is called in a state that forbids it.
	ErrPrecondition = errors.New("precondition failed")
)

// ErrSubMinorUnit is returned for money amounts finer than the smallest currency unit.
var ErrSubMinorUnit = fmt.Errorf("%w: amount is finer than the smallest currency unit", ErrValidation)

// IsValidation reports whether err is a construction-time validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsPrecondition reports whether err is a call-time precondition error.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}
