package error

import (
	"errors"
	"fmt"
)

// User domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptyUserName is returned when a user is created without a name.
	ErrEmptyUserName = fmt.Errorf("%w: user name must not be empty", ErrValidation)

	// ErrNegativeInitialBalance is returned when a user is created with a balance below zero.
	ErrNegativeInitialBalance = fmt.Errorf("%w: initial balance must not be negative", ErrValidation)

	// ErrNonPositiveAmount is returned when a balance change is zero or negative.
	ErrNonPositiveAmount = fmt.Errorf("%w: amount must be greater than zero", ErrPrecondition)

	// ErrInsufficientBalance is returned when a subtraction exceeds the current balance.
	ErrInsufficientBalance = fmt.Errorf("%w: amount exceeds current balance", ErrPrecondition)
)

// UserErrorCode defines error codes for user errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type UserErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyUserName          UserErrorCode = "USR-010001"
	ErrCodeNegativeInitialBalance UserErrorCode = "USR-010002"
	ErrCodeInvalidUserFields      UserErrorCode = "USR-010003"

	// Lookup errors (02XXXX)
	ErrCodeUserNotFound UserErrorCode = "USR-020001"

	// Balance errors (03XXXX)
	ErrCodeNonPositiveAmount   UserErrorCode = "USR-030001"
	ErrCodeInsufficientBalance UserErrorCode = "USR-030002"
)

// UserError represents a user error with code and message.
type UserError struct {
	Code    UserErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return &UserError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// UserErrorFrom maps a user sentinel to its coded form. Unknown errors are returned unchanged.
func UserErrorFrom(err error) error {
	switch {
	case errors.Is(err, ErrEmptyUserName):
		return NewUserError(ErrCodeEmptyUserName, "name is required", err)
	case errors.Is(err, ErrNegativeInitialBalance):
		return NewUserError(ErrCodeNegativeInitialBalance, "balance must not be negative", err)
	case errors.Is(err, ErrNonPositiveAmount):
		return NewUserError(ErrCodeNonPositiveAmount, "amount must be greater than zero", err)
	case errors.Is(err, ErrInsufficientBalance):
		return NewUserError(ErrCodeInsufficientBalance, "insufficient balance", err)
	case errors.Is(err, ErrUserNotFound):
		return NewUserError(ErrCodeUserNotFound, "user not found", err)
	}
	return err
}
