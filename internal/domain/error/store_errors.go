package error

import (
	"errors"
	"fmt"
)

// Store and coupon domain errors.
var (
	// ErrStoreNotFound is returned when a store is not found in the system.
	ErrStoreNotFound = errors.New("store not found")

	// ErrStoreAlreadyExists is returned when a store name is already taken.
	ErrStoreAlreadyExists = errors.New("store already exists")

	// ErrEmptyStoreName is returned when a store is created without a name.
	ErrEmptyStoreName = fmt.Errorf("%w: store name must not be empty", ErrValidation)

	// ErrCouponNotFound is returned when a user has no stamp card at a store.
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrInvalidCouponGoal is returned when a coupon goal is zero or negative.
	ErrInvalidCouponGoal = fmt.Errorf("%w: coupon goal must be positive", ErrValidation)
)

// StoreErrorCode defines error codes for store errors.
// Format: STR-XXYYYY where XX is category and YYYY is specific error.
type StoreErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyStoreName     StoreErrorCode = "STR-010001"
	ErrCodeInvalidCouponGoal  StoreErrorCode = "STR-010002"
	ErrCodeMissingStoreFields StoreErrorCode = "STR-010003"

	// Lookup errors (02XXXX)
	ErrCodeStoreNotFound      StoreErrorCode = "STR-020001"
	ErrCodeStoreAlreadyExists StoreErrorCode = "STR-020002"
)

// StoreError represents a store error with code and message.
type StoreError struct {
	Code    StoreErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given code and message.
func NewStoreError(code StoreErrorCode, message string, err error) *StoreError {
	return &StoreError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// StoreErrorFrom maps a store sentinel to its coded form. Unknown errors are returned unchanged.
func StoreErrorFrom(err error) error {
	switch {
	case errors.Is(err, ErrEmptyStoreName):
		return NewStoreError(ErrCodeEmptyStoreName, "store name is required", err)
	case errors.Is(err, ErrInvalidCouponGoal):
		return NewStoreError(ErrCodeInvalidCouponGoal, "coupon goal must be greater than zero", err)
	case errors.Is(err, ErrStoreNotFound):
		return NewStoreError(ErrCodeStoreNotFound, "store not found", err)
	case errors.Is(err, ErrStoreAlreadyExists):
		return NewStoreError(ErrCodeStoreAlreadyExists, "a store with this name already exists", err)
	}
	return err
}
