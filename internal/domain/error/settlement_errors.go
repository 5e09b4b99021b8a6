package error

import (
	"errors"
	"fmt"
)

// Settlement domain errors.
var (
	// ErrUnassignedItems is returned when a multi-payer settlement is attempted with orphaned items.
	ErrUnassignedItems = fmt.Errorf("%w: every item must be assigned before settlement", ErrPrecondition)

	// ErrInvalidSettlementPolicy is returned when an unknown settlement policy is requested.
	ErrInvalidSettlementPolicy = fmt.Errorf("%w: unknown settlement policy", ErrValidation)

	// ErrReceiptAlreadySettled is returned when an earlier settlement of the receipt already charged its users.
	ErrReceiptAlreadySettled = fmt.Errorf("%w: receipt is already settled", ErrPrecondition)

	// ErrSettlementInProgress is returned when another settlement holds the lock of an involved user.
	ErrSettlementInProgress = errors.New("settlement already in progress for user")
)

// SettlementErrorCode defines error codes for settlement errors.
// Format: STL-XXYYYY where XX is category and YYYY is specific error.
type SettlementErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidSettlementPolicy SettlementErrorCode = "STL-010001"
	ErrCodeMissingSettlementFields SettlementErrorCode = "STL-010002"

	// Business rule errors (02XXXX)
	ErrCodeUnassignedItems       SettlementErrorCode = "STL-020001"
	ErrCodeReceiptAlreadySettled SettlementErrorCode = "STL-020002"

	// Concurrency errors (03XXXX)
	ErrCodeSettlementInProgress SettlementErrorCode = "STL-030001"
)

// SettlementError represents a settlement error with code and message.
type SettlementError struct {
	Code    SettlementErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SettlementError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SettlementError) Unwrap() error {
	return e.Err
}

// NewSettlementError creates a new SettlementError with the given code and message.
func NewSettlementError(code SettlementErrorCode, message string, err error) *SettlementError {
	return &SettlementError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
