package error

import (
	"errors"
	"fmt"
)

// Receipt domain errors.
var (
	// ErrReceiptNotFound is returned when a receipt is not found in the system.
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrReceiptItemNotFound is returned when an item does not belong to the receipt.
	ErrReceiptItemNotFound = errors.New("receipt item not found")

	// ErrMissingUploader is returned when a receipt is created without an uploader.
	ErrMissingUploader = fmt.Errorf("%w: receipt requires an uploader", ErrValidation)

	// ErrEmptyItemName is returned when an item is created without a name.
	ErrEmptyItemName = fmt.Errorf("%w: item name must not be empty", ErrValidation)

	// ErrNegativePrice is returned when an item has a unit price below zero.
	ErrNegativePrice = fmt.Errorf("%w: price must not be negative", ErrValidation)

	// ErrInvalidQuantity is returned when an item quantity is below one.
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be at least 1", ErrValidation)

	// ErrInvalidSplitPolicy is returned when an unknown split policy is requested.
	ErrInvalidSplitPolicy = fmt.Errorf("%w: unknown split policy", ErrValidation)
)

// ReceiptErrorCode defines error codes for receipt errors.
// Format: RCT-XXYYYY where XX is category and YYYY is specific error.
type ReceiptErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingUploader      ReceiptErrorCode = "RCT-010001"
	ErrCodeEmptyItemName        ReceiptErrorCode = "RCT-010002"
	ErrCodeNegativePrice        ReceiptErrorCode = "RCT-010003"
	ErrCodeInvalidQuantity      ReceiptErrorCode = "RCT-010004"
	ErrCodeInvalidSplitPolicy   ReceiptErrorCode = "RCT-010005"
	ErrCodeMissingReceiptFields ReceiptErrorCode = "RCT-010006"
	ErrCodeUnknownAssignee      ReceiptErrorCode = "RCT-010007"

	// Lookup errors (02XXXX)
	ErrCodeReceiptNotFound     ReceiptErrorCode = "RCT-020001"
	ErrCodeReceiptItemNotFound ReceiptErrorCode = "RCT-020002"
)

// ReceiptError represents a receipt error with code and message.
type ReceiptError struct {
	Code    ReceiptErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReceiptError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReceiptError) Unwrap() error {
	return e.Err
}

// NewReceiptError creates a new ReceiptError with the given code and message.
func NewReceiptError(code ReceiptErrorCode, message string, err error) *ReceiptError {
	return &ReceiptError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ReceiptErrorFrom maps a receipt sentinel to its coded form. Unknown errors are returned unchanged.
func ReceiptErrorFrom(err error) error {
	switch {
	case errors.Is(err, ErrMissingUploader):
		return NewReceiptError(ErrCodeMissingUploader, "uploader is required", err)
	case errors.Is(err, ErrEmptyItemName):
		return NewReceiptError(ErrCodeEmptyItemName, "item name is required", err)
	case errors.Is(err, ErrNegativePrice):
		return NewReceiptError(ErrCodeNegativePrice, "price must not be negative", err)
	case errors.Is(err, ErrInvalidQuantity):
		return NewReceiptError(ErrCodeInvalidQuantity, "quantity must be at least 1", err)
	case errors.Is(err, ErrInvalidSplitPolicy):
		return NewReceiptError(ErrCodeInvalidSplitPolicy, "policy must be 'assignment', 'individual', or 'shared'", err)
	case errors.Is(err, ErrReceiptNotFound):
		return NewReceiptError(ErrCodeReceiptNotFound, "receipt not found", err)
	case errors.Is(err, ErrReceiptItemNotFound):
		return NewReceiptError(ErrCodeReceiptItemNotFound, "receipt item not found", err)
	}
	return err
}
