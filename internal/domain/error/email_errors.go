package error

import "errors"

// Notification errors.
var (
	ErrEmailJobNotFound = errors.New("email job not found")
	ErrUnknownTemplate  = errors.New("unknown email template")
	ErrEmailRejected    = errors.New("email rejected by provider")
	ErrEmailUnavailable = errors.New("email provider unavailable")
)

// EmailErrorCode identifies a notification failure.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Outbox (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"
	ErrCodeEmailJobNotFound EmailErrorCode = "EMAIL-010002"

	// Delivery (02XXXX)
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Rendering (03XXXX)
	ErrCodeInvalidTemplate EmailErrorCode = "EMAIL-030001"
)

// EmailError is a coded notification failure.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailFailure reports whether retrying the delivery cannot help:
// the provider rejected the message or the template could not be rendered.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	if !errors.As(err, &emailErr) {
		return false
	}
	return emailErr.Code == ErrCodePermanentEmailFailure || emailErr.Code == ErrCodeInvalidTemplate
}
