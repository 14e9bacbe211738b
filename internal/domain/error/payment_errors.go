package error

import "errors"

// Payment domain errors.
var (
	// ErrPaymentNotFound is returned when a payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrUnauthorizedPaymentAccess is returned when the payment belongs to another user.
	ErrUnauthorizedPaymentAccess = errors.New("unauthorized access to payment")

	// ErrInvalidPaymentAmount is returned when the amount is zero or negative.
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")

	// ErrInvalidPaymentStatus is returned when the status is unknown.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPaymentAmount   PaymentErrorCode = "PAY-010001"
	ErrCodeInvalidPaymentStatus   PaymentErrorCode = "PAY-010002"
	ErrCodeInvalidPaymentCurrency PaymentErrorCode = "PAY-010003"
	ErrCodeInvalidPaymentDate     PaymentErrorCode = "PAY-010004"
	ErrCodePaymentCalculationLink PaymentErrorCode = "PAY-010005"

	// Access errors (02XXXX)
	ErrCodePaymentNotFound     PaymentErrorCode = "PAY-020001"
	ErrCodeUnauthorizedPayment PaymentErrorCode = "PAY-020002"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
