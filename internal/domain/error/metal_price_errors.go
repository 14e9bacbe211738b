package error

import "errors"

// Metal price domain errors.
var (
	// ErrInvalidMetal is returned when the metal is not gold or silver.
	ErrInvalidMetal = errors.New("invalid metal")

	// ErrInvalidPrice is returned when a price per gram is negative or malformed.
	ErrInvalidPrice = errors.New("price per gram must not be negative")

	// ErrPriceProviderUnavailable is returned when the metal price provider fails.
	ErrPriceProviderUnavailable = errors.New("metal price provider unavailable")
)

// MetalPriceErrorCode defines error codes for metal price errors.
// Format: MTL-XXYYYY where XX is category and YYYY is specific error.
type MetalPriceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMetal         MetalPriceErrorCode = "MTL-010001"
	ErrCodeInvalidPrice         MetalPriceErrorCode = "MTL-010002"
	ErrCodeInvalidQuotePurity   MetalPriceErrorCode = "MTL-010003"
	ErrCodeInvalidQuoteCurrency MetalPriceErrorCode = "MTL-010004"

	// Provider errors (03XXXX)
	ErrCodeProviderUnavailable MetalPriceErrorCode = "MTL-030001"
)

// MetalPriceError represents a metal price error with code and message.
type MetalPriceError struct {
	Code    MetalPriceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *MetalPriceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *MetalPriceError) Unwrap() error {
	return e.Err
}

// NewMetalPriceError creates a new MetalPriceError with the given code and message.
func NewMetalPriceError(code MetalPriceErrorCode, message string, err error) *MetalPriceError {
	return &MetalPriceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
