package error

import "errors"

// Calculation domain errors.
var (
	// ErrCalculationNotFound is returned when a saved calculation does not exist.
	ErrCalculationNotFound = errors.New("calculation not found")

	// ErrUnauthorizedCalculationAccess is returned when the calculation belongs to another user.
	ErrUnauthorizedCalculationAccess = errors.New("unauthorized access to calculation")

	// ErrInvalidNisabStandard is returned when the Nisab standard is not gold or silver.
	ErrInvalidNisabStandard = errors.New("invalid nisab standard")

	// ErrInvalidLiability is returned when a liability amount is negative.
	ErrInvalidLiability = errors.New("liability amount must not be negative")

	// ErrRateTableMissing is returned when no exchange-rate table is available.
	ErrRateTableMissing = errors.New("exchange rate table unavailable")

	// ErrNisabPriceMissing is returned when the Nisab metal has no usable price.
	ErrNisabPriceMissing = errors.New("nisab metal price unavailable")

	// ErrResultCurrencyUnsupported is returned when the result currency cannot be converted to.
	ErrResultCurrencyUnsupported = errors.New("result currency not supported")
)

// CalculationErrorCode defines error codes for Zakat calculation errors.
// Format: ZKT-XXYYYY where XX is category and YYYY is specific error.
type CalculationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidNisabStandard  CalculationErrorCode = "ZKT-010001"
	ErrCodeInvalidLiability      CalculationErrorCode = "ZKT-010002"
	ErrCodeInvalidResultCurrency CalculationErrorCode = "ZKT-010003"

	// Access errors (02XXXX)
	ErrCodeCalculationNotFound     CalculationErrorCode = "ZKT-020001"
	ErrCodeUnauthorizedCalculation CalculationErrorCode = "ZKT-020002"

	// Fatal errors (03XXXX)
	ErrCodeRateTableMissing          CalculationErrorCode = "ZKT-030001"
	ErrCodeNisabPriceMissing         CalculationErrorCode = "ZKT-030002"
	ErrCodeResultCurrencyUnsupported CalculationErrorCode = "ZKT-030003"
)

// CalculationError represents a Zakat calculation error with code and message.
type CalculationError struct {
	Code    CalculationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CalculationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CalculationError) Unwrap() error {
	return e.Err
}

// NewCalculationError creates a new CalculationError with the given code and message.
func NewCalculationError(code CalculationErrorCode, message string, err error) *CalculationError {
	return &CalculationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
