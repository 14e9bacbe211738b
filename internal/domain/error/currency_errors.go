package error

import "errors"

// Currency domain errors.
var (
	// ErrUnsupportedCurrency is returned when a currency code is absent from the rate table.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrInvalidRate is returned when a rate is missing, zero or negative.
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrRatesUnavailable is returned when no rate table can be obtained at all.
	ErrRatesUnavailable = errors.New("exchange rates unavailable")

	// ErrInvalidAmount is returned when an amount cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")
)

// CurrencyErrorCode defines error codes for currency errors.
// Format: CUR-XXYYYY where XX is category and YYYY is specific error.
type CurrencyErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount   CurrencyErrorCode = "CUR-010001"
	ErrCodeMissingCurrency CurrencyErrorCode = "CUR-010002"

	// Configuration errors (02XXXX)
	ErrCodeUnsupportedCurrency CurrencyErrorCode = "CUR-020001"
	ErrCodeInvalidRate         CurrencyErrorCode = "CUR-020002"

	// Availability errors (03XXXX)
	ErrCodeRatesUnavailable CurrencyErrorCode = "CUR-030001"
)

// CurrencyError represents a currency conversion error with code and message.
type CurrencyError struct {
	Code       CurrencyErrorCode
	Message    string
	Currency   string
	Suggestion string
	Err        error
}

// Error implements the error interface.
func (e *CurrencyError) Error() string {
	msg := e.Message
	if e.Suggestion != "" {
		msg += " (did you mean " + e.Suggestion + "?)"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *CurrencyError) Unwrap() error {
	return e.Err
}

// NewCurrencyError creates a new CurrencyError with the given code and message.
func NewCurrencyError(code CurrencyErrorCode, message, currency string, err error) *CurrencyError {
	return &CurrencyError{
		Code:     code,
		Message:  message,
		Currency: currency,
		Err:      err,
	}
}

// WithSuggestion sets the closest known currency code.
func (e *CurrencyError) WithSuggestion(code string) *CurrencyError {
	e.Suggestion = code
	return e
}
