package error

import "errors"

// Dashboard domain errors.
var (
	// ErrMissingStartDate is returned when a trend request has no start date.
	ErrMissingStartDate = errors.New("start date is required")

	// ErrMissingEndDate is returned when a trend request has no end date.
	ErrMissingEndDate = errors.New("end date is required")

	// ErrInvalidDateRange is returned when the end date is before the start date.
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrInvalidGranularity is returned for an unknown trend granularity.
	ErrInvalidGranularity = errors.New("invalid granularity")

	// ErrInvalidDateFormat is returned when a date query parameter cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStartDate   DashboardErrorCode = "DSH-010001"
	ErrCodeMissingEndDate     DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidDateRange   DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidGranularity DashboardErrorCode = "DSH-010004"
	ErrCodeInvalidDateFormat  DashboardErrorCode = "DSH-010005"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
