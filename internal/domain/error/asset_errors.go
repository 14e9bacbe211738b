// Package error defines domain-specific errors for the Zakat Manager application.
package error

import "errors"

// Asset domain errors.
var (
	// ErrAssetNotFound is returned when an asset does not exist or was deleted.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrUnauthorizedAssetAccess is returned when the asset belongs to another user.
	ErrUnauthorizedAssetAccess = errors.New("unauthorized access to asset")

	// ErrInvalidAssetCategory is returned when the category is not supported.
	ErrInvalidAssetCategory = errors.New("invalid asset category")

	// ErrInvalidAssetName is returned when the name is empty or too long.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidWeight is returned when a metal weight is missing, negative or too precise.
	ErrInvalidWeight = errors.New("weight must not be negative")

	// ErrInvalidPurity is returned when neither or both of karat and purity are set,
	// or the purity fraction is outside (0, 1].
	ErrInvalidPurity = errors.New("exactly one of karat or purity fraction in (0, 1] is required")

	// ErrInvalidAssetValue is returned when a monetary value is negative.
	ErrInvalidAssetValue = errors.New("value must not be negative")

	// ErrHoldingMismatch is returned when the holding variant does not match the category.
	ErrHoldingMismatch = errors.New("holding does not match asset category")

	// ErrInvalidUsage is returned when the usage tag is unknown.
	ErrInvalidUsage = errors.New("invalid asset usage")

	// ErrInvalidAcquisitionDate is returned when the acquisition date is in the future.
	ErrInvalidAcquisitionDate = errors.New("acquisition date cannot be in the future")
)

// AssetErrorCode defines error codes for asset errors.
// Format: AST-XXYYYY where XX is category and YYYY is specific error.
type AssetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAssetCategory   AssetErrorCode = "AST-010001"
	ErrCodeInvalidAssetName       AssetErrorCode = "AST-010002"
	ErrCodeInvalidWeight          AssetErrorCode = "AST-010003"
	ErrCodeInvalidPurity          AssetErrorCode = "AST-010004"
	ErrCodeInvalidAssetValue      AssetErrorCode = "AST-010005"
	ErrCodeHoldingMismatch        AssetErrorCode = "AST-010006"
	ErrCodeInvalidUsage           AssetErrorCode = "AST-010007"
	ErrCodeInvalidAcquisitionDate AssetErrorCode = "AST-010008"
	ErrCodeInvalidAssetCurrency   AssetErrorCode = "AST-010009"
	ErrCodeMissingAssetFields     AssetErrorCode = "AST-010010"

	// Access errors (02XXXX)
	ErrCodeAssetNotFound           AssetErrorCode = "AST-020001"
	ErrCodeUnauthorizedAssetAccess AssetErrorCode = "AST-020002"
)

// AssetError represents an asset error with code and message.
type AssetError struct {
	Code    AssetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AssetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AssetError) Unwrap() error {
	return e.Err
}

// NewAssetError creates a new AssetError with the given code and message.
func NewAssetError(code AssetErrorCode, message string, err error) *AssetError {
	return &AssetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
