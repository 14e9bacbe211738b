package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/dto"
)

// Error code categories: the two digits after the prefix, e.g. "01" in AST-010001.
const (
	categoryValidation  = "01"
	categoryAccess      = "02"
	categoryUnavailable = "03"
)

// codeCategory extracts the category digits of a domain error code.
func codeCategory(code string) string {
	_, rest, found := strings.Cut(code, "-")
	if !found || len(rest) < 2 {
		return ""
	}
	return rest[:2]
}

// handleDomainError writes the HTTP response for an error returned by a use case.
func handleDomainError(ctx *gin.Context, err error) {
	status, code, message := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"code", code,
			"error", err,
		)
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// mapDomainError maps a domain error to an HTTP status, error code and message.
// The outermost typed error wins.
func mapDomainError(err error) (int, string, string) {
	var calcErr *domainerror.CalculationError
	if errors.As(err, &calcErr) {
		return statusForCalculationError(calcErr.Code), string(calcErr.Code), calcErr.Error()
	}

	var assetErr *domainerror.AssetError
	if errors.As(err, &assetErr) {
		return statusForAssetError(assetErr.Code), string(assetErr.Code), assetErr.Message
	}

	var paymentErr *domainerror.PaymentError
	if errors.As(err, &paymentErr) {
		return statusForPaymentError(paymentErr.Code), string(paymentErr.Code), paymentErr.Message
	}

	var priceErr *domainerror.MetalPriceError
	if errors.As(err, &priceErr) {
		return statusForCategory(string(priceErr.Code)), string(priceErr.Code), priceErr.Message
	}

	var currencyErr *domainerror.CurrencyError
	if errors.As(err, &currencyErr) {
		return statusForCurrencyError(currencyErr.Code), string(currencyErr.Code), currencyErr.Error()
	}

	var dashboardErr *domainerror.DashboardError
	if errors.As(err, &dashboardErr) {
		return statusForCategory(string(dashboardErr.Code)), string(dashboardErr.Code), dashboardErr.Message
	}

	return http.StatusInternalServerError, "", "An internal error occurred"
}

// statusForAssetError maps asset error codes to HTTP status codes.
func statusForAssetError(code domainerror.AssetErrorCode) int {
	switch code {
	case domainerror.ErrCodeAssetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedAssetAccess:
		return http.StatusForbidden
	default:
		return statusForCategory(string(code))
	}
}

// statusForCalculationError maps calculation error codes to HTTP status codes.
func statusForCalculationError(code domainerror.CalculationErrorCode) int {
	switch code {
	case domainerror.ErrCodeCalculationNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedCalculation:
		return http.StatusForbidden
	case domainerror.ErrCodeResultCurrencyUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return statusForCategory(string(code))
	}
}

// statusForPaymentError maps payment error codes to HTTP status codes.
func statusForPaymentError(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodePaymentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedPayment:
		return http.StatusForbidden
	default:
		return statusForCategory(string(code))
	}
}

// statusForCurrencyError maps currency error codes to HTTP status codes.
// Unknown currencies and bad rates are configuration problems, not bad input.
func statusForCurrencyError(code domainerror.CurrencyErrorCode) int {
	if codeCategory(string(code)) == categoryAccess {
		return http.StatusUnprocessableEntity
	}
	return statusForCategory(string(code))
}

func statusForCategory(code string) int {
	switch codeCategory(code) {
	case categoryValidation:
		return http.StatusBadRequest
	case categoryAccess:
		return http.StatusNotFound
	case categoryUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondUnauthenticated writes the response for a request without a user in context.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// respondBadRequest writes a 400 response for malformed input.
func respondBadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
	})
}
