package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/dto"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "asset validation",
			err:    domainerror.NewAssetError(domainerror.ErrCodeInvalidWeight, "bad weight", domainerror.ErrInvalidWeight),
			status: http.StatusBadRequest,
			code:   "AST-010003",
		},
		{
			name:   "asset not found",
			err:    domainerror.NewAssetError(domainerror.ErrCodeAssetNotFound, "asset not found", domainerror.ErrAssetNotFound),
			status: http.StatusNotFound,
			code:   "AST-020001",
		},
		{
			name:   "asset of another user",
			err:    domainerror.NewAssetError(domainerror.ErrCodeUnauthorizedAssetAccess, "forbidden", domainerror.ErrUnauthorizedAssetAccess),
			status: http.StatusForbidden,
			code:   "AST-020002",
		},
		{
			name:   "calculation of another user",
			err:    domainerror.NewCalculationError(domainerror.ErrCodeUnauthorizedCalculation, "forbidden", nil),
			status: http.StatusForbidden,
			code:   "ZKT-020002",
		},
		{
			name:   "unsupported result currency",
			err:    domainerror.NewCalculationError(domainerror.ErrCodeResultCurrencyUnsupported, "XYZ", nil),
			status: http.StatusUnprocessableEntity,
			code:   "ZKT-030003",
		},
		{
			name:   "nisab price missing",
			err:    domainerror.NewCalculationError(domainerror.ErrCodeNisabPriceMissing, "no gold price", nil),
			status: http.StatusServiceUnavailable,
			code:   "ZKT-030002",
		},
		{
			name:   "unsupported currency",
			err:    domainerror.NewCurrencyError(domainerror.ErrCodeUnsupportedCurrency, "unsupported", "XYZ", nil),
			status: http.StatusUnprocessableEntity,
			code:   "CUR-020001",
		},
		{
			name:   "invalid amount",
			err:    domainerror.NewCurrencyError(domainerror.ErrCodeInvalidAmount, "bad amount", "", nil),
			status: http.StatusBadRequest,
			code:   "CUR-010001",
		},
		{
			name:   "price provider down",
			err:    domainerror.NewMetalPriceError(domainerror.ErrCodeProviderUnavailable, "down", domainerror.ErrPriceProviderUnavailable),
			status: http.StatusServiceUnavailable,
			code:   "MTL-030001",
		},
		{
			name:   "payment not found",
			err:    domainerror.NewPaymentError(domainerror.ErrCodePaymentNotFound, "payment not found", nil),
			status: http.StatusNotFound,
			code:   "PAY-020001",
		},
		{
			name:   "dashboard date range",
			err:    domainerror.NewDashboardError(domainerror.ErrCodeInvalidDateRange, "bad range", domainerror.ErrInvalidDateRange),
			status: http.StatusBadRequest,
			code:   "DSH-010003",
		},
		{
			name:   "wrapped typed error",
			err:    fmt.Errorf("create: %w", domainerror.NewPaymentError(domainerror.ErrCodeInvalidPaymentAmount, "bad", nil)),
			status: http.StatusBadRequest,
			code:   "PAY-010001",
		},
		{
			name:   "untyped error",
			err:    errors.New("connection reset"),
			status: http.StatusInternalServerError,
			code:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := mapDomainError(tt.err)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestHandleDomainError_HidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)

	handleDomainError(ctx, errors.New("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "An internal error occurred", body.Error)
	assert.NotContains(t, recorder.Body.String(), "password")
}
