package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/usecase/currency"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/dto"
)

// CurrencyController handles exchange-rate endpoints.
type CurrencyController struct {
	ratesUseCase   *currency.ListRatesUseCase
	convertUseCase *currency.ConvertCurrencyUseCase
}

// NewCurrencyController creates a new currency controller instance.
func NewCurrencyController(
	ratesUseCase *currency.ListRatesUseCase,
	convertUseCase *currency.ConvertCurrencyUseCase,
) *CurrencyController {
	return &CurrencyController{
		ratesUseCase:   ratesUseCase,
		convertUseCase: convertUseCase,
	}
}

// Rates handles GET /currency/rates requests.
func (c *CurrencyController) Rates(ctx *gin.Context) {
	output, err := c.ratesUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRatesResponse(output))
}

// Convert handles GET /currency/convert requests.
func (c *CurrencyController) Convert(ctx *gin.Context) {
	var req dto.ConvertCurrencyRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "amount, from and to are required",
			Code:  string(domainerror.ErrCodeMissingCurrency),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "amount must be a decimal number",
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	output, err := c.convertUseCase.Execute(ctx.Request.Context(), currency.ConvertCurrencyInput{
		Amount: amount,
		From:   req.From,
		To:     req.To,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToConvertCurrencyResponse(output))
}
