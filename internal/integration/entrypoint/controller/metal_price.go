package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	metalprice "github.com/zakat-manager/backend/internal/application/usecase/metal_price"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/dto"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/middleware"
)

// MetalPriceController handles metal price endpoints.
type MetalPriceController struct {
	listUseCase     *metalprice.ListPricesUseCase
	setUseCase      *metalprice.SetPriceUseCase
	refreshUseCase  *metalprice.RefreshPricesUseCase
	historyUseCase  *metalprice.PriceHistoryUseCase
	puritiesUseCase *metalprice.ListPuritiesUseCase
}

// NewMetalPriceController creates a new metal price controller instance.
func NewMetalPriceController(
	listUseCase *metalprice.ListPricesUseCase,
	setUseCase *metalprice.SetPriceUseCase,
	refreshUseCase *metalprice.RefreshPricesUseCase,
	historyUseCase *metalprice.PriceHistoryUseCase,
	puritiesUseCase *metalprice.ListPuritiesUseCase,
) *MetalPriceController {
	return &MetalPriceController{
		listUseCase:     listUseCase,
		setUseCase:      setUseCase,
		refreshUseCase:  refreshUseCase,
		historyUseCase:  historyUseCase,
		puritiesUseCase: puritiesUseCase,
	}
}

// List handles GET /metal-prices requests.
func (c *MetalPriceController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMetalPriceListResponse(output))
}

// Set handles POST /metal-prices requests.
func (c *MetalPriceController) Set(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.SetMetalPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidMetal),
		})
		return
	}

	deriveStandards := true
	if req.DeriveStandards != nil {
		deriveStandards = *req.DeriveStandards
	}

	output, err := c.setUseCase.Execute(ctx.Request.Context(), metalprice.SetPriceInput{
		UserID:          userID,
		Metal:           entity.Metal(req.Metal),
		Karat:           req.Karat,
		Purity:          req.Purity,
		PricePerGram:    req.PricePerGram,
		Currency:        req.Currency,
		DeriveStandards: deriveStandards,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSetMetalPriceResponse(output))
}

// Refresh handles POST /metal-prices/refresh requests.
func (c *MetalPriceController) Refresh(ctx *gin.Context) {
	output, err := c.refreshUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRefreshPricesResponse(output))
}

// History handles GET /metal-prices/history requests.
func (c *MetalPriceController) History(ctx *gin.Context) {
	metal := entity.Metal(ctx.Query("metal"))
	if !metal.IsValid() {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "metal must be gold or silver",
			Code:  string(domainerror.ErrCodeInvalidMetal),
		})
		return
	}

	limit, err := queryInt(ctx, "limit")
	if err != nil {
		respondBadRequest(ctx, "Invalid limit")
		return
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), metalprice.PriceHistoryInput{
		Metal: metal,
		Limit: limit,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PriceHistoryResponse{
		Metal:  string(metal),
		Quotes: dto.ToMetalPriceResponses(output.Quotes),
	})
}

// Purities handles GET /currency/purities requests.
func (c *MetalPriceController) Purities(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToPurityListResponse(c.puritiesUseCase.Execute()))
}
