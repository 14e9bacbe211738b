package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/usecase/calculation"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/dto"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/middleware"
)

// ZakatController handles Zakat calculation endpoints.
type ZakatController struct {
	calculateUseCase *calculation.CalculateZakatUseCase
	previewUseCase   *calculation.PreviewCalculationUseCase
	nisabUseCase     *calculation.GetNisabUseCase
	listUseCase      *calculation.ListCalculationsUseCase
	getUseCase       *calculation.GetCalculationUseCase
	deleteUseCase    *calculation.DeleteCalculationUseCase
}

// NewZakatController creates a new Zakat controller instance.
func NewZakatController(
	calculateUseCase *calculation.CalculateZakatUseCase,
	previewUseCase *calculation.PreviewCalculationUseCase,
	nisabUseCase *calculation.GetNisabUseCase,
	listUseCase *calculation.ListCalculationsUseCase,
	getUseCase *calculation.GetCalculationUseCase,
	deleteUseCase *calculation.DeleteCalculationUseCase,
) *ZakatController {
	return &ZakatController{
		calculateUseCase: calculateUseCase,
		previewUseCase:   previewUseCase,
		nisabUseCase:     nisabUseCase,
		listUseCase:      listUseCase,
		getUseCase:       getUseCase,
		deleteUseCase:    deleteUseCase,
	}
}

// Calculate handles POST /zakat/calculate requests.
func (c *ZakatController) Calculate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CalculateZakatRequest
	// An empty body calculates over every stored asset.
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			respondBadRequest(ctx, "Invalid request body: "+err.Error())
			return
		}
	}

	assetIDs := make([]uuid.UUID, 0, len(req.AssetIDs))
	for _, raw := range req.AssetIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(ctx, "Invalid asset ID format")
			return
		}
		assetIDs = append(assetIDs, id)
	}

	output, err := c.calculateUseCase.Execute(ctx.Request.Context(), calculation.CalculateZakatInput{
		UserID:      userID,
		Currency:    req.Currency,
		Standard:    entity.NisabStandard(req.Standard),
		AssetIDs:    assetIDs,
		Liabilities: dto.ToLiabilities(req.Liabilities),
		Notes:       req.Notes,
		Save:        req.Save,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Saved {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToCalculateZakatResponse(output))
}

// Preview handles POST /zakat/preview requests.
func (c *ZakatController) Preview(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.PreviewZakatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	assets := make([]calculation.PreviewAssetInput, len(req.Assets))
	for i, a := range req.Assets {
		acquisitionDate, err := dto.ParseDate(a.AcquisitionDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: err.Error(),
				Code:  string(domainerror.ErrCodeInvalidAcquisitionDate),
			})
			return
		}
		assets[i] = calculation.PreviewAssetInput{
			Name:            a.Name,
			Category:        entity.AssetCategory(a.Category),
			Usage:           entity.AssetUsage(a.Usage),
			Holding:         a.ToHoldingFields(),
			AcquisitionDate: acquisitionDate,
		}
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), calculation.PreviewCalculationInput{
		UserID:        userID,
		Assets:        assets,
		Currency:      req.Currency,
		Standard:      entity.NisabStandard(req.Standard),
		Liabilities:   dto.ToLiabilities(req.Liabilities),
		GoldPrice:     req.GoldPrice,
		SilverPrice:   req.SilverPrice,
		PriceCurrency: req.PriceCurrency,
		Rates:         req.Rates,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreviewResponse(output))
}

// Nisab handles GET /zakat/nisab requests.
func (c *ZakatController) Nisab(ctx *gin.Context) {
	output, err := c.nisabUseCase.Execute(ctx.Request.Context(), calculation.GetNisabInput{
		Currency: ctx.Query("currency"),
		Standard: entity.NisabStandard(ctx.Query("standard")),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNisabResponse(output))
}

// List handles GET /zakat/calculations requests.
func (c *ZakatController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	limit, err := queryInt(ctx, "limit")
	if err != nil {
		respondBadRequest(ctx, "Invalid limit")
		return
	}
	offset, err := queryInt(ctx, "offset")
	if err != nil {
		respondBadRequest(ctx, "Invalid offset")
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), calculation.ListCalculationsInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCalculationListResponse(output))
}

// Get handles GET /zakat/calculations/:id requests.
func (c *ZakatController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	calculationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid calculation ID format")
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), calculation.GetCalculationInput{
		CalculationID: calculationID,
		UserID:        userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCalculationResponse(output.Calculation))
}

// Delete handles DELETE /zakat/calculations/:id requests.
func (c *ZakatController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	calculationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid calculation ID format")
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), calculation.DeleteCalculationInput{
		CalculationID: calculationID,
		UserID:        userID,
	}); err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// queryInt parses an optional integer query parameter. Absent yields zero.
func queryInt(ctx *gin.Context, key string) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
