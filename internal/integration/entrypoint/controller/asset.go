package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/usecase/asset"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/dto"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/middleware"
)

// AssetController handles asset endpoints.
type AssetController struct {
	listUseCase   *asset.ListAssetsUseCase
	createUseCase *asset.CreateAssetUseCase
	getUseCase    *asset.GetAssetUseCase
	updateUseCase *asset.UpdateAssetUseCase
	deleteUseCase *asset.DeleteAssetUseCase
}

// NewAssetController creates a new asset controller instance.
func NewAssetController(
	listUseCase *asset.ListAssetsUseCase,
	createUseCase *asset.CreateAssetUseCase,
	getUseCase *asset.GetAssetUseCase,
	updateUseCase *asset.UpdateAssetUseCase,
	deleteUseCase *asset.DeleteAssetUseCase,
) *AssetController {
	return &AssetController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /assets requests.
func (c *AssetController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := asset.ListAssetsInput{
		UserID: userID,
	}

	// Optional category filter
	if categoryStr := ctx.Query("category"); categoryStr != "" {
		category := entity.AssetCategory(categoryStr)
		if !category.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category filter",
				Code:  string(domainerror.ErrCodeInvalidAssetCategory),
			})
			return
		}
		input.Category = &category
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetListResponse(output))
}

// Create handles POST /assets requests.
func (c *AssetController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateAssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingAssetFields),
		})
		return
	}

	acquisitionDate, err := dto.ParseDate(req.AcquisitionDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeInvalidAcquisitionDate),
		})
		return
	}

	input := asset.CreateAssetInput{
		UserID:          userID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        entity.AssetCategory(req.Category),
		Subcategory:     req.Subcategory,
		Usage:           entity.AssetUsage(req.Usage),
		Holding:         req.ToHoldingFields(),
		AcquisitionDate: acquisitionDate,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAssetResponse(output.Asset))
}

// Get handles GET /assets/:id requests.
func (c *AssetController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	assetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid asset ID format")
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), asset.GetAssetInput{
		AssetID: assetID,
		UserID:  userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetResponse(output.Asset))
}

// Update handles PATCH /assets/:id requests.
func (c *AssetController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	assetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid asset ID format")
		return
	}

	var req dto.UpdateAssetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	acquisitionDate, err := dto.ParseDate(req.AcquisitionDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  string(domainerror.ErrCodeInvalidAcquisitionDate),
		})
		return
	}

	input := asset.UpdateAssetInput{
		AssetID:              assetID,
		UserID:               userID,
		Name:                 req.Name,
		Description:          req.Description,
		Subcategory:          req.Subcategory,
		Holding:              req.ToHoldingFields(),
		AcquisitionDate:      acquisitionDate,
		ClearAcquisitionDate: req.ClearAcquisitionDate,
	}
	if req.Category != nil {
		category := entity.AssetCategory(*req.Category)
		input.Category = &category
	}
	if req.Usage != nil {
		usage := entity.AssetUsage(*req.Usage)
		input.Usage = &usage
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetResponse(output.Asset))
}

// Delete handles DELETE /assets/:id requests.
func (c *AssetController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	assetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid asset ID format")
		return
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), asset.DeleteAssetInput{
		AssetID: assetID,
		UserID:  userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
