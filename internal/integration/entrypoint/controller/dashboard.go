package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zakat-manager/backend/internal/application/usecase/dashboard"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/dto"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	summaryUseCase *dashboard.GetAssetSummaryUseCase
	trendsUseCase  *dashboard.GetTrendsUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	summaryUseCase *dashboard.GetAssetSummaryUseCase,
	trendsUseCase *dashboard.GetTrendsUseCase,
) *DashboardController {
	return &DashboardController{
		summaryUseCase: summaryUseCase,
		trendsUseCase:  trendsUseCase,
	}
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), dashboard.GetAssetSummaryInput{
		UserID:   userID,
		Currency: ctx.Query("currency"),
		Standard: entity.NisabStandard(ctx.Query("standard")),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssetSummaryResponse(output))
}

// Trends handles GET /dashboard/trends requests.
func (c *DashboardController) Trends(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	startDate, err := queryDate(ctx, "start_date")
	if err != nil {
		handleDomainError(ctx, err)
		return
	}
	endDate, err := queryDate(ctx, "end_date")
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	output, err := c.trendsUseCase.Execute(ctx.Request.Context(), dashboard.GetTrendsInput{
		UserID:      userID,
		StartDate:   startDate,
		EndDate:     endDate,
		Granularity: dashboard.Granularity(ctx.Query("granularity")),
		Currency:    ctx.Query("currency"),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendsResponse(output))
}

// queryDate parses an optional date query parameter. Absent yields the zero time.
func queryDate(ctx *gin.Context, key string) (time.Time, error) {
	raw := ctx.Query(key)
	date, err := dto.ParseDate(&raw)
	if err != nil {
		return time.Time{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateFormat,
			key+" must be in YYYY-MM-DD format",
			domainerror.ErrInvalidDateFormat,
		)
	}
	if date == nil {
		return time.Time{}, nil
	}
	return *date, nil
}
