package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/usecase/payment"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/dto"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/middleware"
)

// PaymentController handles Zakat payment endpoints.
type PaymentController struct {
	listUseCase   *payment.ListPaymentsUseCase
	createUseCase *payment.CreatePaymentUseCase
	updateUseCase *payment.UpdatePaymentUseCase
	deleteUseCase *payment.DeletePaymentUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	listUseCase *payment.ListPaymentsUseCase,
	createUseCase *payment.CreatePaymentUseCase,
	updateUseCase *payment.UpdatePaymentUseCase,
	deleteUseCase *payment.DeletePaymentUseCase,
) *PaymentController {
	return &PaymentController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /payments requests.
func (c *PaymentController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := payment.ListPaymentsInput{
		UserID: userID,
	}

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.PaymentStatus(statusStr)
		if !status.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid status filter",
				Code:  string(domainerror.ErrCodeInvalidPaymentStatus),
			})
			return
		}
		input.Status = &status
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(output))
}

// Create handles POST /payments requests.
func (c *PaymentController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	paidOn, err := dto.ParseDate(req.PaidOn)
	if err != nil {
		respondInvalidPaymentDate(ctx, err)
		return
	}

	input := payment.CreatePaymentInput{
		UserID:   userID,
		Amount:   req.Amount,
		Currency: req.Currency,
		PaidOn:   paidOn,
		Status:   entity.PaymentStatus(req.Status),
		Method:   req.Method,
		Notes:    req.Notes,
	}

	if req.CalculationID != nil {
		calculationID, err := uuid.Parse(*req.CalculationID)
		if err != nil {
			respondBadRequest(ctx, "Invalid calculation ID format")
			return
		}
		input.CalculationID = &calculationID
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPaymentResponse(output.Payment))
}

// Update handles PATCH /payments/:id requests.
func (c *PaymentController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	paymentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid payment ID format")
		return
	}

	var req dto.UpdatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	paidOn, err := dto.ParseDate(req.PaidOn)
	if err != nil {
		respondInvalidPaymentDate(ctx, err)
		return
	}

	input := payment.UpdatePaymentInput{
		PaymentID: paymentID,
		UserID:    userID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		PaidOn:    paidOn,
		Method:    req.Method,
		Notes:     req.Notes,
	}
	if req.Status != nil {
		status := entity.PaymentStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentResponse(output.Payment))
}

// Delete handles DELETE /payments/:id requests.
func (c *PaymentController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	paymentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid payment ID format")
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), payment.DeletePaymentInput{
		PaymentID: paymentID,
		UserID:    userID,
	}); err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func respondInvalidPaymentDate(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: err.Error(),
		Code:  string(domainerror.ErrCodeInvalidPaymentDate),
	})
}
