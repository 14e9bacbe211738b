package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/usecase/payment"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// CreatePaymentRequest represents the request body for recording a payment.
type CreatePaymentRequest struct {
	CalculationID *string         `json:"calculation_id,omitempty" binding:"omitempty,uuid"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty"`
	PaidOn        *string         `json:"paid_on,omitempty"`
	Status        string          `json:"status,omitempty" binding:"omitempty,oneof=paid pending planned"`
	Method        string          `json:"method,omitempty" binding:"max=50"`
	Notes         string          `json:"notes,omitempty" binding:"max=1000"`
}

// UpdatePaymentRequest represents the request body for updating a payment.
type UpdatePaymentRequest struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Currency *string          `json:"currency,omitempty"`
	PaidOn   *string          `json:"paid_on,omitempty"`
	Status   *string          `json:"status,omitempty" binding:"omitempty,oneof=paid pending planned"`
	Method   *string          `json:"method,omitempty" binding:"omitempty,max=50"`
	Notes    *string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID            string    `json:"id"`
	CalculationID *string   `json:"calculation_id,omitempty"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	PaidOn        string    `json:"paid_on"`
	Status        string    `json:"status"`
	Method        string    `json:"method,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PaymentListResponse represents the response for listing payments.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	// TotalPaid sums paid payments per currency.
	TotalPaid map[string]string `json:"total_paid"`
}

// ToPaymentResponse converts a domain ZakatPayment to a PaymentResponse DTO.
func ToPaymentResponse(p *entity.ZakatPayment) PaymentResponse {
	response := PaymentResponse{
		ID:        p.ID.String(),
		Amount:    Money(p.Amount),
		Currency:  p.Currency,
		PaidOn:    p.PaidOn.Format(DateLayout),
		Status:    string(p.Status),
		Method:    p.Method,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.CalculationID != nil {
		id := p.CalculationID.String()
		response.CalculationID = &id
	}
	return response
}

// ToPaymentListResponse converts a ListPaymentsOutput.
func ToPaymentListResponse(output *payment.ListPaymentsOutput) PaymentListResponse {
	payments := make([]PaymentResponse, len(output.Payments))
	for i, p := range output.Payments {
		payments[i] = ToPaymentResponse(p)
	}
	totals := make(map[string]string, len(output.TotalPaid))
	for code, total := range output.TotalPaid {
		totals[code] = Money(total)
	}
	return PaymentListResponse{
		Payments:  payments,
		TotalPaid: totals,
	}
}
