// Package payment contains Zakat payment use cases.
package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// ListPaymentsInput represents the input for listing payments.
type ListPaymentsInput struct {
	UserID uuid.UUID
	Status *entity.PaymentStatus // Optional filter
}

// ListPaymentsOutput represents a user's payments and the paid totals per currency.
type ListPaymentsOutput struct {
	Payments  []*entity.ZakatPayment
	TotalPaid map[string]decimal.Decimal
}

// ListPaymentsUseCase lists a user's payments, newest first.
type ListPaymentsUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(paymentRepo adapter.PaymentRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute lists the payments.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	payments, err := uc.paymentRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, wrapRepoError("list", err)
	}

	out := &ListPaymentsOutput{
		Payments:  make([]*entity.ZakatPayment, 0, len(payments)),
		TotalPaid: make(map[string]decimal.Decimal),
	}
	for _, p := range payments {
		if input.Status != nil && p.Status != *input.Status {
			continue
		}
		out.Payments = append(out.Payments, p)
		if p.Status == entity.PaymentStatusPaid {
			out.TotalPaid[p.Currency] = out.TotalPaid[p.Currency].Add(p.Amount)
		}
	}

	return out, nil
}
