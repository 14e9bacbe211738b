// Package payment contains Zakat payment use cases.
package payment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// UpdatePaymentInput represents the input for updating a payment.
// Nil fields are left unchanged.
type UpdatePaymentInput struct {
	PaymentID uuid.UUID
	UserID    uuid.UUID
	Amount    *decimal.Decimal
	Currency  *string
	PaidOn    *time.Time
	Status    *entity.PaymentStatus
	Method    *string
	Notes     *string
}

// UpdatePaymentOutput represents the output of updating a payment.
type UpdatePaymentOutput struct {
	Payment *entity.ZakatPayment
}

// UpdatePaymentUseCase handles payment updates.
type UpdatePaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewUpdatePaymentUseCase creates a new UpdatePaymentUseCase instance.
func NewUpdatePaymentUseCase(paymentRepo adapter.PaymentRepository) *UpdatePaymentUseCase {
	return &UpdatePaymentUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute performs the update.
func (uc *UpdatePaymentUseCase) Execute(ctx context.Context, input UpdatePaymentInput) (*UpdatePaymentOutput, error) {
	payment, err := findOwnedPayment(ctx, uc.paymentRepo, input.PaymentID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		payment.Amount = input.Amount.Round(2)
	}

	if input.Currency != nil {
		currency, err := validateCurrency(*input.Currency)
		if err != nil {
			return nil, err
		}
		payment.Currency = currency
	}

	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
		payment.Status = *input.Status
	}

	if input.PaidOn != nil {
		payment.PaidOn = input.PaidOn.UTC()
	}

	now := time.Now().UTC()
	if err := validatePaidOn(payment.Status, payment.PaidOn, now); err != nil {
		return nil, err
	}

	if input.Method != nil {
		payment.Method = strings.TrimSpace(*input.Method)
	}
	if input.Notes != nil {
		payment.Notes = strings.TrimSpace(*input.Notes)
	}

	payment.UpdatedAt = now

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, wrapRepoError("update", err)
	}

	return &UpdatePaymentOutput{
		Payment: payment,
	}, nil
}
