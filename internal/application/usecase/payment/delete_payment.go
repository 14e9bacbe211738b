// Package payment contains Zakat payment use cases.
package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/adapter"
)

// DeletePaymentInput represents the input for deleting a payment.
type DeletePaymentInput struct {
	PaymentID uuid.UUID
	UserID    uuid.UUID
}

// DeletePaymentUseCase handles payment deletion.
type DeletePaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewDeletePaymentUseCase creates a new DeletePaymentUseCase instance.
func NewDeletePaymentUseCase(paymentRepo adapter.PaymentRepository) *DeletePaymentUseCase {
	return &DeletePaymentUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute deletes the payment.
func (uc *DeletePaymentUseCase) Execute(ctx context.Context, input DeletePaymentInput) error {
	if _, err := findOwnedPayment(ctx, uc.paymentRepo, input.PaymentID, input.UserID); err != nil {
		return err
	}

	if err := uc.paymentRepo.Delete(ctx, input.PaymentID); err != nil {
		return wrapRepoError("delete", err)
	}

	return nil
}
