// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// PaymentRepository defines the interface for Zakat payment persistence operations.
type PaymentRepository interface {
	// Create creates a new payment.
	Create(ctx context.Context, payment *entity.ZakatPayment) error

	// FindByID retrieves a payment by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ZakatPayment, error)

	// FindByUserID retrieves a user's payments, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.ZakatPayment, error)

	// Update updates an existing payment.
	Update(ctx context.Context, payment *entity.ZakatPayment) error

	// Delete removes a payment.
	Delete(ctx context.Context, id uuid.UUID) error
}
