// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// CalculationRepository stores immutable Zakat calculation snapshots.
type CalculationRepository interface {
	// Create saves a calculation.
	Create(ctx context.Context, calc *entity.ZakatCalculation) error

	// FindByID retrieves a calculation by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ZakatCalculation, error)

	// FindByUserID retrieves a user's calculation history, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ZakatCalculation, int64, error)

	// FindByUserIDBetween retrieves a user's calculations dated within [start, end], oldest first.
	FindByUserIDBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.ZakatCalculation, error)

		// Delete removes a calculation.
	Delete(ctx context.Context, id uuid.UUID) error
}
