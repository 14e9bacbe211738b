// Package calculation contains Zakat calculation use cases.
package calculation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/adapter"
)

// DeleteCalculationInput represents the input for deleting a saved calculation.
type DeleteCalculationInput struct {
	CalculationID uuid.UUID
	UserID        uuid.UUID
}

// DeleteCalculationUseCase handles calculation deletion.
type DeleteCalculationUseCase struct {
	calcRepo adapter.CalculationRepository
}

// NewDeleteCalculationUseCase creates a new DeleteCalculationUseCase instance.
func NewDeleteCalculationUseCase(calcRepo adapter.CalculationRepository) *DeleteCalculationUseCase {
	return &DeleteCalculationUseCase{
		calcRepo: calcRepo,
	}
}

// Execute deletes the calculation.
func (uc *DeleteCalculationUseCase) Execute(ctx context.Context, input DeleteCalculationInput) error {
	if _, err := FindOwnedCalculation(ctx, uc.calcRepo, input.CalculationID, input.UserID); err != nil {
		return err
	}

	if err := uc.calcRepo.Delete(ctx, input.CalculationID); err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}

	return nil
}
