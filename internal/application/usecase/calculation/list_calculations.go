// Package calculation contains Zakat calculation use cases.
package calculation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListCalculationsInput represents the input for listing saved calculations.
type ListCalculationsInput struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// ListCalculationsOutput represents one page of a user's calculation history.
type ListCalculationsOutput struct {
	Calculations []*entity.ZakatCalculation
	Total        int64
	Limit        int
	Offset       int
}

// ListCalculationsUseCase lists a user's saved calculations, newest first.
type ListCalculationsUseCase struct {
	calcRepo adapter.CalculationRepository
}

// NewListCalculationsUseCase creates a new ListCalculationsUseCase instance.
func NewListCalculationsUseCase(calcRepo adapter.CalculationRepository) *ListCalculationsUseCase {
	return &ListCalculationsUseCase{
		calcRepo: calcRepo,
	}
}

// Execute lists the calculations.
func (uc *ListCalculationsUseCase) Execute(ctx context.Context, input ListCalculationsInput) (*ListCalculationsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	calcs, total, err := uc.calcRepo.FindByUserID(ctx, input.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}

	return &ListCalculationsOutput{
		Calculations: calcs,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}
