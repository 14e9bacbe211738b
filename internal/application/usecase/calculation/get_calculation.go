// Package calculation contains Zakat calculation use cases.
package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
)

// GetCalculationInput represents the input for retrieving a saved calculation.
type GetCalculationInput struct {
	CalculationID uuid.UUID
	UserID        uuid.UUID
}

// GetCalculationOutput represents the output of retrieving a calculation.
type GetCalculationOutput struct {
	Calculation *entity.ZakatCalculation
}

// GetCalculationUseCase handles retrieving a single calculation.
type GetCalculationUseCase struct {
	calcRepo adapter.CalculationRepository
}

// NewGetCalculationUseCase creates a new GetCalculationUseCase instance.
func NewGetCalculationUseCase(calcRepo adapter.CalculationRepository) *GetCalculationUseCase {
	return &GetCalculationUseCase{
		calcRepo: calcRepo,
	}
}

// Execute retrieves the calculation.
func (uc *GetCalculationUseCase) Execute(ctx context.Context, input GetCalculationInput) (*GetCalculationOutput, error) {
	calc, err := FindOwnedCalculation(ctx, uc.calcRepo, input.CalculationID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetCalculationOutput{
		Calculation: calc,
	}, nil
}

// FindOwnedCalculation loads a calculation and checks that it belongs to the user.
func FindOwnedCalculation(ctx context.Context, repo adapter.CalculationRepository, calculationID, userID uuid.UUID) (*entity.ZakatCalculation, error) {
	calc, err := repo.FindByID(ctx, calculationID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCalculationNotFound) {
			return nil, domainerror.NewCalculationError(
				domainerror.ErrCodeCalculationNotFound,
				"calculation not found",
				domainerror.ErrCalculationNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find calculation: %w", err)
	}

	if calc.UserID != userID {
		return nil, domainerror.NewCalculationError(
			domainerror.ErrCodeUnauthorizedCalculation,
			"not authorized to access this calculation",
			domainerror.ErrUnauthorizedCalculationAccess,
		)
	}

	return calc, nil
}
