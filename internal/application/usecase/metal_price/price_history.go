// Package metalprice contains metal price use cases.
package metalprice

import (
	"context"
	"fmt"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 200
)

// PriceHistoryInput represents the input for listing past quotes.
type PriceHistoryInput struct {
	Metal entity.Metal
	Limit int
}

// PriceHistoryOutput represents past quotes, newest first.
type PriceHistoryOutput struct {
	Quotes []*entity.MetalPriceQuote
}

// PriceHistoryUseCase lists superseded and current quotes of a metal.
type PriceHistoryUseCase struct {
	priceRepo adapter.MetalPriceRepository
}

// NewPriceHistoryUseCase creates a new PriceHistoryUseCase instance.
func NewPriceHistoryUseCase(priceRepo adapter.MetalPriceRepository) *PriceHistoryUseCase {
	return &PriceHistoryUseCase{
		priceRepo: priceRepo,
	}
}

// Execute lists the history.
func (uc *PriceHistoryUseCase) Execute(ctx context.Context, input PriceHistoryInput) (*PriceHistoryOutput, error) {
	if !input.Metal.IsValid() {
		return nil, domainerror.NewMetalPriceError(
			domainerror.ErrCodeInvalidMetal,
			"metal must be 'gold' or 'silver'",
			domainerror.ErrInvalidMetal,
		)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	quotes, err := uc.priceRepo.ListHistory(ctx, input.Metal, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list price history: %w", err)
	}

	return &PriceHistoryOutput{
		Quotes: quotes,
	}, nil
}
