// Package currency contains exchange-rate and conversion use cases.
package currency

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// ListRatesOutput represents the exchange-rate table in effect.
type ListRatesOutput struct {
	Base      string
	Rates     map[string]decimal.Decimal
	Codes     []string
	Source    entity.RateSource
	FetchedAt time.Time
}

// ListRatesUseCase returns the exchange-rate table in effect.
type ListRatesUseCase struct {
	rates adapter.RateReader
}

// NewListRatesUseCase creates a new ListRatesUseCase instance.
func NewListRatesUseCase(rates adapter.RateReader) *ListRatesUseCase {
	return &ListRatesUseCase{
		rates: rates,
	}
}

// Execute returns the rates.
func (uc *ListRatesUseCase) Execute(ctx context.Context) (*ListRatesOutput, error) {
	table := uc.rates.GetRates(ctx)

	return &ListRatesOutput{
		Base:      table.Base,
		Rates:     table.Rates,
		Codes:     table.Codes(),
		Source:    table.Source,
		FetchedAt: table.FetchedAt,
	}, nil
}
