// Package calculation contains Zakat calculation use cases.
package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/zakat"
)

// GetNisabInput represents the input for resolving the Nisab thresholds.
type GetNisabInput struct {
	Currency string
	Standard entity.NisabStandard // Optional, selects Threshold
}

// GetNisabOutput holds both thresholds and the one selected by the standard.
type GetNisabOutput struct {
	Currency   string
	Gold       zakat.NisabThreshold
	Silver     zakat.NisabThreshold
	Threshold  zakat.NisabThreshold
	Prices     entity.PriceSnapshot
	RateSource entity.RateSource
	ResolvedAt time.Time
}

// GetNisabUseCase resolves the Nisab thresholds from the prices in effect.
type GetNisabUseCase struct {
	prices          adapter.PriceReader
	rates           adapter.RateReader
	engine          *zakat.Engine
	defaultCurrency string
}

// NewGetNisabUseCase creates a new GetNisabUseCase instance.
func NewGetNisabUseCase(prices adapter.PriceReader, rates adapter.RateReader, engine *zakat.Engine, defaultCurrency string) *GetNisabUseCase {
	return &GetNisabUseCase{
		prices:          prices,
		rates:           rates,
		engine:          engine,
		defaultCurrency: defaultCurrency,
	}
}

// Execute resolves the thresholds.
func (uc *GetNisabUseCase) Execute(ctx context.Context, input GetNisabInput) (*GetNisabOutput, error) {
	standard := input.Standard
	if standard == "" {
		standard = uc.engine.Policy().NisabStandard
	}
	if !standard.IsValid() {
		return nil, domainerror.NewCalculationError(
			domainerror.ErrCodeInvalidNisabStandard,
			"nisab standard must be gold or silver",
			domainerror.ErrInvalidNisabStandard,
		)
	}

	currency := zakat.NormalizeCurrency(input.Currency)
	if currency == "" {
		currency = uc.defaultCurrency
	}

	prices, err := uc.prices.CurrentPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load metal prices: %w", err)
	}
	rates := uc.rates.GetRates(ctx)
	conv := zakat.NewConverter(rates)

	if !conv.Supports(currency) {
		return nil, domainerror.NewCalculationError(
			domainerror.ErrCodeResultCurrencyUnsupported,
			"result currency "+currency+" is not supported",
			domainerror.ErrResultCurrencyUnsupported,
		)
	}

	out := &GetNisabOutput{
		Currency:   currency,
		Prices:     prices,
		RateSource: rates.Source,
		ResolvedAt: time.Now().UTC(),
	}

	for _, s := range []entity.NisabStandard{entity.NisabStandardGold, entity.NisabStandardSilver} {
		quote, ok := prices.Quote(s.Metal())
		if !ok {
			return nil, domainerror.NewCalculationError(
				domainerror.ErrCodeNisabPriceMissing,
				"no "+string(s.Metal())+" price available for nisab",
				domainerror.ErrNisabPriceMissing,
			)
		}
		threshold, err := conv.NisabValue(s, quote, currency)
		if err != nil {
			return nil, err
		}
		if s == entity.NisabStandardGold {
			out.Gold = threshold
		} else {
			out.Silver = threshold
		}
		if s == standard {
			out.Threshold = threshold
		}
	}

	return out, nil
}
