// Package calculation contains Zakat calculation use cases.
package calculation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/zakat"
)

// CalculateZakatInput represents the input for calculating a user's Zakat.
type CalculateZakatInput struct {
	UserID      uuid.UUID
	Currency    string               // Optional, defaults to the configured currency
	Standard    entity.NisabStandard // Optional, defaults to the configured standard
	AssetIDs    []uuid.UUID          // Optional subset of the user's assets
	Liabilities []entity.Liability
	Notes       string
	Save        bool
}

// CalculateZakatOutput represents the output of a calculation.
type CalculateZakatOutput struct {
	Calculation *entity.ZakatCalculation
	Saved       bool
	Prices      entity.PriceSnapshot
	RateSource  entity.RateSource
	RatesAsOf   time.Time
}

// CalculateZakatUseCase runs the engine over the stored assets of a user.
type CalculateZakatUseCase struct {
	assetRepo       adapter.AssetRepository
	calcRepo        adapter.CalculationRepository
	prices          adapter.PriceReader
	rates           adapter.RateReader
	engine          *zakat.Engine
	defaultCurrency string
}

// NewCalculateZakatUseCase creates a new CalculateZakatUseCase instance.
func NewCalculateZakatUseCase(
	assetRepo adapter.AssetRepository,
	calcRepo adapter.CalculationRepository,
	prices adapter.PriceReader,
	rates adapter.RateReader,
	engine *zakat.Engine,
	defaultCurrency string,
) *CalculateZakatUseCase {
	return &CalculateZakatUseCase{
		assetRepo:       assetRepo,
		calcRepo:        calcRepo,
		prices:          prices,
		rates:           rates,
		engine:          engine,
		defaultCurrency: defaultCurrency,
	}
}

// Execute performs the calculation and optionally stores the result.
func (uc *CalculateZakatUseCase) Execute(ctx context.Context, input CalculateZakatInput) (*CalculateZakatOutput, error) {
	assets, err := uc.assetRepo.FindByUserID(ctx, input.UserID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	if len(input.AssetIDs) > 0 {
		assets, err = selectAssets(assets, input.AssetIDs)
		if err != nil {
			return nil, err
		}
	}

	prices, err := uc.prices.CurrentPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load metal prices: %w", err)
	}
	rates := uc.rates.GetRates(ctx)

	currency := input.Currency
	if currency == "" {
		currency = uc.defaultCurrency
	}

	now := time.Now().UTC()
	calc, err := uc.engine.Calculate(zakat.CalculationInput{
		UserID:      input.UserID,
		Assets:      assets,
		Prices:      prices,
		Rates:       rates,
		Currency:    currency,
		Standard:    input.Standard,
		Liabilities: input.Liabilities,
		AsOf:        now,
		Notes:       input.Notes,
	})
	if err != nil {
		return nil, err
	}

	calc.ID = uuid.New()
	calc.CreatedAt = now
	logWarnings(calc)

	if input.Save {
		if err := uc.calcRepo.Create(ctx, calc); err != nil {
			return nil, fmt.Errorf("failed to save calculation: %w", err)
		}
		slog.Info("Zakat calculation saved",
			"calculation_id", calc.ID,
			"user_id", calc.UserID,
			"meets_nisab", calc.MeetsNisab,
		)
	}

	return &CalculateZakatOutput{
		Calculation: calc,
		Saved:       input.Save,
		Prices:      prices,
		RateSource:  rates.Source,
		RatesAsOf:   rates.FetchedAt,
	}, nil
}

// selectAssets keeps the requested assets, in request order.
func selectAssets(assets []*entity.Asset, ids []uuid.UUID) ([]*entity.Asset, error) {
	byID := make(map[uuid.UUID]*entity.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}

	selected := make([]*entity.Asset, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		a, ok := byID[id]
		if !ok {
			return nil, domainerror.NewAssetError(
				domainerror.ErrCodeAssetNotFound,
				"asset "+id.String()+" not found",
				domainerror.ErrAssetNotFound,
			)
		}
		selected = append(selected, a)
	}
	return selected, nil
}

func logWarnings(calc *entity.ZakatCalculation) {
	for _, w := range calc.Warnings {
		slog.Warn("Asset valuation degraded",
			"user_id", calc.UserID,
			"asset_id", w.AssetID,
			"code", w.Code,
			"message", w.Message,
		)
	}
}
