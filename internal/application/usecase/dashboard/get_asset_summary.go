// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	"github.com/zakat-manager/backend/internal/domain/zakat"
)

// GetAssetSummaryInput represents the input for getting the asset summary.
type GetAssetSummaryInput struct {
	UserID   uuid.UUID
	Currency string               // Optional, defaults to the configured currency
	Standard entity.NisabStandard // Optional, defaults to the configured standard
}

// CategorySummaryItem represents one asset category in the summary.
type CategorySummaryItem struct {
	Category       entity.AssetCategory
	Amount         decimal.Decimal
	EligibleAmount decimal.Decimal
	Percentage     float64
	AssetCount     int
}

// GetAssetSummaryOutput represents the output of getting the asset summary.
type GetAssetSummaryOutput struct {
	Currency          string
	TotalAssets       decimal.Decimal
	EligibleAssets    decimal.Decimal
	NisabStandard     entity.NisabStandard
	NisabThreshold    decimal.Decimal
	MeetsNisab        bool
	ZakatDue          decimal.Decimal
	AssetCount        int
	WarningCount      int
	Categories        []CategorySummaryItem
	CalculationCount  int64
	LastCalculationAt *time.Time
	ResolvedAt        time.Time
}

// GetAssetSummaryUseCase values the stored assets of a user and groups them by category.
type GetAssetSummaryUseCase struct {
	assetRepo       adapter.AssetRepository
	calcRepo        adapter.CalculationRepository
	prices          adapter.PriceReader
	rates           adapter.RateReader
	engine          *zakat.Engine
	defaultCurrency string
}

// NewGetAssetSummaryUseCase creates a new GetAssetSummaryUseCase instance.
func NewGetAssetSummaryUseCase(
	assetRepo adapter.AssetRepository,
	calcRepo adapter.CalculationRepository,
	prices adapter.PriceReader,
	rates adapter.RateReader,
	engine *zakat.Engine,
	defaultCurrency string,
) *GetAssetSummaryUseCase {
	return &GetAssetSummaryUseCase{
		assetRepo:       assetRepo,
		calcRepo:        calcRepo,
		prices:          prices,
		rates:           rates,
		engine:          engine,
		defaultCurrency: defaultCurrency,
	}
}

// Execute builds the summary. Nothing is saved.
func (uc *GetAssetSummaryUseCase) Execute(ctx context.Context, input GetAssetSummaryInput) (*GetAssetSummaryOutput, error) {
	assets, err := uc.assetRepo.FindByUserID(ctx, input.UserID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
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
		UserID:   input.UserID,
		Assets:   assets,
		Prices:   prices,
		Rates:    rates,
		Currency: currency,
		Standard: input.Standard,
		AsOf:     now,
	})
	if err != nil {
		return nil, err
	}

	latest, count, err := uc.calcRepo.FindByUserID(ctx, input.UserID, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load calculation history: %w", err)
	}

	output := &GetAssetSummaryOutput{
		Currency:         calc.Currency,
		TotalAssets:      calc.TotalAssetsValue,
		EligibleAssets:   calc.EligibleAssetsValue,
		NisabStandard:    calc.NisabStandard,
		NisabThreshold:   calc.NisabThresholdValue,
		MeetsNisab:       calc.MeetsNisab,
		ZakatDue:         calc.ZakatAmount,
		AssetCount:       len(calc.AssetBreakdown),
		WarningCount:     len(calc.Warnings),
		Categories:       summarizeCategories(calc),
		CalculationCount: count,
		ResolvedAt:       now,
	}
	if len(latest) > 0 {
		at := latest[0].CalculationDate
		output.LastCalculationAt = &at
	}

	return output, nil
}

// summarizeCategories returns the category totals, largest first.
func summarizeCategories(calc *entity.ZakatCalculation) []CategorySummaryItem {
	totals := calc.CategoryTotals()
	items := make([]CategorySummaryItem, len(totals))
	for i, t := range totals {
		items[i] = CategorySummaryItem{
			Category:       t.Category,
			Amount:         t.Value,
			EligibleAmount: t.EligibleValue,
			Percentage:     percentage(t.Value, calc.TotalAssetsValue),
			AssetCount:     t.AssetCount,
		}
	}

	slices.SortStableFunc(items, func(a, b CategorySummaryItem) int {
		return b.Amount.Cmp(a.Amount)
	})
	return items
}

func percentage(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	pct, _ := part.Mul(decimal.NewFromInt(100)).Div(total).Round(2).Float64()
	return pct
}
