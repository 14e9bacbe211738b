// Package calculation contains Zakat calculation use cases.
package calculation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/application/usecase/asset"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
	"github.com/zakat-manager/backend/internal/domain/zakat"
)

// PreviewAssetInput is an asset described inline, never stored.
type PreviewAssetInput struct {
	Name            string
	Category        entity.AssetCategory
	Usage           entity.AssetUsage
	Holding         asset.HoldingFields
	AcquisitionDate *time.Time
}

// PreviewCalculationInput represents a what-if calculation over inline assets.
// Price and rate overrides replace the snapshots in effect for this run only.
type PreviewCalculationInput struct {
	UserID        uuid.UUID
	Assets        []PreviewAssetInput
	Currency      string
	Standard      entity.NisabStandard
	Liabilities   []entity.Liability
	GoldPrice     *decimal.Decimal // per gram of fine gold
	SilverPrice   *decimal.Decimal // per gram of fine silver
	PriceCurrency string
	Rates         map[string]decimal.Decimal // units per one USD
}

// PreviewCalculationOutput represents the unsaved result.
type PreviewCalculationOutput struct {
	Calculation *entity.ZakatCalculation
	Prices      entity.PriceSnapshot
	RateSource  entity.RateSource
}

// PreviewCalculationUseCase computes Zakat for ad hoc assets and snapshots.
type PreviewCalculationUseCase struct {
	prices          adapter.PriceReader
	rates           adapter.RateReader
	engine          *zakat.Engine
	defaultCurrency string
}

// NewPreviewCalculationUseCase creates a new PreviewCalculationUseCase instance.
func NewPreviewCalculationUseCase(prices adapter.PriceReader, rates adapter.RateReader, engine *zakat.Engine, defaultCurrency string) *PreviewCalculationUseCase {
	return &PreviewCalculationUseCase{
		prices:          prices,
		rates:           rates,
		engine:          engine,
		defaultCurrency: defaultCurrency,
	}
}

// Execute performs the preview.
func (uc *PreviewCalculationUseCase) Execute(ctx context.Context, input PreviewCalculationInput) (*PreviewCalculationOutput, error) {
	assets, err := uc.buildAssets(input.UserID, input.Assets)
	if err != nil {
		return nil, err
	}

	prices, err := uc.priceSnapshot(ctx, input)
	if err != nil {
		return nil, err
	}

	rates, err := uc.rateTable(ctx, input.Rates)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = uc.defaultCurrency
	}

	calc, err := uc.engine.Calculate(zakat.CalculationInput{
		UserID:      input.UserID,
		Assets:      assets,
		Prices:      prices,
		Rates:       rates,
		Currency:    currency,
		Standard:    input.Standard,
		Liabilities: input.Liabilities,
		AsOf:        time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	logWarnings(calc)

	return &PreviewCalculationOutput{
		Calculation: calc,
		Prices:      prices,
		RateSource:  rates.Source,
	}, nil
}

func (uc *PreviewCalculationUseCase) buildAssets(userID uuid.UUID, inputs []PreviewAssetInput) ([]*entity.Asset, error) {
	assets := make([]*entity.Asset, 0, len(inputs))
	for i, in := range inputs {
		holding, err := asset.BuildHolding(in.Category, in.Holding, uc.defaultCurrency)
		if err != nil {
			return nil, fmt.Errorf("asset %d: %w", i+1, err)
		}

		usage := in.Usage
		if usage == "" {
			usage = entity.AssetUsageInvestment
		}
		if !usage.IsValid() {
			return nil, domainerror.NewAssetError(
				domainerror.ErrCodeInvalidUsage,
				"usage must be 'personal' or 'investment'",
				domainerror.ErrInvalidUsage,
			)
		}

		name := strings.TrimSpace(in.Name)
		if name == "" {
			name = fmt.Sprintf("%s #%d", in.Category, i+1)
		}

		a := entity.NewAsset(userID, name, in.Category, usage, holding)
		a.AcquisitionDate = in.AcquisitionDate
		assets = append(assets, a)
	}
	return assets, nil
}

func (uc *PreviewCalculationUseCase) priceSnapshot(ctx context.Context, input PreviewCalculationInput) (entity.PriceSnapshot, error) {
	current, err := uc.prices.CurrentPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load metal prices: %w", err)
	}

	snapshot := make(entity.PriceSnapshot, len(current))
	for metal, quote := range current {
		snapshot[metal] = quote
	}

	currency := zakat.NormalizeCurrency(input.PriceCurrency)
	if currency == "" {
		currency = entity.BaseCurrency
	}

	overrides := map[entity.Metal]*decimal.Decimal{
		entity.MetalGold:   input.GoldPrice,
		entity.MetalSilver: input.SilverPrice,
	}
	for metal, price := range overrides {
		if price == nil {
			continue
		}
		if price.IsNegative() {
			return nil, domainerror.NewMetalPriceError(
				domainerror.ErrCodeInvalidPrice,
				string(metal)+" price must not be negative",
				domainerror.ErrInvalidPrice,
			)
		}
		snapshot[metal] = entity.MetalPriceQuote{
			Metal:        metal,
			Purity:       valueobject.FinePurity,
			PricePerGram: *price,
			Currency:     currency,
			Source:       entity.PriceSourceManual,
			QuotedAt:     time.Now().UTC(),
		}
	}

	return snapshot, nil
}

func (uc *PreviewCalculationUseCase) rateTable(ctx context.Context, overrides map[string]decimal.Decimal) (*entity.ExchangeRateTable, error) {
	if len(overrides) == 0 {
		return uc.rates.GetRates(ctx), nil
	}

	rates := make(map[string]decimal.Decimal, len(overrides)+1)
	for code, rate := range overrides {
		code = zakat.NormalizeCurrency(code)
		if !rate.IsPositive() {
			return nil, domainerror.NewCurrencyError(
				domainerror.ErrCodeInvalidRate,
				"exchange rate must be greater than zero",
				code,
				domainerror.ErrInvalidRate,
			)
		}
		rates[code] = rate
	}
	rates[entity.BaseCurrency] = decimal.NewFromInt(1)

	return &entity.ExchangeRateTable{
		Base:      entity.BaseCurrency,
		Rates:     rates,
		FetchedAt: time.Now().UTC(),
		Source:    entity.RateSourceOverride,
	}, nil
}
