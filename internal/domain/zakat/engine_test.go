package zakat

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

func newTestEngine() *Engine {
	return NewEngine(valueobject.DefaultCalculationPolicy())
}

func calculate(t *testing.T, e *Engine, assets []*entity.Asset, liabilities ...entity.Liability) *entity.ZakatCalculation {
	t.Helper()
	calc, err := e.Calculate(CalculationInput{
		Assets:      assets,
		Prices:      testPrices(),
		Rates:       testRates(),
		Currency:    "USD",
		Standard:    entity.NisabStandardSilver,
		Liabilities: liabilities,
		AsOf:        time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, calc)
	assertInvariants(t, calc)
	return calc
}

func assertInvariants(t *testing.T, calc *entity.ZakatCalculation) {
	t.Helper()

	assert.True(t, calc.EligibleAssetsValue.LessThanOrEqual(calc.TotalAssetsValue), "eligible exceeds total")

	valueSum := decimal.Zero
	zakatSum := decimal.Zero
	for _, entry := range calc.AssetBreakdown {
		valueSum = valueSum.Add(entry.Value)
		zakatSum = zakatSum.Add(entry.ZakatAmount)
		assert.False(t, entry.ZakatAmount.IsNegative(), "entry %s has negative zakat %s", entry.Name, entry.ZakatAmount)
		if !entry.Eligible {
			assert.True(t, entry.ZakatAmount.IsZero(), "exempt entry %s carries zakat", entry.Name)
		}
	}
	assert.True(t, valueSum.Equal(calc.TotalAssetsValue), "breakdown values %s != total %s", valueSum, calc.TotalAssetsValue)
	assert.True(t, zakatSum.Equal(calc.ZakatAmount), "breakdown zakat %s != zakat %s", zakatSum, calc.ZakatAmount)

	if calc.NetZakatableValue.LessThan(calc.NisabThresholdValue) {
		assert.True(t, calc.ZakatAmount.IsZero())
	} else {
		expected := calc.NetZakatableValue.Mul(valueobject.ZakatRate).Round(2)
		assert.True(t, calc.ZakatAmount.Equal(expected), "zakat %s != %s", calc.ZakatAmount, expected)
	}
}

func TestEngine_Calculate_SingleCashAsset(t *testing.T) {
	calc := calculate(t, newTestEngine(), []*entity.Asset{
		cashAsset("Savings", "10000", "USD", entity.AssetUsageInvestment),
	})

	assert.True(t, calc.EligibleAssetsValue.Equal(dec("10000")))
	assert.True(t, calc.ZakatAmount.Equal(dec("250.00")))
	assert.True(t, calc.MeetsNisab)
	assert.Equal(t, entity.NisabStandardSilver, calc.NisabStandard)
	assert.Empty(t, calc.Warnings)
}

func TestEngine_Calculate_GoldAsset(t *testing.T) {
	calc := calculate(t, newTestEngine(), []*entity.Asset{
		goldAsset("Bullion", "50", 24, entity.AssetUsageInvestment),
	})

	require.Len(t, calc.AssetBreakdown, 1)
	assert.True(t, calc.AssetBreakdown[0].Value.Equal(dec("3246.75")))
	assert.True(t, calc.ZakatAmount.Equal(dec("81.17")), "got %s", calc.ZakatAmount)
}

func TestEngine_Calculate_SilverNisab(t *testing.T) {
	calc := calculate(t, newTestEngine(), []*entity.Asset{
		cashAsset("Checking", "1000", "USD", entity.AssetUsageInvestment),
		cashAsset("Savings", "2000", "USD", entity.AssetUsageInvestment),
	})

	assert.True(t, calc.NisabThresholdValue.Equal(dec("520.51")))
	assert.True(t, calc.EligibleAssetsValue.Equal(dec("3000")))
	assert.True(t, calc.ZakatAmount.Equal(dec("75.00")))
	assert.True(t, calc.AssetBreakdown[0].ZakatAmount.Equal(dec("25")))
	assert.True(t, calc.AssetBreakdown[1].ZakatAmount.Equal(dec("50")))
}

func TestEngine_Calculate_AllocationOfManySmallAssets(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		value     string
		zakat     string
		low, high string
		highCount int
	}{
		{name: "600 x 1.00", count: 600, value: "1.00", zakat: "15.00", low: "0.02", high: "0.03", highCount: 300},
		{name: "60 x 10.20", count: 60, value: "10.20", zakat: "15.30", low: "0.25", high: "0.26", highCount: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assets := make([]*entity.Asset, tt.count)
			for i := range assets {
				assets[i] = cashAsset(fmt.Sprintf("Envelope %d", i), tt.value, "USD", entity.AssetUsageInvestment)
			}

			calc := calculate(t, newTestEngine(), assets)
			require.True(t, calc.MeetsNisab)
			assert.True(t, calc.ZakatAmount.Equal(dec(tt.zakat)), "got %s", calc.ZakatAmount)

			high := 0
			for _, entry := range calc.AssetBreakdown {
				switch {
				case entry.ZakatAmount.Equal(dec(tt.high)):
					high++
				case entry.ZakatAmount.Equal(dec(tt.low)):
				default:
					t.Fatalf("entry %s has share %s", entry.Name, entry.ZakatAmount)
				}
			}
			assert.Equal(t, tt.highCount, high)
		})
	}
}

func TestEngine_Calculate_AllocationWithLiabilities(t *testing.T) {
	calc := calculate(t, newTestEngine(), []*entity.Asset{
		cashAsset("A", "333.33", "USD", entity.AssetUsageInvestment),
		cashAsset("B", "333.33", "USD", entity.AssetUsageInvestment),
		cashAsset("C", "333.34", "USD", entity.AssetUsageInvestment),
	}, entity.Liability{Description: "Loan", Amount: dec("1.00"), Currency: "USD"})

	assert.True(t, calc.NetZakatableValue.Equal(dec("999")))
	assert.True(t, calc.ZakatAmount.Equal(dec("24.98")), "got %s", calc.ZakatAmount)
}

func TestEngine_Calculate_PersonalPropertyExcluded(t *testing.T) {
	calc := calculate(t, newTestEngine(), []*entity.Asset{
		monetaryAsset("Home", entity.AssetCategoryProperty, "250000", "USD", entity.AssetUsagePersonal),
		cashAsset("Savings", "1000", "USD", entity.AssetUsageInvestment),
	})

	assert.True(t, calc.TotalAssetsValue.Equal(dec("251000")))
	assert.True(t, calc.EligibleAssetsValue.Equal(dec("1000")))
	assert.True(t, calc.ZakatAmount.Equal(dec("25")))

	home := calc.AssetBreakdown[0]
	assert.False(t, home.Eligible)
	assert.Equal(t, entity.ReasonPersonalUseExempt, home.Reason)
	assert.True(t, home.ZakatAmount.IsZero())
}

func TestEngine_Calculate_BelowNisab(t *testing.T) {
	calc := calculate(t, newTestEngine(), []*entity.Asset{
		cashAsset("Wallet", "300", "USD", entity.AssetUsagePersonal),
		cashAsset("Savings", "200", "USD", entity.AssetUsageInvestment),
	})

	assert.False(t, calc.MeetsNisab)
	assert.True(t, calc.ZakatAmount.IsZero())
	for _, entry := range calc.AssetBreakdown {
		assert.True(t, entry.ZakatAmount.IsZero())
	}
}

func TestEngine_Calculate_AllocationRemainder(t *testing.T) {
	calc := calculate(t, newTestEngine(), []*entity.Asset{
		cashAsset("A", "100.10", "USD", entity.AssetUsageInvestment),
		cashAsset("B", "200.30", "USD", entity.AssetUsageInvestment),
		cashAsset("C", "300.50", "USD", entity.AssetUsageInvestment),
	})

	assert.True(t, calc.ZakatAmount.Equal(dec("15.02")))
	assert.True(t, calc.AssetBreakdown[0].ZakatAmount.Equal(dec("2.50")))
	assert.True(t, calc.AssetBreakdown[1].ZakatAmount.Equal(dec("5.01")))
	assert.True(t, calc.AssetBreakdown[2].ZakatAmount.Equal(dec("7.51")))
}

func TestEngine_Calculate_MultiCurrency(t *testing.T) {
	calc := calculate(t, newTestEngine(), []*entity.Asset{
		cashAsset("Euro account", "910", "EUR", entity.AssetUsageInvestment),
		cashAsset("Pound account", "78", "GBP", entity.AssetUsageInvestment),
	})

	assert.True(t, calc.AssetBreakdown[0].Value.Equal(dec("1000")))
	assert.True(t, calc.AssetBreakdown[1].Value.Equal(dec("100")))
	assert.True(t, calc.ZakatAmount.Equal(dec("27.50")))
}

func TestEngine_Calculate_ZeroQuantities(t *testing.T) {
	calc := calculate(t, newTestEngine(), []*entity.Asset{
		cashAsset("Empty", "0", "USD", entity.AssetUsageInvestment),
		goldAsset("No gold", "0", 22, entity.AssetUsageInvestment),
		cashAsset("Unknown but empty", "0", "XYZ", entity.AssetUsageInvestment),
	})

	for _, entry := range calc.AssetBreakdown {
		assert.True(t, entry.Value.IsZero(), "%s should be zero", entry.Name)
		assert.Nil(t, entry.Warning)
	}
}

func TestEngine_Calculate_DegradedAssets(t *testing.T) {
	e := newTestEngine()
	unknownCurrency := cashAsset("Offshore", "5000", "XYZ", entity.AssetUsageInvestment)
	savings := cashAsset("Savings", "1000", "USD", entity.AssetUsageInvestment)

	t.Run("unsupported currency values the asset at zero with a warning", func(t *testing.T) {
		calc := calculate(t, e, []*entity.Asset{unknownCurrency, savings})

		entry := calc.AssetBreakdown[0]
		assert.True(t, entry.Value.IsZero())
		require.NotNil(t, entry.Warning)
		assert.Equal(t, entity.WarningUnsupportedCurrency, entry.Warning.Code)
		assert.Equal(t, unknownCurrency.ID, entry.Warning.AssetID)
		require.Len(t, calc.Warnings, 1)
		assert.True(t, calc.ZakatAmount.Equal(dec("25")))
	})

	t.Run("missing metal price values the asset at zero with a warning", func(t *testing.T) {
		prices := testPrices()
		delete(prices, entity.MetalGold)

		calc, err := e.Calculate(CalculationInput{
			Assets:   []*entity.Asset{goldAsset("Ring", "10", 22, entity.AssetUsagePersonal), savings},
			Prices:   prices,
			Rates:    testRates(),
			Currency: "USD",
			Standard: entity.NisabStandardSilver,
		})
		require.NoError(t, err)
		assertInvariants(t, calc)

		require.NotNil(t, calc.AssetBreakdown[0].Warning)
		assert.Equal(t, entity.WarningPriceUnavailable, calc.AssetBreakdown[0].Warning.Code)
		assert.True(t, calc.AssetBreakdown[0].Value.IsZero())
	})

	t.Run("unknown karat is valued at full weight and flagged", func(t *testing.T) {
		calc := calculate(t, e, []*entity.Asset{goldAsset("Odd piece", "10", 23, entity.AssetUsageInvestment)})

		entry := calc.AssetBreakdown[0]
		assert.True(t, entry.Value.Equal(dec("650")))
		require.NotNil(t, entry.Warning)
		assert.Equal(t, entity.WarningUnknownKarat, entry.Warning.Code)
	})

	t.Run("holding that does not match the category", func(t *testing.T) {
		broken := cashAsset("Broken", "10", "USD", entity.AssetUsageInvestment)
		broken.Holding = nil

		calc := calculate(t, e, []*entity.Asset{broken})
		require.NotNil(t, calc.AssetBreakdown[0].Warning)
		assert.Equal(t, entity.WarningInvalidHolding, calc.AssetBreakdown[0].Warning.Code)
	})
}

func TestEngine_Calculate_Liabilities(t *testing.T) {
	e := newTestEngine()
	assets := []*entity.Asset{
		cashAsset("Checking", "4000", "USD", entity.AssetUsageInvestment),
		cashAsset("Savings", "6000", "USD", entity.AssetUsageInvestment),
	}

	t.Run("debts reduce the base", func(t *testing.T) {
		calc := calculate(t, e, assets, entity.Liability{Description: "Card", Amount: dec("1820"), Currency: "EUR"})

		assert.True(t, calc.LiabilitiesValue.Equal(dec("2000")))
		assert.True(t, calc.EligibleAssetsValue.Equal(dec("10000")))
		assert.True(t, calc.NetZakatableValue.Equal(dec("8000")))
		assert.True(t, calc.ZakatAmount.Equal(dec("200")))
		assert.True(t, calc.AssetBreakdown[0].ZakatAmount.Equal(dec("80")))
		assert.True(t, calc.AssetBreakdown[1].ZakatAmount.Equal(dec("120")))
	})

	t.Run("debts above assets leave nothing due", func(t *testing.T) {
		calc := calculate(t, e, assets, entity.Liability{Description: "Mortgage", Amount: dec("20000")})

		assert.True(t, calc.NetZakatableValue.IsZero())
		assert.False(t, calc.MeetsNisab)
		assert.True(t, calc.ZakatAmount.IsZero())
	})

	t.Run("negative debt is rejected", func(t *testing.T) {
		_, err := e.Calculate(CalculationInput{
			Assets:      assets,
			Prices:      testPrices(),
			Rates:       testRates(),
			Currency:    "USD",
			Liabilities: []entity.Liability{{Description: "Bad", Amount: dec("-1")}},
		})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidLiability))
	})
}

func TestEngine_Calculate_Fatal(t *testing.T) {
	e := newTestEngine()
	assets := []*entity.Asset{cashAsset("Savings", "1000", "USD", entity.AssetUsageInvestment)}

	tests := []struct {
		name  string
		input CalculationInput
		code  domainerror.CalculationErrorCode
	}{
		{
			name:  "no rate table",
			input: CalculationInput{Assets: assets, Prices: testPrices(), Currency: "USD"},
			code:  domainerror.ErrCodeRateTableMissing,
		},
		{
			name:  "unsupported result currency",
			input: CalculationInput{Assets: assets, Prices: testPrices(), Rates: testRates(), Currency: "ZZZ"},
			code:  domainerror.ErrCodeResultCurrencyUnsupported,
		},
		{
			name:  "missing nisab price",
			input: CalculationInput{Assets: assets, Prices: entity.PriceSnapshot{}, Rates: testRates(), Currency: "USD"},
			code:  domainerror.ErrCodeNisabPriceMissing,
		},
		{
			name:  "invalid standard",
			input: CalculationInput{Assets: assets, Prices: testPrices(), Rates: testRates(), Currency: "USD", Standard: "copper"},
			code:  domainerror.ErrCodeInvalidNisabStandard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := e.Calculate(tt.input)

			assert.Nil(t, calc)
			var calcErr *domainerror.CalculationError
			require.True(t, errors.As(err, &calcErr))
			assert.Equal(t, tt.code, calcErr.Code)
		})
	}
}

func TestEngine_Calculate_PolicyStandard(t *testing.T) {
	policy := valueobject.DefaultCalculationPolicy()
	policy.NisabStandard = entity.NisabStandardGold
	e := NewEngine(policy)

	calc, err := e.ComputeZakat(
		[]*entity.Asset{cashAsset("Savings", "5000", "USD", entity.AssetUsageInvestment)},
		testPrices(), testRates(), "USD", "",
	)
	require.NoError(t, err)

	assert.Equal(t, entity.NisabStandardGold, calc.NisabStandard)
	assert.True(t, calc.NisabThresholdValue.Equal(dec("5686.20")))
	assert.False(t, calc.MeetsNisab)
	assert.True(t, calc.ZakatAmount.IsZero())
}

func TestEngine_Calculate_Deterministic(t *testing.T) {
	e := newTestEngine()
	assets := []*entity.Asset{
		cashAsset("Savings", "1234.56", "EUR", entity.AssetUsageInvestment),
		goldAsset("Ring", "12.5", 18, entity.AssetUsagePersonal),
		silverAsset("Coins", "300", "0.9", entity.AssetUsageInvestment),
	}

	first := calculate(t, e, assets)
	second := calculate(t, e, assets)

	assert.True(t, first.TotalAssetsValue.Equal(second.TotalAssetsValue))
	assert.True(t, first.ZakatAmount.Equal(second.ZakatAmount))
	assert.Equal(t, len(first.AssetBreakdown), len(second.AssetBreakdown))
}

func TestZakatCalculation_CategoryTotals(t *testing.T) {
	calc := calculate(t, newTestEngine(), []*entity.Asset{
		cashAsset("Checking", "1000", "USD", entity.AssetUsageInvestment),
		goldAsset("Bullion", "50", 24, entity.AssetUsageInvestment),
		cashAsset("Savings", "2000", "USD", entity.AssetUsageInvestment),
	})

	totals := calc.CategoryTotals()
	require.Len(t, totals, 2)
	assert.Equal(t, entity.AssetCategoryCash, totals[0].Category)
	assert.Equal(t, 2, totals[0].AssetCount)
	assert.True(t, totals[0].Value.Equal(dec("3000")))
	assert.Equal(t, entity.AssetCategoryGold, totals[1].Category)
}
