package zakat

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/domain/entity"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRates() *entity.ExchangeRateTable {
	return &entity.ExchangeRateTable{
		Base: entity.BaseCurrency,
		Rates: map[string]decimal.Decimal{
			"USD": dec("1"),
			"EUR": dec("0.91"),
			"GBP": dec("0.78"),
			"JPY": dec("150.14"),
			"AUD": dec("1.51"),
			"CAD": dec("1.37"),
			"CHF": dec("0.9"),
			"CNY": dec("7.23"),
			"INR": dec("83.5"),
			"SAR": dec("3.75"),
			"AED": dec("3.67"),
			"MYR": dec("4.65"),
			"IDR": dec("15650"),
			"PKR": dec("278.5"),
			"EGP": dec("30.9"),
		},
		FetchedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Source:    entity.RateSourceFallback,
	}
}

func testPrices() entity.PriceSnapshot {
	return entity.PriceSnapshot{
		entity.MetalGold: {
			Metal:        entity.MetalGold,
			Purity:       valueobject.FinePurity,
			PricePerGram: dec("65.00"),
			Currency:     "USD",
		},
		entity.MetalSilver: {
			Metal:        entity.MetalSilver,
			Purity:       valueobject.FinePurity,
			PricePerGram: dec("0.85"),
			Currency:     "USD",
		},
	}
}

func cashAsset(name, value, currency string, usage entity.AssetUsage) *entity.Asset {
	return monetaryAsset(name, entity.AssetCategoryCash, value, currency, usage)
}

func monetaryAsset(name string, category entity.AssetCategory, value, currency string, usage entity.AssetUsage) *entity.Asset {
	a := entity.NewAsset(uuid.New(), name, category, usage, entity.MonetaryHolding{
		Value:    dec(value),
		Currency: currency,
	})
	return a
}

func goldAsset(name, weight string, karat int, usage entity.AssetUsage) *entity.Asset {
	return entity.NewAsset(uuid.New(), name, entity.AssetCategoryGold, usage, entity.MetalHolding{
		WeightGrams: dec(weight),
		Karat:       karat,
	})
}

func silverAsset(name, weight, purity string, usage entity.AssetUsage) *entity.Asset {
	return entity.NewAsset(uuid.New(), name, entity.AssetCategorySilver, usage, entity.MetalHolding{
		WeightGrams:    dec(weight),
		PurityFraction: dec(purity),
	})
}
