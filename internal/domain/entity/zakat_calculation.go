package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NisabStandard selects the metal used to derive the Nisab threshold.
type NisabStandard string

const (
	NisabStandardGold   NisabStandard = "gold"
	NisabStandardSilver NisabStandard = "silver"
)

// IsValid reports whether the standard is known.
func (s NisabStandard) IsValid() bool {
	return s == NisabStandardGold || s == NisabStandardSilver
}

// Metal returns the metal the standard is measured in.
func (s NisabStandard) Metal() Metal {
	if s == NisabStandardGold {
		return MetalGold
	}
	return MetalSilver
}

// EligibilityReason explains why an asset was included or excluded.
type EligibilityReason string

const (
	ReasonIncluded          EligibilityReason = "included"
	ReasonPersonalUseExempt EligibilityReason = "personal_use_exempt"
	ReasonJewelryExempt     EligibilityReason = "jewelry_exempt"
	ReasonHawlNotMet        EligibilityReason = "hawl_not_met"
)

// WarningCode classifies a degraded per-asset valuation.
type WarningCode string

const (
	WarningPriceUnavailable    WarningCode = "price_unavailable"
	WarningUnsupportedCurrency WarningCode = "unsupported_currency"
	WarningInvalidRate         WarningCode = "invalid_rate"
	WarningUnknownKarat        WarningCode = "unknown_karat"
	WarningInvalidHolding      WarningCode = "invalid_holding"
)

// CalculationWarning is attached to a breakdown entry whose value was degraded.
type CalculationWarning struct {
	AssetID uuid.UUID
	Code    WarningCode
	Message string
}

// BreakdownEntry is one asset line of a calculation.
type BreakdownEntry struct {
	AssetID     uuid.UUID
	Category    AssetCategory
	Name        string
	Value       decimal.Decimal
	Eligible    bool
	Reason      EligibilityReason
	ZakatAmount decimal.Decimal
	Warning     *CalculationWarning
}

// Liability is a debt due within the coming period, deducted from the eligible base.
type Liability struct {
	Description string
	Amount      decimal.Decimal
	Currency    string
}

// ZakatCalculation is an immutable snapshot of one evaluation run.
type ZakatCalculation struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Currency            string
	NisabStandard       NisabStandard
	TotalAssetsValue    decimal.Decimal
	EligibleAssetsValue decimal.Decimal
	LiabilitiesValue    decimal.Decimal
	NetZakatableValue   decimal.Decimal
	NisabThresholdValue decimal.Decimal
	MeetsNisab          bool
	ZakatAmount         decimal.Decimal
	AssetBreakdown      []BreakdownEntry
	Warnings            []CalculationWarning
	Notes               string
	CalculationDate     time.Time
	CreatedAt           time.Time
}

// CategoryTotal aggregates breakdown entries of one category.
type CategoryTotal struct {
	Category      AssetCategory
	Value         decimal.Decimal
	EligibleValue decimal.Decimal
	ZakatAmount   decimal.Decimal
	AssetCount    int
}

// CategoryTotals groups the breakdown by category, in first-seen order.
func (c *ZakatCalculation) CategoryTotals() []CategoryTotal {
	index := make(map[AssetCategory]int)
	totals := make([]CategoryTotal, 0)

	for _, entry := range c.AssetBreakdown {
		i, ok := index[entry.Category]
		if !ok {
			i = len(totals)
			index[entry.Category] = i
			totals = append(totals, CategoryTotal{
				Category:      entry.Category,
				Value:         decimal.Zero,
				EligibleValue: decimal.Zero,
				ZakatAmount:   decimal.Zero,
			})
		}
		totals[i].Value = totals[i].Value.Add(entry.Value)
		if entry.Eligible {
			totals[i].EligibleValue = totals[i].EligibleValue.Add(entry.Value)
		}
		totals[i].ZakatAmount = totals[i].ZakatAmount.Add(entry.ZakatAmount)
		totals[i].AssetCount++
	}

	return totals
}
