package zakat

import (
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/domain/entity"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

// PurityResolution is the purity applied to a metal holding.
type PurityResolution struct {
	Purity decimal.Decimal
	// Fallback is set when the karat is not in the table and full weight was assumed.
	Fallback bool
}

// ResolvePurity returns the purity fraction of a metal holding.
// A karat takes precedence over a fraction.
func ResolvePurity(holding entity.MetalHolding) PurityResolution {
	if !holding.HasKarat() {
		return PurityResolution{Purity: holding.PurityFraction}
	}

	purity, ok := valueobject.PurityForKarat(holding.Karat)
	if !ok {
		// Unknown karat: count the full weight without discount.
		return PurityResolution{Purity: valueobject.KaratFallbackPurity, Fallback: true}
	}
	return PurityResolution{Purity: purity}
}

// MetalValue returns weight × purity × price in the price currency.
// A zero weight or price yields exactly zero; negative inputs are clamped to zero.
func MetalValue(weightGrams, purity, pricePerGram decimal.Decimal) decimal.Decimal {
	if !weightGrams.IsPositive() || !purity.IsPositive() || !pricePerGram.IsPositive() {
		return decimal.Zero
	}
	return weightGrams.Mul(purity).Mul(pricePerGram)
}

// ValueOfMetal values a quantity of metal and converts it into the result currency.
func (c *Converter) ValueOfMetal(weightGrams, purity, pricePerGram decimal.Decimal, priceCurrency, resultCurrency string) (decimal.Decimal, error) {
	return c.Convert(MetalValue(weightGrams, purity, pricePerGram), priceCurrency, resultCurrency)
}
