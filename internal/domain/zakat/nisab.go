package zakat

import (
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

// NisabThreshold is a resolved Nisab value.
type NisabThreshold struct {
	Standard     entity.NisabStandard
	WeightGrams  decimal.Decimal
	PricePerGram decimal.Decimal
	Currency     string
	Value        decimal.Decimal
}

// NisabValue computes the Nisab threshold of a standard in the result currency from
// the metal quote in effect.
//
// The reference quantity is weight × price scaled by referencePurity / quotePurity,
// so a fine quote (0.999) is used as-is.
func (c *Converter) NisabValue(standard entity.NisabStandard, quote entity.MetalPriceQuote, resultCurrency string) (NisabThreshold, error) {
	if !standard.IsValid() {
		return NisabThreshold{}, domainerror.NewCalculationError(
			domainerror.ErrCodeInvalidNisabStandard,
			"nisab standard must be gold or silver",
			domainerror.ErrInvalidNisabStandard,
		)
	}
	if !quote.PricePerGram.IsPositive() {
		return NisabThreshold{}, domainerror.NewCalculationError(
			domainerror.ErrCodeNisabPriceMissing,
			"no "+string(standard.Metal())+" price available for nisab",
			domainerror.ErrNisabPriceMissing,
		)
	}

	ref := valueobject.NisabReferenceFor(standard)
	price := quote.PricePerGram
	if quote.Purity.IsPositive() && !quote.Purity.Equal(ref.Purity) {
		price = price.Mul(ref.Purity).Div(quote.Purity)
	}

	value, err := c.Convert(ref.WeightGrams.Mul(price), quote.Currency, resultCurrency)
	if err != nil {
		return NisabThreshold{}, err
	}

	return NisabThreshold{
		Standard:     standard,
		WeightGrams:  ref.WeightGrams,
		PricePerGram: price,
		Currency:     NormalizeCurrency(resultCurrency),
		Value:        RoundMoney(value),
	}, nil
}
