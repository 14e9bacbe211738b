// Package zakat implements the Zakat valuation and eligibility engine.
// Everything in this package is a pure function of its inputs: rates and prices are
// passed in as snapshots and nothing here performs I/O.
package zakat

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
)

// maxSuggestionDistance bounds how far a typo may be from a known code.
const maxSuggestionDistance = 2

// Converter converts amounts between currencies using a base-anchored rate table.
type Converter struct {
	table *entity.ExchangeRateTable
}

// NewConverter creates a converter over a rate table snapshot.
func NewConverter(table *entity.ExchangeRateTable) *Converter {
	return &Converter{table: table}
}

// Table returns the rate table the converter uses.
func (c *Converter) Table() *entity.ExchangeRateTable {
	return c.table
}

// Supports reports whether the code has a usable rate.
func (c *Converter) Supports(code string) bool {
	code = NormalizeCurrency(code)
	rate, ok := c.table.Rate(code)
	return ok && rate.IsPositive()
}

// Convert converts amount from one currency to another.
//
// Identical codes return the amount without a rate lookup, and a zero amount never
// fails. An unknown code is a configuration error (CUR-020001); a missing or
// non-positive rate is CUR-020002.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from, to = NormalizeCurrency(from), NormalizeCurrency(to)
	if from == to {
		return amount, nil
	}
	if amount.IsZero() {
		return decimal.Zero, nil
	}

	fromRate, err := c.rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := c.rate(to)
	if err != nil {
		return decimal.Zero, err
	}

	base := c.table.Base
	inBase := amount
	if from != base {
		inBase = amount.Div(fromRate)
	}
	if to == base {
		return inBase, nil
	}
	return inBase.Mul(toRate), nil
}

func (c *Converter) rate(code string) (decimal.Decimal, error) {
	if c.table.IsEmpty() {
		return decimal.Zero, domainerror.NewCurrencyError(
			domainerror.ErrCodeInvalidRate,
			"no exchange rates available",
			code,
			domainerror.ErrInvalidRate,
		)
	}

	rate, ok := c.table.Rate(code)
	if !ok {
		currencyErr := domainerror.NewCurrencyError(
			domainerror.ErrCodeUnsupportedCurrency,
			"unsupported currency "+code,
			code,
			domainerror.ErrUnsupportedCurrency,
		)
		if suggestion := SuggestCurrency(code, c.table.Codes()); suggestion != "" {
			currencyErr.WithSuggestion(suggestion)
		}
		return decimal.Zero, currencyErr
	}
	if !rate.IsPositive() {
		return decimal.Zero, domainerror.NewCurrencyError(
			domainerror.ErrCodeInvalidRate,
			"invalid exchange rate for "+code,
			code,
			domainerror.ErrInvalidRate,
		)
	}
	return rate, nil
}

// SuggestCurrency returns the known code closest to an unknown one, or "" when
// nothing is within reach.
func SuggestCurrency(code string, known []string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, candidate := range known {
		d := levenshtein.ComputeDistance(code, candidate)
		if d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RoundMoney rounds a monetary amount to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
