package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency anchors every exchange-rate table.
const BaseCurrency = "USD"

// RateSource describes how an exchange-rate table was obtained.
type RateSource string

const (
	RateSourceLive     RateSource = "live"
	RateSourceCache    RateSource = "cache"
	RateSourceStale    RateSource = "stale"
	RateSourceFallback RateSource = "fallback"
	RateSourceOverride RateSource = "override"
)

// ExchangeRateTable maps currency codes to units per one base-currency unit.
type ExchangeRateTable struct {
	Base      string
	Rates     map[string]decimal.Decimal
	FetchedAt time.Time
	Source    RateSource
}

// Rate returns the rate for a currency code.
func (t *ExchangeRateTable) Rate(code string) (decimal.Decimal, bool) {
	if t == nil || t.Rates == nil {
		return decimal.Zero, false
	}
	if code == t.Base {
		return decimal.NewFromInt(1), true
	}
	rate, ok := t.Rates[code]
	return rate, ok
}

// IsEmpty reports whether the table has no usable rates.
func (t *ExchangeRateTable) IsEmpty() bool {
	return t == nil || len(t.Rates) == 0
}

// Age returns how long ago the table was fetched.
func (t *ExchangeRateTable) Age(now time.Time) time.Duration {
	return now.Sub(t.FetchedAt)
}

// Codes returns the currency codes of the table, sorted.
func (t *ExchangeRateTable) Codes() []string {
	if t == nil {
		return nil
	}
	codes := make([]string, 0, len(t.Rates))
	for code := range t.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// WithSource returns a shallow copy of the table tagged with another source.
func (t *ExchangeRateTable) WithSource(source RateSource) *ExchangeRateTable {
	if t == nil {
		return nil
	}
	clone := *t
	clone.Source = source
	return &clone
}
