package zakat

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
)

func TestConverter_Convert(t *testing.T) {
	conv := NewConverter(testRates())

	tests := []struct {
		name     string
		amount   string
		from     string
		to       string
		expected string
	}{
		{name: "usd to eur uses fallback rate", amount: "100", from: "USD", to: "EUR", expected: "91"},
		{name: "eur to usd divides by rate", amount: "91", from: "EUR", to: "USD", expected: "100"},
		{name: "usd to jpy", amount: "10", from: "USD", to: "JPY", expected: "1501.4"},
		{name: "codes are normalized", amount: "100", from: " usd", to: "eur ", expected: "91"},
		{name: "zero stays zero", amount: "0", from: "USD", to: "GBP", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.Convert(dec(tt.amount), tt.from, tt.to)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.expected)), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestConverter_Convert_Identity(t *testing.T) {
	conv := NewConverter(testRates())

	for _, code := range []string{"USD", "EUR", "IDR", "XYZ"} {
		amount := dec("1234.56")
		got, err := conv.Convert(amount, code, code)
		require.NoError(t, err)
		assert.True(t, got.Equal(amount), "identity failed for %s", code)
	}
}

func TestConverter_Convert_RoundTrip(t *testing.T) {
	conv := NewConverter(testRates())
	tolerance := dec("0.0001")

	pairs := [][2]string{{"EUR", "GBP"}, {"USD", "IDR"}, {"PKR", "CHF"}, {"JPY", "SAR"}}
	for _, p := range pairs {
		amount := dec("100")
		there, err := conv.Convert(amount, p[0], p[1])
		require.NoError(t, err)
		back, err := conv.Convert(there, p[1], p[0])
		require.NoError(t, err)
		assert.True(t, back.Sub(amount).Abs().LessThanOrEqual(tolerance),
			"round trip %s->%s->%s gave %s", p[0], p[1], p[0], back)
	}
}

func TestConverter_Convert_UnknownCurrency(t *testing.T) {
	conv := NewConverter(testRates())

	t.Run("zero amount never fails", func(t *testing.T) {
		got, err := conv.Convert(decimal.Zero, "XYZ", "USD")
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("nonzero amount is a configuration error with a suggestion", func(t *testing.T) {
		_, err := conv.Convert(dec("10"), "EUX", "USD")
		require.Error(t, err)

		var currencyErr *domainerror.CurrencyError
		require.True(t, errors.As(err, &currencyErr))
		assert.Equal(t, domainerror.ErrCodeUnsupportedCurrency, currencyErr.Code)
		assert.Equal(t, "EUX", currencyErr.Currency)
		assert.Equal(t, "EUR", currencyErr.Suggestion)
		assert.True(t, errors.Is(err, domainerror.ErrUnsupportedCurrency))
		assert.Contains(t, err.Error(), "did you mean EUR?")
	})

	t.Run("no suggestion when nothing is close", func(t *testing.T) {
		_, err := conv.Convert(dec("10"), "USD", "QQQQQQ")

		var currencyErr *domainerror.CurrencyError
		require.True(t, errors.As(err, &currencyErr))
		assert.Empty(t, currencyErr.Suggestion)
	})
}

func TestConverter_Convert_InvalidRate(t *testing.T) {
	table := testRates()
	table.Rates["ZZZ"] = decimal.Zero
	table.Rates["NEG"] = dec("-1")
	conv := NewConverter(table)

	for _, code := range []string{"ZZZ", "NEG"} {
		_, err := conv.Convert(dec("5"), code, "USD")
		require.Error(t, err)

		var currencyErr *domainerror.CurrencyError
		require.True(t, errors.As(err, &currencyErr))
		assert.Equal(t, domainerror.ErrCodeInvalidRate, currencyErr.Code)
		assert.False(t, conv.Supports(code))
	}
}

func TestConverter_Convert_EmptyTable(t *testing.T) {
	conv := NewConverter(&entity.ExchangeRateTable{Base: entity.BaseCurrency})

	_, err := conv.Convert(dec("5"), "EUR", "USD")
	assert.True(t, errors.Is(err, domainerror.ErrInvalidRate))
}

func TestSuggestCurrency(t *testing.T) {
	known := []string{"EUR", "GBP", "USD"}

	assert.Equal(t, "USD", SuggestCurrency("USS", known))
	assert.Equal(t, "GBP", SuggestCurrency("GPB", known))
	assert.Equal(t, "", SuggestCurrency("ABCDEFG", known))
}
