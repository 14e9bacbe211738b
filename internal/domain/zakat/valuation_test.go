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

func TestResolvePurity(t *testing.T) {
	tests := []struct {
		name     string
		holding  entity.MetalHolding
		purity   string
		fallback bool
	}{
		{name: "24K", holding: entity.MetalHolding{Karat: 24}, purity: "0.999"},
		{name: "22K", holding: entity.MetalHolding{Karat: 22}, purity: "0.916"},
		{name: "21K", holding: entity.MetalHolding{Karat: 21}, purity: "0.875"},
		{name: "18K", holding: entity.MetalHolding{Karat: 18}, purity: "0.75"},
		{name: "14K", holding: entity.MetalHolding{Karat: 14}, purity: "0.585"},
		{name: "10K", holding: entity.MetalHolding{Karat: 10}, purity: "0.417"},
		{name: "9K", holding: entity.MetalHolding{Karat: 9}, purity: "0.375"},
		{name: "unknown karat falls back to full weight", holding: entity.MetalHolding{Karat: 23}, purity: "1", fallback: true},
		{name: "explicit sterling fraction", holding: entity.MetalHolding{PurityFraction: dec("0.925")}, purity: "0.925"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePurity(tt.holding)
			assert.True(t, got.Purity.Equal(dec(tt.purity)), "expected %s, got %s", tt.purity, got.Purity)
			assert.Equal(t, tt.fallback, got.Fallback)
		})
	}
}

func TestMetalValue(t *testing.T) {
	t.Run("50g of 24K at 65 USD", func(t *testing.T) {
		got := MetalValue(dec("50"), dec("0.999"), dec("65.00"))
		assert.True(t, got.Equal(dec("3246.75")), "got %s", got)
	})

	t.Run("zero weight is zero regardless of price", func(t *testing.T) {
		assert.True(t, MetalValue(decimal.Zero, dec("0.999"), dec("9999")).IsZero())
	})

	t.Run("zero price means price unknown", func(t *testing.T) {
		assert.True(t, MetalValue(dec("50"), dec("0.999"), decimal.Zero).IsZero())
	})

	t.Run("never negative", func(t *testing.T) {
		assert.False(t, MetalValue(dec("-1"), dec("0.999"), dec("65")).IsNegative())
	})
}

func TestConverter_ValueOfMetal(t *testing.T) {
	conv := NewConverter(testRates())

	t.Run("same currency", func(t *testing.T) {
		got, err := conv.ValueOfMetal(dec("50"), dec("0.999"), dec("65.00"), "USD", "USD")
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("3246.75")))
	})

	t.Run("converted into result currency", func(t *testing.T) {
		got, err := conv.ValueOfMetal(dec("10"), dec("0.999"), dec("65.00"), "USD", "EUR")
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("590.9085")), "got %s", got)
	})

	t.Run("unknown price currency fails", func(t *testing.T) {
		_, err := conv.ValueOfMetal(dec("10"), dec("0.999"), dec("65.00"), "XAU", "USD")
		assert.True(t, errors.Is(err, domainerror.ErrUnsupportedCurrency))
	})

	t.Run("zero weight never needs a rate", func(t *testing.T) {
		got, err := conv.ValueOfMetal(decimal.Zero, dec("0.999"), dec("65.00"), "XAU", "USD")
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})
}
