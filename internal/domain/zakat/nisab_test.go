package zakat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

func TestConverter_NisabValue(t *testing.T) {
	conv := NewConverter(testRates())
	prices := testPrices()

	t.Run("silver standard at 0.85 USD per gram", func(t *testing.T) {
		got, err := conv.NisabValue(entity.NisabStandardSilver, prices[entity.MetalSilver], "USD")
		require.NoError(t, err)
		assert.True(t, got.Value.Equal(dec("520.51")), "got %s", got.Value)
		assert.True(t, got.WeightGrams.Equal(dec("612.36")))
	})

	t.Run("gold standard at 65 USD per gram", func(t *testing.T) {
		got, err := conv.NisabValue(entity.NisabStandardGold, prices[entity.MetalGold], "USD")
		require.NoError(t, err)
		assert.True(t, got.Value.Equal(dec("5686.20")), "got %s", got.Value)
	})

	t.Run("converted into the result currency", func(t *testing.T) {
		got, err := conv.NisabValue(entity.NisabStandardSilver, prices[entity.MetalSilver], "EUR")
		require.NoError(t, err)
		assert.True(t, got.Value.Equal(dec("473.66")), "got %s", got.Value)
		assert.Equal(t, "EUR", got.Currency)
	})

	t.Run("re-resolved from the price in effect", func(t *testing.T) {
		quote := prices[entity.MetalSilver]
		quote.PricePerGram = dec("1.00")

		got, err := conv.NisabValue(entity.NisabStandardSilver, quote, "USD")
		require.NoError(t, err)
		assert.True(t, got.Value.Equal(dec("612.36")))
	})

	t.Run("quote at another purity is scaled to fine", func(t *testing.T) {
		quote := entity.MetalPriceQuote{
			Metal:        entity.MetalGold,
			Purity:       dec("0.75"),
			PricePerGram: dec("50"),
			Currency:     "USD",
		}

		got, err := conv.NisabValue(entity.NisabStandardGold, quote, "USD")
		require.NoError(t, err)
		// 50 * 0.999 / 0.75 = 66.6 per fine gram
		assert.True(t, got.PricePerGram.Equal(dec("66.6")))
		assert.True(t, got.Value.Equal(dec("5826.17")), "got %s", got.Value)
	})

	t.Run("missing price is fatal", func(t *testing.T) {
		quote := entity.MetalPriceQuote{Metal: entity.MetalSilver, Purity: valueobject.FinePurity, Currency: "USD"}

		_, err := conv.NisabValue(entity.NisabStandardSilver, quote, "USD")

		var calcErr *domainerror.CalculationError
		require.True(t, errors.As(err, &calcErr))
		assert.Equal(t, domainerror.ErrCodeNisabPriceMissing, calcErr.Code)
	})

	t.Run("invalid standard", func(t *testing.T) {
		_, err := conv.NisabValue(entity.NisabStandard("copper"), prices[entity.MetalGold], "USD")
		assert.True(t, errors.Is(err, domainerror.ErrInvalidNisabStandard))
	})
}
