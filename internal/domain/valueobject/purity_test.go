package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

func TestPurityForKarat(t *testing.T) {
	purity, ok := PurityForKarat(22)
	assert.True(t, ok)
	assert.True(t, purity.Equal(decimal.RequireFromString("0.916")))

	_, ok = PurityForKarat(23)
	assert.False(t, ok)
}

func TestKaratForPurity(t *testing.T) {
	assert.Equal(t, 24, KaratForPurity(decimal.RequireFromString("0.999")))
	assert.Equal(t, 22, KaratForPurity(decimal.RequireFromString("0.92")))
	assert.Equal(t, 18, KaratForPurity(decimal.RequireFromString("0.75")))
	assert.Equal(t, 9, KaratForPurity(decimal.RequireFromString("0.1")))
}

func TestIsRecognizedPurity(t *testing.T) {
	assert.True(t, IsRecognizedPurity(entity.MetalSilver, decimal.RequireFromString("0.925")))
	assert.True(t, IsRecognizedPurity(entity.MetalGold, decimal.RequireFromString("0.585")))
	assert.False(t, IsRecognizedPurity(entity.MetalGold, decimal.RequireFromString("0.925")))
}

func TestIsValidPurityFraction(t *testing.T) {
	assert.True(t, IsValidPurityFraction(decimal.RequireFromString("1")))
	assert.True(t, IsValidPurityFraction(decimal.RequireFromString("0.001")))
	assert.False(t, IsValidPurityFraction(decimal.Zero))
	assert.False(t, IsValidPurityFraction(decimal.RequireFromString("1.01")))
}

func TestNewCalculationPolicy(t *testing.T) {
	t.Run("defaults for unknown values", func(t *testing.T) {
		policy := NewCalculationPolicy("platinum", "sometimes", false, 0, nil)

		assert.Equal(t, entity.NisabStandardSilver, policy.NisabStandard)
		assert.Equal(t, JewelryPolicyInclude, policy.Jewelry)
		assert.Equal(t, DefaultHawlDays, policy.HawlDays)
		assert.True(t, policy.PersonalUseExempt[entity.AssetCategoryProperty])
		assert.True(t, policy.PersonalUseExempt[entity.AssetCategoryOther])
	})

	t.Run("explicit values", func(t *testing.T) {
		policy := NewCalculationPolicy("gold", "exempt_personal", true, 360, []string{"property", "bogus"})

		assert.Equal(t, entity.NisabStandardGold, policy.NisabStandard)
		assert.Equal(t, JewelryPolicyExemptPersonal, policy.Jewelry)
		assert.True(t, policy.EnforceHawl)
		assert.Equal(t, 360, policy.HawlDays)
		assert.Len(t, policy.PersonalUseExempt, 1)
	})

	t.Run("with standard copies", func(t *testing.T) {
		base := DefaultCalculationPolicy()
		gold := base.WithStandard(entity.NisabStandardGold)

		assert.Equal(t, entity.NisabStandardSilver, base.NisabStandard)
		assert.Equal(t, entity.NisabStandardGold, gold.NisabStandard)
	})
}
