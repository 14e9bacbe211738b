package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// ZakatRate is the obligation rate applied to the zakatable base.
var ZakatRate = decimal.RequireFromString("0.025")

// NisabReference is the fixed physical quantity that defines a Nisab standard.
type NisabReference struct {
	Standard    entity.NisabStandard
	WeightGrams decimal.Decimal
	Purity      decimal.Decimal
}

// GoldNisab is 87.48 grams of fine gold (about 7.5 tolas or 20 dinars).
var GoldNisab = NisabReference{
	Standard:    entity.NisabStandardGold,
	WeightGrams: decimal.RequireFromString("87.48"),
	Purity:      FinePurity,
}

// SilverNisab is 612.36 grams of fine silver (about 52.5 tolas or 200 dirhams).
var SilverNisab = NisabReference{
	Standard:    entity.NisabStandardSilver,
	WeightGrams: decimal.RequireFromString("612.36"),
	Purity:      FinePurity,
}

// NisabReferenceFor returns the reference quantity of a standard.
func NisabReferenceFor(standard entity.NisabStandard) NisabReference {
	if standard == entity.NisabStandardGold {
		return GoldNisab
	}
	return SilverNisab
}
