// Package valueobject contains domain value objects for the Zakat Manager system.
package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// PurityStandard is a recognized assay grade of a metal.
type PurityStandard struct {
	Metal  entity.Metal
	Karat  int // zero for silver grades
	Purity decimal.Decimal
	Name   string
}

// GoldKaratStandards maps karats to purity fractions.
var GoldKaratStandards = []PurityStandard{
	{Metal: entity.MetalGold, Karat: 24, Purity: decimal.RequireFromString("0.999"), Name: "24K - Pure Gold"},
	{Metal: entity.MetalGold, Karat: 22, Purity: decimal.RequireFromString("0.916"), Name: "22K"},
	{Metal: entity.MetalGold, Karat: 21, Purity: decimal.RequireFromString("0.875"), Name: "21K"},
	{Metal: entity.MetalGold, Karat: 18, Purity: decimal.RequireFromString("0.75"), Name: "18K"},
	{Metal: entity.MetalGold, Karat: 14, Purity: decimal.RequireFromString("0.585"), Name: "14K"},
	{Metal: entity.MetalGold, Karat: 10, Purity: decimal.RequireFromString("0.417"), Name: "10K"},
	{Metal: entity.MetalGold, Karat: 9, Purity: decimal.RequireFromString("0.375"), Name: "9K"},
}

// SilverStandards lists the recognized silver grades.
var SilverStandards = []PurityStandard{
	{Metal: entity.MetalSilver, Purity: decimal.RequireFromString("0.999"), Name: "Fine Silver"},
	{Metal: entity.MetalSilver, Purity: decimal.RequireFromString("0.958"), Name: "Britannia Silver"},
	{Metal: entity.MetalSilver, Purity: decimal.RequireFromString("0.925"), Name: "Sterling Silver"},
	{Metal: entity.MetalSilver, Purity: decimal.RequireFromString("0.9"), Name: "Coin Silver"},
	{Metal: entity.MetalSilver, Purity: decimal.RequireFromString("0.8"), Name: "European Silver"},
}

// FinePurity is the purity at which base market prices are quoted.
var FinePurity = decimal.RequireFromString("0.999")

// KaratFallbackPurity is applied to karats missing from the table: full weight, no discount.
var KaratFallbackPurity = decimal.NewFromInt(1)

// PurityForKarat looks up the purity of a gold karat.
// The boolean is false when the karat is not in the table.
func PurityForKarat(karat int) (decimal.Decimal, bool) {
	for _, std := range GoldKaratStandards {
		if std.Karat == karat {
			return std.Purity, true
		}
	}
	return decimal.Zero, false
}

// KaratForPurity returns the karat whose purity is closest to the given fraction.
func KaratForPurity(purity decimal.Decimal) int {
	best := GoldKaratStandards[0]
	bestDiff := best.Purity.Sub(purity).Abs()
	for _, std := range GoldKaratStandards[1:] {
		if diff := std.Purity.Sub(purity).Abs(); diff.LessThan(bestDiff) {
			best, bestDiff = std, diff
		}
	}
	return best.Karat
}

// StandardsFor returns the recognized grades of a metal.
func StandardsFor(metal entity.Metal) []PurityStandard {
	if metal == entity.MetalGold {
		return GoldKaratStandards
	}
	return SilverStandards
}

// IsRecognizedPurity reports whether purity matches a standard grade of the metal.
func IsRecognizedPurity(metal entity.Metal, purity decimal.Decimal) bool {
	for _, std := range StandardsFor(metal) {
		if std.Purity.Equal(purity) {
			return true
		}
	}
	return false
}

// IsValidPurityFraction reports whether 0 < purity <= 1.
func IsValidPurityFraction(purity decimal.Decimal) bool {
	return purity.IsPositive() && purity.LessThanOrEqual(decimal.NewFromInt(1))
}
