// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetCategory controls which valuation path applies to an asset.
type AssetCategory string

const (
	AssetCategoryCash     AssetCategory = "cash"
	AssetCategoryGold     AssetCategory = "gold"
	AssetCategorySilver   AssetCategory = "silver"
	AssetCategoryProperty AssetCategory = "property"
	AssetCategoryCrypto   AssetCategory = "crypto"
	AssetCategoryStocks   AssetCategory = "stocks"
	AssetCategoryBusiness AssetCategory = "business"
	AssetCategoryOther    AssetCategory = "other"
)

// AssetCategories lists every supported category in display order.
var AssetCategories = []AssetCategory{
	AssetCategoryCash,
	AssetCategoryGold,
	AssetCategorySilver,
	AssetCategoryProperty,
	AssetCategoryCrypto,
	AssetCategoryStocks,
	AssetCategoryBusiness,
	AssetCategoryOther,
}

// IsValid reports whether the category is one of the supported categories.
func (c AssetCategory) IsValid() bool {
	for _, known := range AssetCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IsMetal reports whether assets of this category are valued by weight and purity.
func (c AssetCategory) IsMetal() bool {
	return c == AssetCategoryGold || c == AssetCategorySilver
}

// Metal returns the metal for a metal category.
func (c AssetCategory) Metal() (Metal, bool) {
	switch c {
	case AssetCategoryGold:
		return MetalGold, true
	case AssetCategorySilver:
		return MetalSilver, true
	default:
		return "", false
	}
}

// AssetUsage tags an asset as held for personal use or as an investment.
type AssetUsage string

const (
	AssetUsagePersonal   AssetUsage = "personal"
	AssetUsageInvestment AssetUsage = "investment"
)

// IsValid reports whether the usage tag is known.
func (u AssetUsage) IsValid() bool {
	return u == AssetUsagePersonal || u == AssetUsageInvestment
}

// HoldingKind identifies the variant stored in an Asset's Holding.
type HoldingKind string

const (
	HoldingKindMetal    HoldingKind = "metal"
	HoldingKindMonetary HoldingKind = "monetary"
)

// Holding is the category-specific quantity of an asset.
// It is implemented by MetalHolding and MonetaryHolding only.
type Holding interface {
	Kind() HoldingKind
}

// MetalHolding is a physical quantity of gold or silver.
// Exactly one of Karat and PurityFraction is set.
type MetalHolding struct {
	WeightGrams    decimal.Decimal
	Karat          int
	PurityFraction decimal.Decimal
}

// Kind implements Holding.
func (MetalHolding) Kind() HoldingKind { return HoldingKindMetal }

// HasKarat reports whether purity is expressed in karats.
func (h MetalHolding) HasKarat() bool { return h.Karat != 0 }

// MonetaryHolding is a value directly denominated in a currency.
type MonetaryHolding struct {
	Value    decimal.Decimal
	Currency string
}

// Kind implements Holding.
func (MonetaryHolding) Kind() HoldingKind { return HoldingKindMonetary }

// ExpectedHoldingKind returns the holding variant required by a category.
func ExpectedHoldingKind(category AssetCategory) HoldingKind {
	if category.IsMetal() {
		return HoldingKindMetal
	}
	return HoldingKindMonetary
}

// Asset represents a unit of wealth owned by a user.
type Asset struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Description     string
	Category        AssetCategory
	Subcategory     string
	Usage           AssetUsage
	Holding         Holding
	AcquisitionDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time // Soft-delete support
}

// NewAsset creates a new Asset entity.
func NewAsset(userID uuid.UUID, name string, category AssetCategory, usage AssetUsage, holding Holding) *Asset {
	now := time.Now().UTC()

	return &Asset{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Category:  category,
		Usage:     usage,
		Holding:   holding,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Metal returns the metal holding of the asset, if it has one.
func (a *Asset) Metal() (MetalHolding, bool) {
	h, ok := a.Holding.(MetalHolding)
	return h, ok
}

// Monetary returns the monetary holding of the asset, if it has one.
func (a *Asset) Monetary() (MonetaryHolding, bool) {
	h, ok := a.Holding.(MonetaryHolding)
	return h, ok
}
