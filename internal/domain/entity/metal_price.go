package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metal identifies a precious metal with a market price.
type Metal string

const (
	MetalGold   Metal = "gold"
	MetalSilver Metal = "silver"
)

// IsValid reports whether the metal is supported.
func (m Metal) IsValid() bool {
	return m == MetalGold || m == MetalSilver
}

// PriceSource describes where a quote came from.
type PriceSource string

const (
	PriceSourceManual   PriceSource = "manual"
	PriceSourceProvider PriceSource = "provider"
	PriceSourceDefault  PriceSource = "default"
)

// MetalPriceQuote is a per-gram market price for a metal at a given purity.
// Quotes are append-only; the latest quote per metal and purity is authoritative.
type MetalPriceQuote struct {
	ID           uuid.UUID
	Metal        Metal
	Purity       decimal.Decimal
	PricePerGram decimal.Decimal
	Currency     string
	Source       PriceSource
	UpdatedBy    *uuid.UUID
	QuotedAt     time.Time
	CreatedAt    time.Time
}

// NewMetalPriceQuote creates a new MetalPriceQuote entity.
func NewMetalPriceQuote(metal Metal, purity, pricePerGram decimal.Decimal, currency string, source PriceSource) *MetalPriceQuote {
	now := time.Now().UTC()

	return &MetalPriceQuote{
		ID:           uuid.New(),
		Metal:        metal,
		Purity:       purity,
		PricePerGram: pricePerGram,
		Currency:     currency,
		Source:       source,
		QuotedAt:     now,
		CreatedAt:    now,
	}
}

// PriceSnapshot holds the per-gram fine-metal quote in effect for each metal.
// A missing entry means the price is unavailable.
type PriceSnapshot map[Metal]MetalPriceQuote

// Quote returns the quote for a metal.
func (s PriceSnapshot) Quote(metal Metal) (MetalPriceQuote, bool) {
	if s == nil {
		return MetalPriceQuote{}, false
	}
	q, ok := s[metal]
	return q, ok
}
