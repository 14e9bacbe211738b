// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// MetalPriceQuoteModel represents the metal_price_quotes table in the database.
// Rows are never updated; the newest row per metal and purity is in effect.
type MetalPriceQuoteModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Metal        string          `gorm:"type:varchar(10);not null;index:idx_metal_purity_quoted,priority:1"`
	Purity       decimal.Decimal `gorm:"type:decimal(5,3);not null;index:idx_metal_purity_quoted,priority:2"`
	PricePerGram decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	Currency     string          `gorm:"type:varchar(3);not null"`
	Source       string          `gorm:"type:varchar(20);not null"`
	UpdatedBy    *uuid.UUID      `gorm:"type:uuid"`
	QuotedAt     time.Time       `gorm:"not null;index:idx_metal_purity_quoted,priority:3"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the MetalPriceQuoteModel.
func (MetalPriceQuoteModel) TableName() string {
	return "metal_price_quotes"
}

// ToEntity converts a MetalPriceQuoteModel to a domain MetalPriceQuote entity.
func (m *MetalPriceQuoteModel) ToEntity() *entity.MetalPriceQuote {
	return &entity.MetalPriceQuote{
		ID:           m.ID,
		Metal:        entity.Metal(m.Metal),
		Purity:       m.Purity,
		PricePerGram: m.PricePerGram,
		Currency:     m.Currency,
		Source:       entity.PriceSource(m.Source),
		UpdatedBy:    m.UpdatedBy,
		QuotedAt:     m.QuotedAt,
		CreatedAt:    m.CreatedAt,
	}
}

// MetalPriceQuoteFromEntity creates a MetalPriceQuoteModel from a domain MetalPriceQuote entity.
func MetalPriceQuoteFromEntity(quote *entity.MetalPriceQuote) *MetalPriceQuoteModel {
	return &MetalPriceQuoteModel{
		ID:           quote.ID,
		Metal:        string(quote.Metal),
		Purity:       quote.Purity,
		PricePerGram: quote.PricePerGram,
		Currency:     quote.Currency,
		Source:       string(quote.Source),
		UpdatedBy:    quote.UpdatedBy,
		QuotedAt:     quote.QuotedAt,
		CreatedAt:    quote.CreatedAt,
	}
}
