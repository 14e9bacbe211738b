// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// AssetModel represents the assets table in the database.
// Metal columns are set for gold and silver, monetary columns for every other category.
type AssetModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name            string           `gorm:"type:varchar(100);not null"`
	Description     string           `gorm:"type:text"`
	Category        string           `gorm:"type:varchar(20);not null;index"`
	Subcategory     string           `gorm:"type:varchar(50)"`
	Usage           string           `gorm:"type:varchar(20);not null;default:'investment'"`
	HoldingKind     string           `gorm:"type:varchar(10);not null"`
	WeightGrams     *decimal.Decimal `gorm:"type:decimal(15,4)"`
	Karat           *int             `gorm:"type:integer"`
	PurityFraction  *decimal.Decimal `gorm:"type:decimal(10,8)"`
	Value           *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Currency        string           `gorm:"type:varchar(3)"`
	AcquisitionDate *time.Time       `gorm:"type:date"`
	CreatedAt       time.Time        `gorm:"not null"`
	UpdatedAt       time.Time        `gorm:"not null"`
	DeletedAt       gorm.DeletedAt   `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the AssetModel.
func (AssetModel) TableName() string {
	return "assets"
}

// ToEntity converts an AssetModel to a domain Asset entity.
func (m *AssetModel) ToEntity() *entity.Asset {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Asset{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Description:     m.Description,
		Category:        entity.AssetCategory(m.Category),
		Subcategory:     m.Subcategory,
		Usage:           entity.AssetUsage(m.Usage),
		Holding:         m.holding(),
		AcquisitionDate: m.AcquisitionDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *AssetModel) holding() entity.Holding {
	switch entity.HoldingKind(m.HoldingKind) {
	case entity.HoldingKindMetal:
		h := entity.MetalHolding{}
		if m.WeightGrams != nil {
			h.WeightGrams = *m.WeightGrams
		}
		if m.Karat != nil {
			h.Karat = *m.Karat
		}
		if m.PurityFraction != nil {
			h.PurityFraction = *m.PurityFraction
		}
		return h
	case entity.HoldingKindMonetary:
		h := entity.MonetaryHolding{Currency: m.Currency}
		if m.Value != nil {
			h.Value = *m.Value
		}
		return h
	default:
		return nil
	}
}

// AssetFromEntity creates an AssetModel from a domain Asset entity.
func AssetFromEntity(asset *entity.Asset) *AssetModel {
	var deletedAt gorm.DeletedAt
	if asset.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *asset.DeletedAt, Valid: true}
	}

	m := &AssetModel{
		ID:              asset.ID,
		UserID:          asset.UserID,
		Name:            asset.Name,
		Description:     asset.Description,
		Category:        string(asset.Category),
		Subcategory:     asset.Subcategory,
		Usage:           string(asset.Usage),
		AcquisitionDate: asset.AcquisitionDate,
		CreatedAt:       asset.CreatedAt,
		UpdatedAt:       asset.UpdatedAt,
		DeletedAt:       deletedAt,
	}

	switch h := asset.Holding.(type) {
	case entity.MetalHolding:
		m.HoldingKind = string(entity.HoldingKindMetal)
		weight := h.WeightGrams
		m.WeightGrams = &weight
		if h.HasKarat() {
			karat := h.Karat
			m.Karat = &karat
		} else {
			purity := h.PurityFraction
			m.PurityFraction = &purity
		}
	case entity.MonetaryHolding:
		m.HoldingKind = string(entity.HoldingKindMonetary)
		value := h.Value
		m.Value = &value
		m.Currency = h.Currency
	}

	return m
}
