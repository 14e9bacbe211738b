// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// BreakdownRecord is the stored form of one breakdown entry.
type BreakdownRecord struct {
	AssetID     uuid.UUID       `json:"asset_id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Eligible    bool            `json:"eligible"`
	Reason      string          `json:"reason"`
	ZakatAmount decimal.Decimal `json:"zakat_amount"`
	Warning     *WarningRecord  `json:"warning,omitempty"`
}

// WarningRecord is the stored form of a calculation warning.
type WarningRecord struct {
	AssetID uuid.UUID `json:"asset_id"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// ZakatCalculationModel represents the zakat_calculations table in the database.
// The breakdown is stored with the row so later asset edits never change it.
type ZakatCalculationModel struct {
	ID                  uuid.UUID                             `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID                             `gorm:"type:uuid;not null;index"`
	Currency            string                                `gorm:"type:varchar(3);not null"`
	NisabStandard       string                                `gorm:"type:varchar(10);not null"`
	TotalAssetsValue    decimal.Decimal                       `gorm:"type:decimal(18,2);not null"`
	EligibleAssetsValue decimal.Decimal                       `gorm:"type:decimal(18,2);not null"`
	LiabilitiesValue    decimal.Decimal                       `gorm:"type:decimal(18,2);not null;default:0"`
	NetZakatableValue   decimal.Decimal                       `gorm:"type:decimal(18,2);not null"`
	NisabThresholdValue decimal.Decimal                       `gorm:"type:decimal(18,2);not null"`
	MeetsNisab          bool                                  `gorm:"not null"`
	ZakatAmount         decimal.Decimal                       `gorm:"type:decimal(18,2);not null"`
	AssetBreakdown      datatypes.JSONType[[]BreakdownRecord] `gorm:"not null"`
	Warnings            datatypes.JSONType[[]WarningRecord]   `gorm:"not null"`
	Notes               string                                `gorm:"type:text"`
	CalculationDate     time.Time                             `gorm:"not null;index"`
	CreatedAt           time.Time                             `gorm:"not null"`
}

// TableName returns the table name for the ZakatCalculationModel.
func (ZakatCalculationModel) TableName() string {
	return "zakat_calculations"
}

// ToEntity converts a ZakatCalculationModel to a domain ZakatCalculation entity.
func (m *ZakatCalculationModel) ToEntity() *entity.ZakatCalculation {
	records := m.AssetBreakdown.Data()
	breakdown := make([]entity.BreakdownEntry, len(records))
	for i, r := range records {
		breakdown[i] = entity.BreakdownEntry{
			AssetID:     r.AssetID,
			Category:    entity.AssetCategory(r.Category),
			Name:        r.Name,
			Value:       r.Value,
			Eligible:    r.Eligible,
			Reason:      entity.EligibilityReason(r.Reason),
			ZakatAmount: r.ZakatAmount,
		}
		if r.Warning != nil {
			w := r.Warning.toEntity()
			breakdown[i].Warning = &w
		}
	}

	stored := m.Warnings.Data()
	warnings := make([]entity.CalculationWarning, len(stored))
	for i, w := range stored {
		warnings[i] = w.toEntity()
	}

	return &entity.ZakatCalculation{
		ID:                  m.ID,
		UserID:              m.UserID,
		Currency:            m.Currency,
		NisabStandard:       entity.NisabStandard(m.NisabStandard),
		TotalAssetsValue:    m.TotalAssetsValue,
		EligibleAssetsValue: m.EligibleAssetsValue,
		LiabilitiesValue:    m.LiabilitiesValue,
		NetZakatableValue:   m.NetZakatableValue,
		NisabThresholdValue: m.NisabThresholdValue,
		MeetsNisab:          m.MeetsNisab,
		ZakatAmount:         m.ZakatAmount,
		AssetBreakdown:      breakdown,
		Warnings:            warnings,
		Notes:               m.Notes,
		CalculationDate:     m.CalculationDate,
		CreatedAt:           m.CreatedAt,
	}
}

// ZakatCalculationFromEntity creates a ZakatCalculationModel from a domain ZakatCalculation entity.
func ZakatCalculationFromEntity(calc *entity.ZakatCalculation) *ZakatCalculationModel {
	records := make([]BreakdownRecord, len(calc.AssetBreakdown))
	for i, e := range calc.AssetBreakdown {
		records[i] = BreakdownRecord{
			AssetID:     e.AssetID,
			Category:    string(e.Category),
			Name:        e.Name,
			Value:       e.Value,
			Eligible:    e.Eligible,
			Reason:      string(e.Reason),
			ZakatAmount: e.ZakatAmount,
		}
		if e.Warning != nil {
			w := warningRecordFromEntity(*e.Warning)
			records[i].Warning = &w
		}
	}

	warnings := make([]WarningRecord, len(calc.Warnings))
	for i, w := range calc.Warnings {
		warnings[i] = warningRecordFromEntity(w)
	}

	return &ZakatCalculationModel{
		ID:                  calc.ID,
		UserID:              calc.UserID,
		Currency:            calc.Currency,
		NisabStandard:       string(calc.NisabStandard),
		TotalAssetsValue:    calc.TotalAssetsValue,
		EligibleAssetsValue: calc.EligibleAssetsValue,
		LiabilitiesValue:    calc.LiabilitiesValue,
		NetZakatableValue:   calc.NetZakatableValue,
		NisabThresholdValue: calc.NisabThresholdValue,
		MeetsNisab:          calc.MeetsNisab,
		ZakatAmount:         calc.ZakatAmount,
		AssetBreakdown:      datatypes.NewJSONType(records),
		Warnings:            datatypes.NewJSONType(warnings),
		Notes:               calc.Notes,
		CalculationDate:     calc.CalculationDate,
		CreatedAt:           calc.CreatedAt,
	}
}

func (w WarningRecord) toEntity() entity.CalculationWarning {
	return entity.CalculationWarning{
		AssetID: w.AssetID,
		Code:    entity.WarningCode(w.Code),
		Message: w.Message,
	}
}

func warningRecordFromEntity(w entity.CalculationWarning) WarningRecord {
	return WarningRecord{
		AssetID: w.AssetID,
		Code:    string(w.Code),
		Message: w.Message,
	}
}
