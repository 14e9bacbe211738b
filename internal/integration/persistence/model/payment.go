// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// ZakatPaymentModel represents the zakat_payments table in the database.
type ZakatPaymentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CalculationID *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	PaidOn        datatypes.Date  `gorm:"not null;index"`
	Status        string          `gorm:"type:varchar(10);not null;default:'paid'"`
	Method        string          `gorm:"type:varchar(50)"`
	Notes         string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Calculation *ZakatCalculationModel `gorm:"foreignKey:CalculationID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for the ZakatPaymentModel.
func (ZakatPaymentModel) TableName() string {
	return "zakat_payments"
}

// ToEntity converts a ZakatPaymentModel to a domain ZakatPayment entity.
func (m *ZakatPaymentModel) ToEntity() *entity.ZakatPayment {
	return &entity.ZakatPayment{
		ID:            m.ID,
		UserID:        m.UserID,
		CalculationID: m.CalculationID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		PaidOn:        time.Time(m.PaidOn),
		Status:        entity.PaymentStatus(m.Status),
		Method:        m.Method,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ZakatPaymentFromEntity creates a ZakatPaymentModel from a domain ZakatPayment entity.
func ZakatPaymentFromEntity(payment *entity.ZakatPayment) *ZakatPaymentModel {
	return &ZakatPaymentModel{
		ID:            payment.ID,
		UserID:        payment.UserID,
		CalculationID: payment.CalculationID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		PaidOn:        datatypes.Date(payment.PaidOn),
		Status:        string(payment.Status),
		Method:        payment.Method,
		Notes:         payment.Notes,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}
