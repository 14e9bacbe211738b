package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of a Zakat payment.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPlanned PaymentStatus = "planned"
)

// IsValid reports whether the status is known.
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPaid || s == PaymentStatusPending || s == PaymentStatusPlanned
}

// ZakatPayment records money paid (or planned) against a Zakat obligation.
type ZakatPayment struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CalculationID *uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	PaidOn        time.Time
	Status        PaymentStatus
	Method        string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewZakatPayment creates a new ZakatPayment entity.
func NewZakatPayment(userID uuid.UUID, amount decimal.Decimal, currency string, paidOn time.Time, status PaymentStatus, method string) *ZakatPayment {
	now := time.Now().UTC()

	return &ZakatPayment{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    amount,
		Currency:  currency,
		PaidOn:    paidOn,
		Status:    status,
		Method:    method,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
