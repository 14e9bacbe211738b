// Package payment contains Zakat payment use cases.
package payment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// CreatePaymentInput represents the input for recording a payment.
type CreatePaymentInput struct {
	UserID        uuid.UUID
	CalculationID *uuid.UUID
	Amount        decimal.Decimal
	Currency      string               // Optional, defaults to the calculation or configured currency
	PaidOn        *time.Time           // Optional, defaults to today
	Status        entity.PaymentStatus // Optional, defaults to paid
	Method        string
	Notes         string
}

// CreatePaymentOutput represents the output of recording a payment.
type CreatePaymentOutput struct {
	Payment *entity.ZakatPayment
}

// CreatePaymentUseCase records a payment against a user's Zakat obligation.
type CreatePaymentUseCase struct {
	paymentRepo     adapter.PaymentRepository
	calcRepo        adapter.CalculationRepository
	defaultCurrency string
}

// NewCreatePaymentUseCase creates a new CreatePaymentUseCase instance.
func NewCreatePaymentUseCase(paymentRepo adapter.PaymentRepository, calcRepo adapter.CalculationRepository, defaultCurrency string) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		paymentRepo:     paymentRepo,
		calcRepo:        calcRepo,
		defaultCurrency: defaultCurrency,
	}
}

// Execute validates and records the payment.
func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = entity.PaymentStatusPaid
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	paidOn := now
	if input.PaidOn != nil {
		paidOn = input.PaidOn.UTC()
	}
	if err := validatePaidOn(status, paidOn, now); err != nil {
		return nil, err
	}

	currency := input.Currency
	if input.CalculationID != nil {
		calc, err := findLinkedCalculation(ctx, uc.calcRepo, *input.CalculationID, input.UserID)
		if err != nil {
			return nil, err
		}
		if currency == "" {
			currency = calc.Currency
		}
	}
	if currency == "" {
		currency = uc.defaultCurrency
	}
	currency, err := validateCurrency(currency)
	if err != nil {
		return nil, err
	}

	payment := entity.NewZakatPayment(input.UserID, input.Amount.Round(2), currency, paidOn, status, strings.TrimSpace(input.Method))
	payment.CalculationID = input.CalculationID
	payment.Notes = strings.TrimSpace(input.Notes)

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, wrapRepoError("create", err)
	}

	return &CreatePaymentOutput{
		Payment: payment,
	}, nil
}
