// Package payment contains Zakat payment use cases.
package payment

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	return nil
}

func validateStatus(status entity.PaymentStatus) error {
	if !status.IsValid() {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentStatus,
			"status must be one of paid, pending, planned",
			domainerror.ErrInvalidPaymentStatus,
		)
	}
	return nil
}

// validatePaidOn rejects paid payments dated in the future. Planned and pending
// payments may be scheduled ahead.
func validatePaidOn(status entity.PaymentStatus, paidOn, now time.Time) error {
	if status == entity.PaymentStatusPaid && paidOn.After(now.Add(24*time.Hour)) {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentDate,
			"a paid payment cannot be dated in the future",
			domainerror.ErrInvalidPaymentStatus,
		)
	}
	return nil
}

func validateCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyCodePattern.MatchString(currency) {
		return "", domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentCurrency,
			"currency must be a three-letter code",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	return currency, nil
}

// findOwnedPayment loads a payment and checks that it belongs to the user.
func findOwnedPayment(ctx context.Context, repo adapter.PaymentRepository, paymentID, userID uuid.UUID) (*entity.ZakatPayment, error) {
	payment, err := repo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrPaymentNotFound) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodePaymentNotFound,
				"payment not found",
				domainerror.ErrPaymentNotFound,
			)
		}
		return nil, wrapRepoError("find", err)
	}

	if payment.UserID != userID {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeUnauthorizedPayment,
			"not authorized to access this payment",
			domainerror.ErrUnauthorizedPaymentAccess,
		)
	}

	return payment, nil
}

// findLinkedCalculation checks that a payment may reference the calculation.
func findLinkedCalculation(ctx context.Context, repo adapter.CalculationRepository, calculationID, userID uuid.UUID) (*entity.ZakatCalculation, error) {
	calc, err := repo.FindByID(ctx, calculationID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCalculationNotFound) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodePaymentCalculationLink,
				"linked calculation not found",
				domainerror.ErrCalculationNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find calculation: %w", err)
	}
	if calc.UserID != userID {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodePaymentCalculationLink,
			"linked calculation not found",
			domainerror.ErrUnauthorizedCalculationAccess,
		)
	}
	return calc, nil
}

func wrapRepoError(op string, err error) error {
	return fmt.Errorf("failed to %s payment: %w", op, err)
}
