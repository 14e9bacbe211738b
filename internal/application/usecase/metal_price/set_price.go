// Package metalprice contains metal price use cases.
package metalprice

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// SetPriceInput represents a manual price entry.
type SetPriceInput struct {
	UserID       uuid.UUID
	Metal        entity.Metal
	Karat        *int             // Optional, gold only
	Purity       *decimal.Decimal // Optional, defaults to fine
	PricePerGram decimal.Decimal
	Currency     string
	// DeriveStandards also records quotes for every standard purity when the entry
	// is a fine quote.
	DeriveStandards bool
}

// SetPriceOutput represents the recorded quotes.
type SetPriceOutput struct {
	Quote   *entity.MetalPriceQuote
	Derived []*entity.MetalPriceQuote
}

// SetPriceUseCase records a manual metal price.
type SetPriceUseCase struct {
	priceRepo       adapter.MetalPriceRepository
	defaultCurrency string
}

// NewSetPriceUseCase creates a new SetPriceUseCase instance.
func NewSetPriceUseCase(priceRepo adapter.MetalPriceRepository, defaultCurrency string) *SetPriceUseCase {
	return &SetPriceUseCase{
		priceRepo:       priceRepo,
		defaultCurrency: defaultCurrency,
	}
}

// Execute validates and records the price.
func (uc *SetPriceUseCase) Execute(ctx context.Context, input SetPriceInput) (*SetPriceOutput, error) {
	if !input.Metal.IsValid() {
		return nil, domainerror.NewMetalPriceError(
			domainerror.ErrCodeInvalidMetal,
			"metal must be 'gold' or 'silver'",
			domainerror.ErrInvalidMetal,
		)
	}

	if input.PricePerGram.IsNegative() {
		return nil, domainerror.NewMetalPriceError(
			domainerror.ErrCodeInvalidPrice,
			"price per gram must not be negative",
			domainerror.ErrInvalidPrice,
		)
	}

	purity, err := resolveQuotePurity(input.Metal, input.Karat, input.Purity)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = uc.defaultCurrency
	}
	if !currencyCodePattern.MatchString(currency) {
		return nil, domainerror.NewMetalPriceError(
			domainerror.ErrCodeInvalidQuoteCurrency,
			"currency must be a three-letter code",
			domainerror.ErrInvalidPrice,
		)
	}

	quote := entity.NewMetalPriceQuote(input.Metal, purity, input.PricePerGram, currency, entity.PriceSourceManual)
	quote.UpdatedBy = &input.UserID

	quotes := []*entity.MetalPriceQuote{quote}
	var derived []*entity.MetalPriceQuote
	if input.DeriveStandards && purity.Equal(valueobject.FinePurity) {
		derived = DeriveStandardQuotes(quote)
		quotes = append(quotes, derived...)
	}

	if err := uc.priceRepo.CreateBatch(ctx, quotes); err != nil {
		return nil, fmt.Errorf("failed to record metal price: %w", err)
	}

	return &SetPriceOutput{
		Quote:   quote,
		Derived: derived,
	}, nil
}

// resolveQuotePurity accepts a karat, a recognized or explicit fraction, or nothing (fine).
func resolveQuotePurity(metal entity.Metal, karat *int, purity *decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case karat != nil && purity != nil:
		return decimal.Zero, invalidQuotePurity("give either karat or purity, not both")
	case karat != nil:
		if metal != entity.MetalGold {
			return decimal.Zero, invalidQuotePurity("karat applies to gold only")
		}
		p, ok := valueobject.PurityForKarat(*karat)
		if !ok {
			return decimal.Zero, invalidQuotePurity("karat must be one of 24, 22, 21, 18, 14, 10, 9")
		}
		return p, nil
	case purity != nil:
		if !valueobject.IsValidPurityFraction(*purity) {
			return decimal.Zero, invalidQuotePurity("purity must be greater than 0 and at most 1")
		}
		return *purity, nil
	default:
		return valueobject.FinePurity, nil
	}
}

func invalidQuotePurity(msg string) error {
	return domainerror.NewMetalPriceError(
		domainerror.ErrCodeInvalidQuotePurity,
		msg,
		domainerror.ErrInvalidPrice,
	)
}

// DeriveStandardQuotes scales a fine quote to every other standard purity of its
// metal: price × purity / 0.999, rounded to cents.
func DeriveStandardQuotes(fine *entity.MetalPriceQuote) []*entity.MetalPriceQuote {
	standards := valueobject.StandardsFor(fine.Metal)
	derived := make([]*entity.MetalPriceQuote, 0, len(standards))

	for _, std := range standards {
		if std.Purity.Equal(valueobject.FinePurity) {
			continue
		}
		price := fine.PricePerGram.Mul(std.Purity).Div(valueobject.FinePurity).Round(2)
		q := entity.NewMetalPriceQuote(fine.Metal, std.Purity, price, fine.Currency, fine.Source)
		q.UpdatedBy = fine.UpdatedBy
		q.QuotedAt = fine.QuotedAt
		derived = append(derived, q)
	}

	return derived
}
