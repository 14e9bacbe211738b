// Package metalprice contains metal price use cases.
package metalprice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

// Default fine prices per gram in USD, used until a quote has been recorded.
var (
	DefaultGoldPrice   = decimal.RequireFromString("65.00")
	DefaultSilverPrice = decimal.RequireFromString("0.85")
)

// DefaultQuote returns the built-in fine quote of a metal.
func DefaultQuote(metal entity.Metal) entity.MetalPriceQuote {
	price := DefaultSilverPrice
	if metal == entity.MetalGold {
		price = DefaultGoldPrice
	}
	return entity.MetalPriceQuote{
		Metal:        metal,
		Purity:       valueobject.FinePurity,
		PricePerGram: price,
		Currency:     entity.BaseCurrency,
		Source:       entity.PriceSourceDefault,
	}
}

// PriceService resolves the fine quote in effect for each metal from the latest
// recorded quote at any purity, else the built-in default.
type PriceService struct {
	priceRepo adapter.MetalPriceRepository
}

// NewPriceService creates a new PriceService instance.
func NewPriceService(priceRepo adapter.MetalPriceRepository) *PriceService {
	return &PriceService{
		priceRepo: priceRepo,
	}
}

// CurrentPrices returns the snapshot used by calculations.
//
// The newest quote of a metal wins whatever its purity and is scaled to fine. A fine
// quote wins a tie, which keeps derived quotes recorded alongside it from feeding
// back. A zero price records that the price is unknown and the default applies.
func (s *PriceService) CurrentPrices(ctx context.Context) (entity.PriceSnapshot, error) {
	quotes, err := s.priceRepo.FindLatestAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load metal prices: %w", err)
	}

	latest := make(map[entity.Metal]*entity.MetalPriceQuote, 2)
	for _, q := range quotes {
		if current, ok := latest[q.Metal]; !ok || newer(q, current) {
			latest[q.Metal] = q
		}
	}

	snapshot := make(entity.PriceSnapshot, 2)
	for _, metal := range []entity.Metal{entity.MetalGold, entity.MetalSilver} {
		quote, ok := latest[metal]
		if !ok || !quote.PricePerGram.IsPositive() || !quote.Purity.IsPositive() {
			slog.Debug("No usable metal price, using default", "metal", metal)
			snapshot[metal] = DefaultQuote(metal)
			continue
		}
		snapshot[metal] = FineQuote(quote)
	}

	return snapshot, nil
}

// FineQuote scales a quote to fine purity: price × 0.999 / purity, rounded to cents.
func FineQuote(q *entity.MetalPriceQuote) entity.MetalPriceQuote {
	fine := *q
	if !q.Purity.Equal(valueobject.FinePurity) {
		fine.PricePerGram = q.PricePerGram.Mul(valueobject.FinePurity).Div(q.Purity).Round(2)
		fine.Purity = valueobject.FinePurity
	}
	return fine
}

func newer(a, b *entity.MetalPriceQuote) bool {
	if !a.QuotedAt.Equal(b.QuotedAt) {
		return a.QuotedAt.After(b.QuotedAt)
	}
	return a.Purity.Equal(valueobject.FinePurity) && !b.Purity.Equal(valueobject.FinePurity)
}
