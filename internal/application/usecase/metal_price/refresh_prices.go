// Package metalprice contains metal price use cases.
package metalprice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

// RefreshPricesOutput represents the quotes recorded by a refresh.
type RefreshPricesOutput struct {
	Quotes []*entity.MetalPriceQuote
	Failed []entity.Metal
}

// RefreshPricesUseCase fetches current metal prices from the provider and records a
// fine quote plus derived standard quotes for each metal.
type RefreshPricesUseCase struct {
	provider  adapter.MetalPriceProvider
	priceRepo adapter.MetalPriceRepository
}

// NewRefreshPricesUseCase creates a new RefreshPricesUseCase instance.
func NewRefreshPricesUseCase(provider adapter.MetalPriceProvider, priceRepo adapter.MetalPriceRepository) *RefreshPricesUseCase {
	return &RefreshPricesUseCase{
		provider:  provider,
		priceRepo: priceRepo,
	}
}

// Execute performs the refresh. It fails only when no metal could be fetched.
func (uc *RefreshPricesUseCase) Execute(ctx context.Context) (*RefreshPricesOutput, error) {
	out := &RefreshPricesOutput{}
	var lastErr error

	for _, metal := range []entity.Metal{entity.MetalGold, entity.MetalSilver} {
		price, err := uc.provider.FetchMetalPrice(ctx, metal)
		if err != nil {
			slog.Warn("Metal price fetch failed",
				"provider", uc.provider.Name(),
				"metal", metal,
				"error", err,
			)
			out.Failed = append(out.Failed, metal)
			lastErr = err
			continue
		}
		if !price.PricePerGram.IsPositive() {
			slog.Warn("Provider returned a non-positive metal price",
				"provider", uc.provider.Name(),
				"metal", metal,
				"price", price.PricePerGram.String(),
			)
			out.Failed = append(out.Failed, metal)
			lastErr = domainerror.ErrInvalidPrice
			continue
		}

		source := price.Source
		if source == "" {
			source = entity.PriceSourceProvider
		}
		currency := price.Currency
		if currency == "" {
			currency = entity.BaseCurrency
		}
		fine := entity.NewMetalPriceQuote(metal, valueobject.FinePurity, price.PricePerGram.Round(2), currency, source)
		if !price.QuotedAt.IsZero() {
			fine.QuotedAt = price.QuotedAt
		}

		out.Quotes = append(out.Quotes, fine)
		out.Quotes = append(out.Quotes, DeriveStandardQuotes(fine)...)
	}

	if len(out.Quotes) == 0 {
		return nil, domainerror.NewMetalPriceError(
			domainerror.ErrCodeProviderUnavailable,
			"metal price provider unavailable",
			fmt.Errorf("%w: %v", domainerror.ErrPriceProviderUnavailable, lastErr),
		)
	}

	if err := uc.priceRepo.CreateBatch(ctx, out.Quotes); err != nil {
		return nil, fmt.Errorf("failed to record metal prices: %w", err)
	}

	slog.Info("Metal prices refreshed",
		"provider", uc.provider.Name(),
		"quotes", len(out.Quotes),
		"failed", len(out.Failed),
	)
	return out, nil
}
