// Package metalprice contains metal price use cases.
package metalprice

import (
	"context"
	"fmt"
	"sort"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// ListPricesOutput represents the latest quotes per metal and purity.
type ListPricesOutput struct {
	Quotes   []*entity.MetalPriceQuote
	Snapshot entity.PriceSnapshot
}

// ListPricesUseCase returns the latest quotes and the snapshot in effect.
type ListPricesUseCase struct {
	priceRepo adapter.MetalPriceRepository
	prices    adapter.PriceReader
}

// NewListPricesUseCase creates a new ListPricesUseCase instance.
func NewListPricesUseCase(priceRepo adapter.MetalPriceRepository, prices adapter.PriceReader) *ListPricesUseCase {
	return &ListPricesUseCase{
		priceRepo: priceRepo,
		prices:    prices,
	}
}

// Execute lists the prices.
func (uc *ListPricesUseCase) Execute(ctx context.Context) (*ListPricesOutput, error) {
	quotes, err := uc.priceRepo.FindLatestAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list metal prices: %w", err)
	}

	snapshot, err := uc.prices.CurrentPrices(ctx)
	if err != nil {
		return nil, err
	}

	// Gold first, then by descending purity.
	sort.SliceStable(quotes, func(i, j int) bool {
		if quotes[i].Metal != quotes[j].Metal {
			return quotes[i].Metal == entity.MetalGold
		}
		return quotes[i].Purity.GreaterThan(quotes[j].Purity)
	})

	return &ListPricesOutput{
		Quotes:   quotes,
		Snapshot: snapshot,
	}, nil
}
