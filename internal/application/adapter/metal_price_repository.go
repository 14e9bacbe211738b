// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"


	"github.com/zakat-manager/backend/internal/domain/entity"
)

// MetalPriceRepository stores append-only metal price quotes.
type MetalPriceRepository interface {
	// Create appends a quote.
	Create(ctx context.Context, quote *entity.MetalPriceQuote) error

	// CreateBatch appends several quotes in one transaction.
	CreateBatch(ctx context.Context, quotes []*entity.MetalPriceQuote) error

	// FindLatestAll returns the most recent quote for every metal and purity.
	FindLatestAll(ctx context.Context) ([]*entity.MetalPriceQuote, error)

	// ListHistory returns quotes for a metal, newest first.
	ListHistory(ctx context.Context, metal entity.Metal, limit int) ([]*entity.MetalPriceQuote, error)
}
