// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// RateCache stores the last valid exchange-rate table.
// Implementations replace the whole table on Set; readers never see a partial table.
type RateCache interface {
	// Get returns the cached table, or nil when nothing is cached.
	Get(ctx context.Context) (*entity.ExchangeRateTable, error)

	// Set replaces the cached table.
	Set(ctx context.Context, table *entity.ExchangeRateTable) error
}

// RateReader returns the exchange-rate table in effect. The table is never empty.
type RateReader interface {
	GetRates(ctx context.Context) *entity.ExchangeRateTable
}
