// Package cache implements the exchange-rate cache backends.
package cache

import (
	"context"
	"maps"
	"sync/atomic"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// memoryRateCache keeps the table in process memory. Set swaps the whole table
// atomically, so readers see either the old or the new table.
type memoryRateCache struct {
	table atomic.Pointer[entity.ExchangeRateTable]
}

// NewMemoryRateCache creates a new in-process rate cache.
func NewMemoryRateCache() adapter.RateCache {
	return &memoryRateCache{}
}

// Get returns the cached table, or nil when nothing is cached.
func (c *memoryRateCache) Get(ctx context.Context) (*entity.ExchangeRateTable, error) {
	return cloneTable(c.table.Load()), nil
}

// Set replaces the cached table.
func (c *memoryRateCache) Set(ctx context.Context, table *entity.ExchangeRateTable) error {
	c.table.Store(cloneTable(table))
	return nil
}

// cloneTable copies the rates map so callers cannot mutate the cached table.
func cloneTable(table *entity.ExchangeRateTable) *entity.ExchangeRateTable {
	if table == nil {
		return nil
	}
	clone := *table
	clone.Rates = maps.Clone(table.Rates)
	return &clone
}
