// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// ExchangeRateProvider fetches a live exchange-rate table.
type ExchangeRateProvider interface {
	// FetchExchangeRates returns rates as units per one base-currency unit.
	FetchExchangeRates(ctx context.Context) (*entity.ExchangeRateTable, error)
}

// MetalPrice is a per-gram fine-metal price returned by a provider.
type MetalPrice struct {
	Metal        entity.Metal
	PricePerGram decimal.Decimal
	Currency     string
	QuotedAt     time.Time
	Source       entity.PriceSource
}

// MetalPriceProvider fetches the current market price of a metal.
type MetalPriceProvider interface {
	// FetchMetalPrice returns the price of one gram of fine (24K / .999) metal.
	FetchMetalPrice(ctx context.Context, metal entity.Metal) (*MetalPrice, error)

	// Name identifies the provider in logs.
	Name() string
}

// PriceReader returns the fine-metal quotes in effect for each metal.
type PriceReader interface {
	CurrentPrices(ctx context.Context) (entity.PriceSnapshot, error)
}
