// Package worker provides background jobs.
package worker

import (
	"context"
	"log/slog"
	"time"

	metalprice "github.com/zakat-manager/backend/internal/application/usecase/metal_price"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// RateRefresher refreshes the exchange-rate cache.
type RateRefresher interface {
	Refresh(ctx context.Context) (*entity.ExchangeRateTable, error)
}

// PriceRefresher records current metal prices.
type PriceRefresher interface {
	Execute(ctx context.Context) (*metalprice.RefreshPricesOutput, error)
}

// PriceRefreshWorker periodically warms the exchange-rate cache and records
// provider metal quotes.
type PriceRefreshWorker struct {
	rates    RateRefresher
	prices   PriceRefresher
	interval time.Duration
}

// Config holds configuration for the price refresh worker.
type Config struct {
	RefreshInterval time.Duration
}

// DefaultConfig returns the default worker configuration.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: time.Hour,
	}
}

// NewPriceRefreshWorker creates a new price refresh worker.
func NewPriceRefreshWorker(rates RateRefresher, prices PriceRefresher, config Config) *PriceRefreshWorker {
	interval := config.RefreshInterval
	if interval <= 0 {
		interval = DefaultConfig().RefreshInterval
	}
	return &PriceRefreshWorker{
		rates:    rates,
		prices:   prices,
		interval: interval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *PriceRefreshWorker) Start(ctx context.Context) {
	slog.Info("Price refresh worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Refresh immediately on start, then on ticker
	w.RefreshNow(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Price refresh worker shutting down")
			return
		case <-ticker.C:
			w.RefreshNow(ctx)
		}
	}
}

// RefreshNow runs one refresh cycle. Failures are logged; the next tick retries.
func (w *PriceRefreshWorker) RefreshNow(ctx context.Context) {
	if w.rates != nil {
		if table, err := w.rates.Refresh(ctx); err != nil {
			slog.Warn("Scheduled exchange rate refresh failed", "error", err)
		} else {
			slog.Debug("Scheduled exchange rate refresh done", "currencies", len(table.Rates))
		}
	}

	if ctx.Err() != nil {
		return
	}

	if w.prices != nil {
		out, err := w.prices.Execute(ctx)
		if err != nil {
			slog.Warn("Scheduled metal price refresh failed", "error", err)
			return
		}
		if len(out.Failed) > 0 {
			slog.Warn("Scheduled metal price refresh incomplete", "failed", out.Failed)
		}
	}
}
