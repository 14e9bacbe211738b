// Package currency contains exchange-rate and conversion use cases.
package currency

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
)

// DefaultRateTTL is how long a fetched table is served without refreshing.
const DefaultRateTTL = time.Hour

// DefaultFallbackTTL is how long the static table is reused before the provider is
// tried again.
const DefaultFallbackTTL = 5 * time.Minute

// fallbackRates is used when no live or cached table is available.
var fallbackRates = map[string]string{
	"USD": "1",
	"EUR": "0.91",
	"GBP": "0.78",
	"JPY": "150.14",
	"AUD": "1.51",
	"CAD": "1.37",
	"CHF": "0.90",
	"CNY": "7.23",
	"INR": "83.50",
	"SAR": "3.75",
	"AED": "3.67",
	"MYR": "4.65",
	"IDR": "15650",
	"PKR": "278.50",
	"EGP": "30.90",
}

// FallbackTable returns the static rate table.
func FallbackTable() *entity.ExchangeRateTable {
	rates := make(map[string]decimal.Decimal, len(fallbackRates))
	for code, rate := range fallbackRates {
		rates[code] = decimal.RequireFromString(rate)
	}
	return &entity.ExchangeRateTable{
		Base:   entity.BaseCurrency,
		Rates:  rates,
		Source: entity.RateSourceFallback,
	}
}

// RateService serves exchange rates from a cache with a TTL, refreshing from the
// provider when the cache expires.
//
// Concurrent refreshes collapse into one provider call. While a refresh is in
// flight, callers that can be served from an expired table get it immediately.
type RateService struct {
	provider    adapter.ExchangeRateProvider
	cache       adapter.RateCache
	ttl         time.Duration
	fallbackTTL time.Duration
	now         func() time.Time
	group      singleflight.Group
	refreshing atomic.Bool
}

// NewRateService creates a new RateService instance.
func NewRateService(provider adapter.ExchangeRateProvider, cache adapter.RateCache, ttl time.Duration) *RateService {
	if ttl <= 0 {
		ttl = DefaultRateTTL
	}
	return &RateService{
		provider:    provider,
		cache:       cache,
		ttl:         ttl,
		fallbackTTL: DefaultFallbackTTL,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithFallbackTTL sets how long a cached fallback table is reused.
func (s *RateService) WithFallbackTTL(ttl time.Duration) *RateService {
	if ttl > 0 {
		s.fallbackTTL = ttl
	}
	return s
}

// WithClock replaces the clock used for TTL checks.
func (s *RateService) WithClock(now func() time.Time) *RateService {
	s.now = now
	return s
}

// GetRates returns the exchange-rate table in effect: a fresh cached table, else a
// live table, else the stale cached table, else the static fallback table.
//
// The fallback table is cached for a short TTL so an outage does not send every
// request to the provider. It never counts as a stale table.
func (s *RateService) GetRates(ctx context.Context) *entity.ExchangeRateTable {
	cached := s.cached(ctx)
	if cached != nil && cached.Source == entity.RateSourceFallback {
		if cached.Age(s.now()) < s.fallbackTTL {
			return cached
		}
		cached = nil
	}
	if cached != nil && cached.Age(s.now()) < s.ttl {
		return cached.WithSource(entity.RateSourceCache)
	}

	if cached != nil && s.refreshing.Load() {
		return cached.WithSource(entity.RateSourceStale)
	}

	table, err := s.refreshShared(ctx)
	if err == nil {
		return table
	}

	if cached != nil {
		slog.Warn("Exchange rate refresh failed, serving stale rates",
			"fetched_at", cached.FetchedAt,
			"error", err,
		)
		return cached.WithSource(entity.RateSourceStale)
	}

	slog.Warn("Exchange rate refresh failed and no cache exists, using fallback rates",
		"error", err,
		"reuse_for", s.fallbackTTL,
	)
	fallback := FallbackTable()
	fallback.FetchedAt = s.now()
	if s.cache != nil {
		if err := s.cache.Set(ctx, fallback); err != nil {
			slog.Warn("Failed to cache fallback rates", "error", err)
		}
	}
	return fallback
}

// Refresh fetches a live table regardless of the cache age.
func (s *RateService) Refresh(ctx context.Context) (*entity.ExchangeRateTable, error) {
	return s.refreshShared(ctx)
}

// Convert converts an amount using the table in effect.
func (s *RateService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return convertWith(s.GetRates(ctx), amount, from, to)
}

func (s *RateService) refreshShared(ctx context.Context) (*entity.ExchangeRateTable, error) {
	v, err, _ := s.group.Do("rates", func() (interface{}, error) {
		s.refreshing.Store(true)
		defer s.refreshing.Store(false)
		// A refresh serves every waiting caller; one caller's cancellation must not abort it.
		return s.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.ExchangeRateTable), nil
}

func (s *RateService) refresh(ctx context.Context) (*entity.ExchangeRateTable, error) {
	if s.provider == nil {
		return nil, domainerror.ErrRatesUnavailable
	}

	table, err := s.provider.FetchExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}

	table = sanitize(table)
	if table.IsEmpty() {
		return nil, domainerror.ErrRatesUnavailable
	}
	if table.FetchedAt.IsZero() {
		table.FetchedAt = s.now()
	}
	table.Source = entity.RateSourceLive

	if s.cache != nil {
		if err := s.cache.Set(ctx, table); err != nil {
			slog.Warn("Failed to cache exchange rates", "error", err)
		}
	}

	slog.Info("Exchange rates refreshed",
		"currencies", len(table.Rates),
		"fetched_at", table.FetchedAt,
	)
	return table, nil
}

// cached returns the cached table, or nil when there is none or the cache fails.
func (s *RateService) cached(ctx context.Context) *entity.ExchangeRateTable {
	if s.cache == nil {
		return nil
	}
	table, err := s.cache.Get(ctx)
	if err != nil {
		slog.Warn("Failed to read exchange rate cache", "error", err)
		return nil
	}
	if table.IsEmpty() {
		return nil
	}
	return table
}

// sanitize drops non-positive rates and pins the base rate to one.
func sanitize(table *entity.ExchangeRateTable) *entity.ExchangeRateTable {
	if table == nil {
		return nil
	}
	base := table.Base
	if base == "" {
		base = entity.BaseCurrency
	}

	rates := make(map[string]decimal.Decimal, len(table.Rates))
	for code, rate := range table.Rates {
		if !rate.IsPositive() {
			slog.Warn("Dropping invalid exchange rate", "currency", code, "rate", rate.String())
			continue
		}
		rates[code] = rate
	}
	if len(rates) > 0 {
		rates[base] = decimal.NewFromInt(1)
	}

	return &entity.ExchangeRateTable{
		Base:      base,
		Rates:     rates,
		FetchedAt: table.FetchedAt,
		Source:    table.Source,
	}
}
