package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// DefaultRatesKey is the Redis key holding the exchange-rate document.
const DefaultRatesKey = "zakat:exchange_rates:USD"

// rateDocument is the JSON document stored in Redis.
type rateDocument struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
	// Fallback marks the static table stored during a provider outage.
	Fallback bool `json:"fallback,omitempty"`
}

// redisRateCache stores the table as a single JSON document so a write replaces
// every rate at once.
type redisRateCache struct {
	client *redis.Client
	key    string
}

// NewRedisRateCache creates a Redis-backed rate cache.
// The key never expires; staleness is judged from fetched_at by the rate service.
func NewRedisRateCache(client *redis.Client, key string) adapter.RateCache {
	if key == "" {
		key = DefaultRatesKey
	}
	return &redisRateCache{
		client: client,
		key:    key,
	}
}

// Get returns the cached table, or nil when nothing is cached.
func (c *redisRateCache) Get(ctx context.Context) (*entity.ExchangeRateTable, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached rates: %w", err)
	}

	var doc rateDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cached rates: %w", err)
	}

	source := entity.RateSourceCache
	if doc.Fallback {
		source = entity.RateSourceFallback
	}
	return &entity.ExchangeRateTable{
		Base:      doc.Base,
		Rates:     doc.Rates,
		FetchedAt: doc.FetchedAt,
		Source:    source,
	}, nil
}

// Set replaces the cached table.
func (c *redisRateCache) Set(ctx context.Context, table *entity.ExchangeRateTable) error {
	if table == nil {
		return c.client.Del(ctx, c.key).Err()
	}

	raw, err := json.Marshal(rateDocument{
		Base:      table.Base,
		Rates:     table.Rates,
		FetchedAt: table.FetchedAt,
		Fallback:  table.Source == entity.RateSourceFallback,
	})
	if err != nil {
		return fmt.Errorf("failed to encode rates: %w", err)
	}

	if err := c.client.Set(ctx, c.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to cache rates: %w", err)
	}
	return nil
}
