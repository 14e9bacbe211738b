package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

func sampleTable() *entity.ExchangeRateTable {
	return &entity.ExchangeRateTable{
		Base: entity.BaseCurrency,
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("0.91"),
			"SAR": decimal.RequireFromString("3.75"),
		},
		FetchedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Source:    entity.RateSourceLive,
	}
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestRateCaches_RoundTrip(t *testing.T) {
	_, client := newTestRedis(t)

	caches := map[string]adapter.RateCache{
		"memory": NewMemoryRateCache(),
		"redis":  NewRedisRateCache(client, ""),
	}

	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := c.Get(ctx)
			require.NoError(t, err)
			assert.Nil(t, empty)

			require.NoError(t, c.Set(ctx, sampleTable()))

			got, err := c.Get(ctx)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, entity.BaseCurrency, got.Base)
			assert.Len(t, got.Rates, 3)
			assert.True(t, got.Rates["EUR"].Equal(decimal.RequireFromString("0.91")))
			assert.True(t, got.FetchedAt.Equal(sampleTable().FetchedAt))
		})
	}
}

func TestRateCaches_SetReplacesWholeTable(t *testing.T) {
	_, client := newTestRedis(t)

	caches := map[string]adapter.RateCache{
		"memory": NewMemoryRateCache(),
		"redis":  NewRedisRateCache(client, "rates:test"),
	}

	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, c.Set(ctx, sampleTable()))

			next := &entity.ExchangeRateTable{
				Base: entity.BaseCurrency,
				Rates: map[string]decimal.Decimal{
					"USD": decimal.NewFromInt(1),
					"GBP": decimal.RequireFromString("0.78"),
				},
				FetchedAt: time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
			}
			require.NoError(t, c.Set(ctx, next))

			got, err := c.Get(ctx)
			require.NoError(t, err)
			assert.Len(t, got.Rates, 2)
			_, hasEUR := got.Rates["EUR"]
			assert.False(t, hasEUR)
		})
	}
}

func TestRateCaches_KeepFallbackMarker(t *testing.T) {
	_, client := newTestRedis(t)

	caches := map[string]adapter.RateCache{
		"memory": NewMemoryRateCache(),
		"redis":  NewRedisRateCache(client, ""),
	}

	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			fallback := sampleTable()
			fallback.Source = entity.RateSourceFallback
			require.NoError(t, c.Set(ctx, fallback))

			got, err := c.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, entity.RateSourceFallback, got.Source)

			require.NoError(t, c.Set(ctx, sampleTable()))
			got, err = c.Get(ctx)
			require.NoError(t, err)
			assert.NotEqual(t, entity.RateSourceFallback, got.Source)
		})
	}
}

func TestMemoryRateCache_IsolatesCallers(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryRateCache()

	table := sampleTable()
	require.NoError(t, c.Set(ctx, table))
	table.Rates["EUR"] = decimal.NewFromInt(99)

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, got.Rates["EUR"].Equal(decimal.RequireFromString("0.91")))

	got.Rates["SAR"] = decimal.Zero
	again, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, again.Rates["SAR"].Equal(decimal.RequireFromString("3.75")))
}

func TestRedisRateCache_StoresJSONDocument(t *testing.T) {
	server, client := newTestRedis(t)
	c := NewRedisRateCache(client, "zakat:rates")

	require.NoError(t, c.Set(context.Background(), sampleTable()))

	raw, err := server.Get("zakat:rates")
	require.NoError(t, err)
	assert.Contains(t, raw, `"base":"USD"`)
	assert.Contains(t, raw, `"EUR":"0.91"`)
	assert.False(t, server.Exists("zakat:exchange_rates:USD"))
}

func TestRedisRateCache_Errors(t *testing.T) {
	t.Run("corrupt document", func(t *testing.T) {
		server, client := newTestRedis(t)
		require.NoError(t, server.Set(DefaultRatesKey, "not-json"))

		_, err := NewRedisRateCache(client, "").Get(context.Background())
		assert.Error(t, err)
	})

	t.Run("server down", func(t *testing.T) {
		server, client := newTestRedis(t)
		server.Close()

		_, err := NewRedisRateCache(client, "").Get(context.Background())
		assert.Error(t, err)
	})
}
