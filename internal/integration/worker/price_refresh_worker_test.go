package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	metalprice "github.com/zakat-manager/backend/internal/application/usecase/metal_price"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

type countingRates struct {
	calls atomic.Int32
	err   error
}

func (r *countingRates) Refresh(ctx context.Context) (*entity.ExchangeRateTable, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &entity.ExchangeRateTable{
		Base:  entity.BaseCurrency,
		Rates: map[string]decimal.Decimal{"USD": decimal.NewFromInt(1)},
	}, nil
}

type countingPrices struct {
	calls atomic.Int32
	err   error
}

func (p *countingPrices) Execute(ctx context.Context) (*metalprice.RefreshPricesOutput, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return &metalprice.RefreshPricesOutput{Failed: []entity.Metal{entity.MetalSilver}}, nil
}

func TestPriceRefreshWorker_RefreshNow(t *testing.T) {
	t.Run("refreshes rates and prices", func(t *testing.T) {
		rates := &countingRates{}
		prices := &countingPrices{}
		w := NewPriceRefreshWorker(rates, prices, DefaultConfig())

		w.RefreshNow(context.Background())

		assert.Equal(t, int32(1), rates.calls.Load())
		assert.Equal(t, int32(1), prices.calls.Load())
	})

	t.Run("rate failure does not stop price refresh", func(t *testing.T) {
		rates := &countingRates{err: errors.New("provider down")}
		prices := &countingPrices{}
		w := NewPriceRefreshWorker(rates, prices, DefaultConfig())

		w.RefreshNow(context.Background())

		assert.Equal(t, int32(1), prices.calls.Load())
	})

	t.Run("cancelled context skips prices", func(t *testing.T) {
		rates := &countingRates{}
		prices := &countingPrices{}
		w := NewPriceRefreshWorker(rates, prices, DefaultConfig())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w.RefreshNow(ctx)

		assert.Equal(t, int32(0), prices.calls.Load())
	})
}

func TestPriceRefreshWorker_Start(t *testing.T) {
	rates := &countingRates{}
	prices := &countingPrices{}
	w := NewPriceRefreshWorker(rates, prices, Config{RefreshInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return rates.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
