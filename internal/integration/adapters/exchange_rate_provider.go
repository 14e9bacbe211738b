package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// ErrEmptyRates is returned when the provider answers without any rates.
var ErrEmptyRates = errors.New("provider returned no rates")

// exchangeRateAPIResponse is the exchangerate-api.com v4 "latest" document.
type exchangeRateAPIResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// exchangeRateProvider implements adapter.ExchangeRateProvider over exchangerate-api.com.
type exchangeRateProvider struct {
	client *providerClient
	url    string
	now    func() time.Time
}

// NewExchangeRateProvider creates a provider reading the "latest" table at url,
// e.g. https://api.exchangerate-api.com/v4/latest/USD.
func NewExchangeRateProvider(url string, config ProviderClientConfig) adapter.ExchangeRateProvider {
	return &exchangeRateProvider{
		client: newProviderClient(config),
		url:    url,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// FetchExchangeRates fetches the latest table.
func (p *exchangeRateProvider) FetchExchangeRates(ctx context.Context) (*entity.ExchangeRateTable, error) {
	var body exchangeRateAPIResponse
	if err := p.client.getJSON(ctx, p.url, nil, &body); err != nil {
		return nil, fmt.Errorf("exchange rate provider: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, ErrEmptyRates
	}

	base := strings.ToUpper(body.Base)
	if base == "" {
		base = entity.BaseCurrency
	}
	if base != entity.BaseCurrency {
		return nil, fmt.Errorf("exchange rate provider: unexpected base currency %q", base)
	}

	rates := make(map[string]decimal.Decimal, len(body.Rates))
	for code, rate := range body.Rates {
		rates[strings.ToUpper(code)] = rate
	}

	// TTL is measured from the local fetch, not the provider's publication date.
	return &entity.ExchangeRateTable{
		Base:      base,
		Rates:     rates,
		FetchedAt: p.now(),
		Source:    entity.RateSourceLive,
	}, nil
}
