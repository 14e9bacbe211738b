package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	metalprice "github.com/zakat-manager/backend/internal/application/usecase/metal_price"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
)

// metalSymbols maps metals to their ISO 4217 commodity codes.
var metalSymbols = map[entity.Metal]string{
	entity.MetalGold:   "XAU",
	entity.MetalSilver: "XAG",
}

// goldAPIResponse is the subset of a GoldAPI quote document this service reads.
type goldAPIResponse struct {
	Metal         string          `json:"metal"`
	Currency      string          `json:"currency"`
	Timestamp     int64           `json:"timestamp"`
	Price         decimal.Decimal `json:"price"`
	PriceGram24K  decimal.Decimal `json:"price_gram_24k"`
	ErrorResponse string          `json:"error"`
}

// goldAPIProvider implements adapter.MetalPriceProvider over a GoldAPI-style endpoint.
type goldAPIProvider struct {
	client   *providerClient
	baseURL  string
	apiKey   string
	currency string
}

// NewGoldAPIProvider creates a metal price provider reading
// {baseURL}/api/{XAU|XAG}/{currency}.
func NewGoldAPIProvider(baseURL, apiKey, currency string, config ProviderClientConfig) adapter.MetalPriceProvider {
	if currency == "" {
		currency = entity.BaseCurrency
	}
	return &goldAPIProvider{
		client:   newProviderClient(config),
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		currency: strings.ToUpper(currency),
	}
}

// Name identifies the provider in logs.
func (p *goldAPIProvider) Name() string {
	return "goldapi"
}

// FetchMetalPrice fetches the per-gram 24K price of a metal.
func (p *goldAPIProvider) FetchMetalPrice(ctx context.Context, metal entity.Metal) (*adapter.MetalPrice, error) {
	symbol, ok := metalSymbols[metal]
	if !ok {
		return nil, domainerror.ErrInvalidMetal
	}

	url := fmt.Sprintf("%s/api/%s/%s", p.baseURL, symbol, p.currency)
	headers := map[string]string{"x-access-token": p.apiKey}

	var body goldAPIResponse
	if err := p.client.getJSON(ctx, url, headers, &body); err != nil {
		return nil, fmt.Errorf("goldapi %s: %w", symbol, err)
	}
	if body.ErrorResponse != "" {
		return nil, fmt.Errorf("goldapi %s: %s", symbol, body.ErrorResponse)
	}
	if !body.PriceGram24K.IsPositive() {
		return nil, fmt.Errorf("goldapi %s: %w", symbol, domainerror.ErrInvalidPrice)
	}

	currency := strings.ToUpper(body.Currency)
	if currency == "" {
		currency = p.currency
	}
	quotedAt := time.Now().UTC()
	if body.Timestamp > 0 {
		quotedAt = time.Unix(body.Timestamp, 0).UTC()
	}

	return &adapter.MetalPrice{
		Metal:        metal,
		PricePerGram: body.PriceGram24K,
		Currency:     currency,
		QuotedAt:     quotedAt,
		Source:       entity.PriceSourceProvider,
	}, nil
}

// staticPriceProvider implements adapter.MetalPriceProvider with fixed prices.
type staticPriceProvider struct {
	prices map[entity.Metal]decimal.Decimal
}

// NewStaticPriceProvider creates a provider returning the default USD prices.
func NewStaticPriceProvider() adapter.MetalPriceProvider {
	return &staticPriceProvider{
		prices: map[entity.Metal]decimal.Decimal{
			entity.MetalGold:   metalprice.DefaultGoldPrice,
			entity.MetalSilver: metalprice.DefaultSilverPrice,
		},
	}
}

// Name identifies the provider in logs.
func (p *staticPriceProvider) Name() string {
	return "static"
}

// FetchMetalPrice returns the fixed price of a metal.
func (p *staticPriceProvider) FetchMetalPrice(ctx context.Context, metal entity.Metal) (*adapter.MetalPrice, error) {
	price, ok := p.prices[metal]
	if !ok {
		return nil, domainerror.ErrInvalidMetal
	}
	return &adapter.MetalPrice{
		Metal:        metal,
		PricePerGram: price,
		Currency:     entity.BaseCurrency,
		QuotedAt:     time.Now().UTC(),
		Source:       entity.PriceSourceDefault,
	}, nil
}
