// Package currency contains exchange-rate and conversion use cases.
package currency

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/zakat"
)

// ConvertCurrencyInput represents the input for a currency conversion.
type ConvertCurrencyInput struct {
	Amount decimal.Decimal
	From   string
	To     string
}

// ConvertCurrencyOutput represents the output of a currency conversion.
type ConvertCurrencyOutput struct {
	Amount    decimal.Decimal
	From      string
	To        string
	Converted decimal.Decimal
	Rate      decimal.Decimal
	Source    entity.RateSource
	FetchedAt time.Time
}

// ConvertCurrencyUseCase handles currency conversion.
type ConvertCurrencyUseCase struct {
	rates adapter.RateReader
}

// NewConvertCurrencyUseCase creates a new ConvertCurrencyUseCase instance.
func NewConvertCurrencyUseCase(rates adapter.RateReader) *ConvertCurrencyUseCase {
	return &ConvertCurrencyUseCase{
		rates: rates,
	}
}

// Execute performs the conversion.
func (uc *ConvertCurrencyUseCase) Execute(ctx context.Context, input ConvertCurrencyInput) (*ConvertCurrencyOutput, error) {
	from := zakat.NormalizeCurrency(input.From)
	to := zakat.NormalizeCurrency(input.To)

	if from == "" || to == "" {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeMissingCurrency,
			"from and to currencies are required",
			"",
			domainerror.ErrUnsupportedCurrency,
		)
	}
	if input.Amount.IsNegative() {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeInvalidAmount,
			"amount must not be negative",
			from,
			domainerror.ErrInvalidAmount,
		)
	}

	table := uc.rates.GetRates(ctx)

	converted, err := convertWith(table, input.Amount, from, to)
	if err != nil {
		return nil, err
	}
	rate, err := convertWith(table, decimal.NewFromInt(1), from, to)
	if err != nil {
		return nil, err
	}

	return &ConvertCurrencyOutput{
		Amount:    input.Amount,
		From:      from,
		To:        to,
		Converted: zakat.RoundMoney(converted),
		Rate:      rate.Round(6),
		Source:    table.Source,
		FetchedAt: table.FetchedAt,
	}, nil
}

func convertWith(table *entity.ExchangeRateTable, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return zakat.NewConverter(table).Convert(amount, from, to)
}
