package dto

import (
	"time"

	"github.com/zakat-manager/backend/internal/application/usecase/currency"
)

// ConvertCurrencyRequest represents the query of a conversion request.
type ConvertCurrencyRequest struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,len=3"`
	To     string `form:"to" binding:"required,len=3"`
}

// RatesResponse represents the exchange-rate table in effect.
type RatesResponse struct {
	Base      string            `json:"base"`
	Rates     map[string]string `json:"rates"`
	Codes     []string          `json:"codes"`
	Source    string            `json:"source"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// ConvertCurrencyResponse represents the result of a conversion.
type ConvertCurrencyResponse struct {
	Amount    string    `json:"amount"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Converted string    `json:"converted"`
	Rate      string    `json:"rate"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ToRatesResponse converts a ListRatesOutput.
func ToRatesResponse(output *currency.ListRatesOutput) RatesResponse {
	rates := make(map[string]string, len(output.Rates))
	for code, rate := range output.Rates {
		rates[code] = rate.String()
	}
	return RatesResponse{
		Base:      output.Base,
		Rates:     rates,
		Codes:     output.Codes,
		Source:    string(output.Source),
		FetchedAt: output.FetchedAt,
	}
}

// ToConvertCurrencyResponse converts a ConvertCurrencyOutput.
func ToConvertCurrencyResponse(output *currency.ConvertCurrencyOutput) ConvertCurrencyResponse {
	return ConvertCurrencyResponse{
		Amount:    output.Amount.String(),
		From:      output.From,
		To:        output.To,
		Converted: Money(output.Converted),
		Rate:      output.Rate.String(),
		Source:    string(output.Source),
		FetchedAt: output.FetchedAt,
	}
}
