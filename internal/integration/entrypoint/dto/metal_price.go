package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	metalprice "github.com/zakat-manager/backend/internal/application/usecase/metal_price"
	"github.com/zakat-manager/backend/internal/domain/entity"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

// SetMetalPriceRequest represents the request body for a manual price entry.
type SetMetalPriceRequest struct {
	Metal        string           `json:"metal" binding:"required,oneof=gold silver"`
	Karat        *int             `json:"karat,omitempty"`
	Purity       *decimal.Decimal `json:"purity,omitempty"`
	PricePerGram decimal.Decimal  `json:"price_per_gram"`
	Currency     string           `json:"currency,omitempty"`
	// DeriveStandards defaults to true for fine quotes.
	DeriveStandards *bool `json:"derive_standards,omitempty"`
}

// MetalPriceResponse represents a metal price quote in API responses.
type MetalPriceResponse struct {
	ID           string     `json:"id,omitempty"`
	Metal        string     `json:"metal"`
	Purity       string     `json:"purity"`
	Karat        *int       `json:"karat,omitempty"`
	PricePerGram string     `json:"price_per_gram"`
	Currency     string     `json:"currency"`
	Source       string     `json:"source"`
	QuotedAt     *time.Time `json:"quoted_at,omitempty"`
}

// MetalPriceListResponse represents the current prices.
type MetalPriceListResponse struct {
	// Effective holds the fine quote used by calculations for each metal.
	Effective []MetalPriceResponse `json:"effective"`
	Quotes    []MetalPriceResponse `json:"quotes"`
}

// SetMetalPriceResponse represents the response of a manual price entry.
type SetMetalPriceResponse struct {
	Quote   MetalPriceResponse   `json:"quote"`
	Derived []MetalPriceResponse `json:"derived"`
}

// RefreshPricesResponse represents the response of a provider refresh.
type RefreshPricesResponse struct {
	Quotes []MetalPriceResponse `json:"quotes"`
	Failed []string             `json:"failed"`
}

// PriceHistoryResponse represents the quote history of a metal.
type PriceHistoryResponse struct {
	Metal  string               `json:"metal"`
	Quotes []MetalPriceResponse `json:"quotes"`
}

// PurityResponse represents a recognized purity standard.
type PurityResponse struct {
	Name   string `json:"name"`
	Karat  *int   `json:"karat,omitempty"`
	Purity string `json:"purity"`
}

// PurityListResponse represents the recognized purity standards per metal.
type PurityListResponse struct {
	Gold   []PurityResponse `json:"gold"`
	Silver []PurityResponse `json:"silver"`
}

// ToMetalPriceResponse converts a quote to a MetalPriceResponse DTO.
func ToMetalPriceResponse(q *entity.MetalPriceQuote) MetalPriceResponse {
	response := MetalPriceResponse{
		Metal:        string(q.Metal),
		Purity:       q.Purity.String(),
		PricePerGram: Money(q.PricePerGram),
		Currency:     q.Currency,
		Source:       string(q.Source),
	}
	if q.ID != uuid.Nil {
		response.ID = q.ID.String()
	}
	if q.Metal == entity.MetalGold {
		if karat := valueobject.KaratForPurity(q.Purity); karat != 0 {
			response.Karat = &karat
		}
	}
	if !q.QuotedAt.IsZero() {
		quotedAt := q.QuotedAt
		response.QuotedAt = &quotedAt
	}
	return response
}

// ToMetalPriceResponses converts a list of quotes.
func ToMetalPriceResponses(quotes []*entity.MetalPriceQuote) []MetalPriceResponse {
	responses := make([]MetalPriceResponse, len(quotes))
	for i, q := range quotes {
		responses[i] = ToMetalPriceResponse(q)
	}
	return responses
}

// ToSnapshotResponse converts a price snapshot, gold first.
func ToSnapshotResponse(snapshot entity.PriceSnapshot) []MetalPriceResponse {
	responses := make([]MetalPriceResponse, 0, len(snapshot))
	for _, metal := range []entity.Metal{entity.MetalGold, entity.MetalSilver} {
		if q, ok := snapshot.Quote(metal); ok {
			responses = append(responses, ToMetalPriceResponse(&q))
		}
	}
	return responses
}

// ToMetalPriceListResponse converts a ListPricesOutput.
func ToMetalPriceListResponse(output *metalprice.ListPricesOutput) MetalPriceListResponse {
	return MetalPriceListResponse{
		Effective: ToSnapshotResponse(output.Snapshot),
		Quotes:    ToMetalPriceResponses(output.Quotes),
	}
}

// ToSetMetalPriceResponse converts a SetPriceOutput.
func ToSetMetalPriceResponse(output *metalprice.SetPriceOutput) SetMetalPriceResponse {
	return SetMetalPriceResponse{
		Quote:   ToMetalPriceResponse(output.Quote),
		Derived: ToMetalPriceResponses(output.Derived),
	}
}

// ToRefreshPricesResponse converts a RefreshPricesOutput.
func ToRefreshPricesResponse(output *metalprice.RefreshPricesOutput) RefreshPricesResponse {
	failed := make([]string, len(output.Failed))
	for i, m := range output.Failed {
		failed[i] = string(m)
	}
	return RefreshPricesResponse{
		Quotes: ToMetalPriceResponses(output.Quotes),
		Failed: failed,
	}
}

// ToPurityListResponse converts a ListPuritiesOutput.
func ToPurityListResponse(output *metalprice.ListPuritiesOutput) PurityListResponse {
	convert := func(standards []valueobject.PurityStandard) []PurityResponse {
		responses := make([]PurityResponse, len(standards))
		for i, s := range standards {
			responses[i] = PurityResponse{Name: s.Name, Purity: s.Purity.String()}
			if s.Karat != 0 {
				karat := s.Karat
				responses[i].Karat = &karat
			}
		}
		return responses
	}
	return PurityListResponse{
		Gold:   convert(output.Gold),
		Silver: convert(output.Silver),
	}
}
