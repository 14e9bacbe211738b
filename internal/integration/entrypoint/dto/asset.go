package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/usecase/asset"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// HoldingRequest carries the quantity fields of an asset. Gold and silver take a
// weight plus a karat or purity; every other category takes a value and currency.
type HoldingRequest struct {
	WeightGrams *decimal.Decimal `json:"weight_grams,omitempty"`
	Karat       *int             `json:"karat,omitempty"`
	Purity      *decimal.Decimal `json:"purity,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Currency    string           `json:"currency,omitempty"`
}

// ToHoldingFields converts the request to use case holding fields.
func (r HoldingRequest) ToHoldingFields() asset.HoldingFields {
	return asset.HoldingFields{
		WeightGrams:    r.WeightGrams,
		Karat:          r.Karat,
		PurityFraction: r.Purity,
		Value:          r.Value,
		Currency:       r.Currency,
	}
}

// CreateAssetRequest represents the request body for asset creation.
type CreateAssetRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Description     string  `json:"description,omitempty" binding:"max=500"`
	Category        string  `json:"category" binding:"required,oneof=cash gold silver property crypto stocks business other"`
	Subcategory     string  `json:"subcategory,omitempty" binding:"max=50"`
	Usage           string  `json:"usage,omitempty" binding:"omitempty,oneof=personal investment"`
	AcquisitionDate *string `json:"acquisition_date,omitempty"`
	HoldingRequest
}

// UpdateAssetRequest represents the request body for asset update.
type UpdateAssetRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description     *string `json:"description,omitempty" binding:"omitempty,max=500"`
	Category        *string `json:"category,omitempty" binding:"omitempty,oneof=cash gold silver property crypto stocks business other"`
	Subcategory     *string `json:"subcategory,omitempty" binding:"omitempty,max=50"`
	Usage           *string `json:"usage,omitempty" binding:"omitempty,oneof=personal investment"`
	AcquisitionDate *string `json:"acquisition_date,omitempty"`
	// ClearAcquisitionDate removes a stored acquisition date.
	ClearAcquisitionDate bool `json:"clear_acquisition_date,omitempty"`
	HoldingRequest
}

// AssetResponse represents a single asset in API responses.
type AssetResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory,omitempty"`
	Usage           string    `json:"usage"`
	HoldingKind     string    `json:"holding_kind"`
	WeightGrams     *string   `json:"weight_grams,omitempty"`
	Karat           *int      `json:"karat,omitempty"`
	Purity          *string   `json:"purity,omitempty"`
	Value           *string   `json:"value,omitempty"`
	Currency        string    `json:"currency,omitempty"`
	AcquisitionDate *string   `json:"acquisition_date,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AssetListResponse represents the response for listing assets.
type AssetListResponse struct {
	Assets []AssetResponse `json:"assets"`
	Counts map[string]int  `json:"counts"`
	Total  int             `json:"total"`
}

// ToAssetResponse converts a domain Asset entity to an AssetResponse DTO.
func ToAssetResponse(a *entity.Asset) AssetResponse {
	response := AssetResponse{
		ID:              a.ID.String(),
		Name:            a.Name,
		Description:     a.Description,
		Category:        string(a.Category),
		Subcategory:     a.Subcategory,
		Usage:           string(a.Usage),
		AcquisitionDate: FormatDate(a.AcquisitionDate),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	switch h := a.Holding.(type) {
	case entity.MetalHolding:
		response.HoldingKind = string(entity.HoldingKindMetal)
		weight := h.WeightGrams.String()
		response.WeightGrams = &weight
		if h.HasKarat() {
			karat := h.Karat
			response.Karat = &karat
		} else {
			purity := h.PurityFraction.String()
			response.Purity = &purity
		}
	case entity.MonetaryHolding:
		response.HoldingKind = string(entity.HoldingKindMonetary)
		value := Money(h.Value)
		response.Value = &value
		response.Currency = h.Currency
	}

	return response
}

// ToAssetListResponse converts a ListAssetsOutput to an AssetListResponse DTO.
func ToAssetListResponse(output *asset.ListAssetsOutput) AssetListResponse {
	assets := make([]AssetResponse, len(output.Assets))
	for i, a := range output.Assets {
		assets[i] = ToAssetResponse(a)
	}

	counts := make(map[string]int, len(output.Counts))
	for category, n := range output.Counts {
		counts[string(category)] = n
	}

	return AssetListResponse{
		Assets: assets,
		Counts: counts,
		Total:  len(assets),
	}
}
