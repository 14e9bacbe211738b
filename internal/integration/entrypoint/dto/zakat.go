package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/usecase/calculation"
	"github.com/zakat-manager/backend/internal/domain/entity"
	"github.com/zakat-manager/backend/internal/domain/zakat"
)

// LiabilityRequest represents a debt deducted from the zakatable base.
type LiabilityRequest struct {
	Description string          `json:"description,omitempty" binding:"max=200"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
}

// CalculateZakatRequest represents the request body for a calculation over stored assets.
type CalculateZakatRequest struct {
	Currency    string             `json:"currency,omitempty"`
	Standard    string             `json:"nisab_standard,omitempty" binding:"omitempty,oneof=gold silver"`
	AssetIDs    []string           `json:"asset_ids,omitempty" binding:"omitempty,dive,uuid"`
	Liabilities []LiabilityRequest `json:"liabilities,omitempty" binding:"omitempty,dive"`
	Notes       string             `json:"notes,omitempty" binding:"max=1000"`
	Save        bool               `json:"save"`
}

// PreviewAssetRequest represents an inline asset of a preview calculation.
type PreviewAssetRequest struct {
	Name            string  `json:"name,omitempty" binding:"max=100"`
	Category        string  `json:"category" binding:"required,oneof=cash gold silver property crypto stocks business other"`
	Usage           string  `json:"usage,omitempty" binding:"omitempty,oneof=personal investment"`
	AcquisitionDate *string `json:"acquisition_date,omitempty"`
	HoldingRequest
}

// PreviewZakatRequest represents the request body for a calculation over inline assets.
// Prices and rates given here replace the ones in effect for this request only.
type PreviewZakatRequest struct {
	Assets        []PreviewAssetRequest      `json:"assets" binding:"dive"`
	Currency      string                     `json:"currency,omitempty"`
	Standard      string                     `json:"nisab_standard,omitempty" binding:"omitempty,oneof=gold silver"`
	Liabilities   []LiabilityRequest         `json:"liabilities,omitempty" binding:"omitempty,dive"`
	GoldPrice     *decimal.Decimal           `json:"gold_price_per_gram,omitempty"`
	SilverPrice   *decimal.Decimal           `json:"silver_price_per_gram,omitempty"`
	PriceCurrency string                     `json:"price_currency,omitempty"`
	Rates         map[string]decimal.Decimal `json:"rates,omitempty"`
}

// ToLiabilities converts liability requests to domain liabilities.
func ToLiabilities(reqs []LiabilityRequest) []entity.Liability {
	if len(reqs) == 0 {
		return nil
	}
	liabilities := make([]entity.Liability, len(reqs))
	for i, r := range reqs {
		liabilities[i] = entity.Liability{
			Description: r.Description,
			Amount:      r.Amount,
			Currency:    r.Currency,
		}
	}
	return liabilities
}

// WarningResponse represents a degraded valuation.
type WarningResponse struct {
	AssetID string `json:"asset_id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BreakdownEntryResponse represents one asset of a calculation breakdown.
type BreakdownEntryResponse struct {
	AssetID     string           `json:"asset_id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Value       string           `json:"value"`
	Eligible    bool             `json:"eligible"`
	Reason      string           `json:"reason"`
	ZakatAmount string           `json:"zakat_amount"`
	Warning     *WarningResponse `json:"warning,omitempty"`
}

// CategoryTotalResponse aggregates a breakdown by category.
type CategoryTotalResponse struct {
	Category      string `json:"category"`
	Value         string `json:"value"`
	EligibleValue string `json:"eligible_value"`
	ZakatAmount   string `json:"zakat_amount"`
	AssetCount    int    `json:"asset_count"`
}

// CalculationResponse represents a Zakat calculation in API responses.
type CalculationResponse struct {
	ID                  string                   `json:"id,omitempty"`
	Currency            string                   `json:"currency"`
	NisabStandard       string                   `json:"nisab_standard"`
	TotalAssetsValue    string                   `json:"total_assets_value"`
	EligibleAssetsValue string                   `json:"eligible_assets_value"`
	LiabilitiesValue    string                   `json:"liabilities_value"`
	NetZakatableValue   string                   `json:"net_zakatable_value"`
	NisabThreshold      string                   `json:"nisab_threshold"`
	MeetsNisab          bool                     `json:"meets_nisab"`
	ZakatAmount         string                   `json:"zakat_amount"`
	Breakdown           []BreakdownEntryResponse `json:"breakdown"`
	CategoryTotals      []CategoryTotalResponse  `json:"category_totals"`
	Warnings            []WarningResponse        `json:"warnings"`
	Notes               string                   `json:"notes,omitempty"`
	CalculationDate     time.Time                `json:"calculation_date"`
}

// CalculationSummaryResponse represents a calculation in history listings.
type CalculationSummaryResponse struct {
	ID                  string    `json:"id"`
	Currency            string    `json:"currency"`
	NisabStandard       string    `json:"nisab_standard"`
	TotalAssetsValue    string    `json:"total_assets_value"`
	EligibleAssetsValue string    `json:"eligible_assets_value"`
	NisabThreshold      string    `json:"nisab_threshold"`
	MeetsNisab          bool      `json:"meets_nisab"`
	ZakatAmount         string    `json:"zakat_amount"`
	AssetCount          int       `json:"asset_count"`
	WarningCount        int       `json:"warning_count"`
	Notes               string    `json:"notes,omitempty"`
	CalculationDate     time.Time `json:"calculation_date"`
}

// CalculationResultResponse represents the response of a calculate or preview request.
type CalculationResultResponse struct {
	Calculation CalculationResponse  `json:"calculation"`
	Saved       bool                 `json:"saved"`
	RateSource  string               `json:"rate_source"`
	Prices      []MetalPriceResponse `json:"prices"`
}

// CalculationListResponse represents the response for listing calculations.
type CalculationListResponse struct {
	Calculations []CalculationSummaryResponse `json:"calculations"`
	Total        int64                        `json:"total"`
	Limit        int                          `json:"limit"`
	Offset       int                          `json:"offset"`
}

// NisabThresholdResponse represents the Nisab of one metal standard.
type NisabThresholdResponse struct {
	Standard     string `json:"standard"`
	WeightGrams  string `json:"weight_grams"`
	PricePerGram string `json:"price_per_gram"`
	Value        string `json:"value"`
}

// NisabResponse represents the response of a Nisab lookup.
type NisabResponse struct {
	Currency   string                 `json:"currency"`
	Standard   string                 `json:"standard"`
	Threshold  string                 `json:"threshold"`
	Gold       NisabThresholdResponse `json:"gold"`
	Silver     NisabThresholdResponse `json:"silver"`
	RateSource string                 `json:"rate_source"`
	ResolvedAt time.Time              `json:"resolved_at"`
}

func toWarningResponse(w entity.CalculationWarning) WarningResponse {
	response := WarningResponse{
		Code:    string(w.Code),
		Message: w.Message,
	}
	if w.AssetID != uuid.Nil {
		response.AssetID = w.AssetID.String()
	}
	return response
}

// ToCalculationResponse converts a domain ZakatCalculation to a CalculationResponse DTO.
func ToCalculationResponse(c *entity.ZakatCalculation) CalculationResponse {
	breakdown := make([]BreakdownEntryResponse, len(c.AssetBreakdown))
	for i, entry := range c.AssetBreakdown {
		breakdown[i] = BreakdownEntryResponse{
			AssetID:     entry.AssetID.String(),
			Name:        entry.Name,
			Category:    string(entry.Category),
			Value:       Money(entry.Value),
			Eligible:    entry.Eligible,
			Reason:      string(entry.Reason),
			ZakatAmount: Money(entry.ZakatAmount),
		}
		if entry.Warning != nil {
			w := toWarningResponse(*entry.Warning)
			breakdown[i].Warning = &w
		}
	}

	categoryTotals := c.CategoryTotals()
	totals := make([]CategoryTotalResponse, len(categoryTotals))
	for i, t := range categoryTotals {
		totals[i] = CategoryTotalResponse{
			Category:      string(t.Category),
			Value:         Money(t.Value),
			EligibleValue: Money(t.EligibleValue),
			ZakatAmount:   Money(t.ZakatAmount),
			AssetCount:    t.AssetCount,
		}
	}

	warnings := make([]WarningResponse, len(c.Warnings))
	for i, w := range c.Warnings {
		warnings[i] = toWarningResponse(w)
	}

	response := CalculationResponse{
		Currency:            c.Currency,
		NisabStandard:       string(c.NisabStandard),
		TotalAssetsValue:    Money(c.TotalAssetsValue),
		EligibleAssetsValue: Money(c.EligibleAssetsValue),
		LiabilitiesValue:    Money(c.LiabilitiesValue),
		NetZakatableValue:   Money(c.NetZakatableValue),
		NisabThreshold:      Money(c.NisabThresholdValue),
		MeetsNisab:          c.MeetsNisab,
		ZakatAmount:         Money(c.ZakatAmount),
		Breakdown:           breakdown,
		CategoryTotals:      totals,
		Warnings:            warnings,
		Notes:               c.Notes,
		CalculationDate:     c.CalculationDate,
	}
	if c.ID != uuid.Nil {
		response.ID = c.ID.String()
	}
	return response
}

// ToCalculateZakatResponse converts a CalculateZakatOutput to a CalculationResultResponse DTO.
func ToCalculateZakatResponse(output *calculation.CalculateZakatOutput) CalculationResultResponse {
	return CalculationResultResponse{
		Calculation: ToCalculationResponse(output.Calculation),
		Saved:       output.Saved,
		RateSource:  string(output.RateSource),
		Prices:      ToSnapshotResponse(output.Prices),
	}
}

// ToPreviewResponse converts a PreviewCalculationOutput to a CalculationResultResponse DTO.
func ToPreviewResponse(output *calculation.PreviewCalculationOutput) CalculationResultResponse {
	return CalculationResultResponse{
		Calculation: ToCalculationResponse(output.Calculation),
		Saved:       false,
		RateSource:  string(output.RateSource),
		Prices:      ToSnapshotResponse(output.Prices),
	}
}

// ToCalculationListResponse converts a ListCalculationsOutput to a CalculationListResponse DTO.
func ToCalculationListResponse(output *calculation.ListCalculationsOutput) CalculationListResponse {
	items := make([]CalculationSummaryResponse, len(output.Calculations))
	for i, c := range output.Calculations {
		items[i] = CalculationSummaryResponse{
			ID:                  c.ID.String(),
			Currency:            c.Currency,
			NisabStandard:       string(c.NisabStandard),
			TotalAssetsValue:    Money(c.TotalAssetsValue),
			EligibleAssetsValue: Money(c.EligibleAssetsValue),
			NisabThreshold:      Money(c.NisabThresholdValue),
			MeetsNisab:          c.MeetsNisab,
			ZakatAmount:         Money(c.ZakatAmount),
			AssetCount:          len(c.AssetBreakdown),
			WarningCount:        len(c.Warnings),
			Notes:               c.Notes,
			CalculationDate:     c.CalculationDate,
		}
	}
	return CalculationListResponse{
		Calculations: items,
		Total:        output.Total,
		Limit:        output.Limit,
		Offset:       output.Offset,
	}
}

func toNisabThresholdResponse(t zakat.NisabThreshold) NisabThresholdResponse {
	return NisabThresholdResponse{
		Standard:     string(t.Standard),
		WeightGrams:  t.WeightGrams.String(),
		PricePerGram: Money(t.PricePerGram),
		Value:        Money(t.Value),
	}
}

// ToNisabResponse converts a GetNisabOutput to a NisabResponse DTO.
func ToNisabResponse(output *calculation.GetNisabOutput) NisabResponse {
	return NisabResponse{
		Currency:   output.Currency,
		Standard:   string(output.Threshold.Standard),
		Threshold:  Money(output.Threshold.Value),
		Gold:       toNisabThresholdResponse(output.Gold),
		Silver:     toNisabThresholdResponse(output.Silver),
		RateSource: string(output.RateSource),
		ResolvedAt: output.ResolvedAt,
	}
}
