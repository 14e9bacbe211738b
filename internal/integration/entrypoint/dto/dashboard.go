package dto

import (
	"time"

	"github.com/zakat-manager/backend/internal/application/usecase/dashboard"
)

// CategorySummaryResponse represents one asset category of the summary.
type CategorySummaryResponse struct {
	Category       string  `json:"category"`
	Amount         string  `json:"amount"`
	EligibleAmount string  `json:"eligible_amount"`
	Percentage     float64 `json:"percentage"`
	AssetCount     int     `json:"asset_count"`
}

// AssetSummaryResponse represents the response for the asset summary.
type AssetSummaryResponse struct {
	Currency          string                    `json:"currency"`
	TotalAssets       string                    `json:"total_assets"`
	EligibleAssets    string                    `json:"eligible_assets"`
	NisabStandard     string                    `json:"nisab_standard"`
	NisabThreshold    string                    `json:"nisab_threshold"`
	MeetsNisab        bool                      `json:"meets_nisab"`
	ZakatDue          string                    `json:"zakat_due"`
	AssetCount        int                       `json:"asset_count"`
	WarningCount      int                       `json:"warning_count"`
	Categories        []CategorySummaryResponse `json:"categories"`
	CalculationCount  int64                     `json:"calculation_count"`
	LastCalculationAt *time.Time                `json:"last_calculation_at,omitempty"`
	ResolvedAt        time.Time                 `json:"resolved_at"`
}

// TrendPointResponse represents one period of the wealth trend.
type TrendPointResponse struct {
	Date             string `json:"date"`
	PeriodLabel      string `json:"period_label"`
	TotalAssets      string `json:"total_assets"`
	NetZakatable     string `json:"net_zakatable"`
	NisabThreshold   string `json:"nisab_threshold"`
	MeetsNisab       bool   `json:"meets_nisab"`
	ZakatAmount      string `json:"zakat_amount"`
	ZakatPaid        string `json:"zakat_paid"`
	CalculationCount int    `json:"calculation_count"`
}

// TrendsPeriodResponse represents the period information for trends.
type TrendsPeriodResponse struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Granularity string `json:"granularity"`
}

// TrendsResponse represents the response for the wealth trend.
type TrendsResponse struct {
	Period   TrendsPeriodResponse `json:"period"`
	Currency string               `json:"currency"`
	Trends   []TrendPointResponse `json:"trends"`
}

// ToAssetSummaryResponse converts the use case output to an AssetSummaryResponse DTO.
func ToAssetSummaryResponse(output *dashboard.GetAssetSummaryOutput) AssetSummaryResponse {
	categories := make([]CategorySummaryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategorySummaryResponse{
			Category:       string(c.Category),
			Amount:         Money(c.Amount),
			EligibleAmount: Money(c.EligibleAmount),
			Percentage:     c.Percentage,
			AssetCount:     c.AssetCount,
		}
	}

	return AssetSummaryResponse{
		Currency:          output.Currency,
		TotalAssets:       Money(output.TotalAssets),
		EligibleAssets:    Money(output.EligibleAssets),
		NisabStandard:     string(output.NisabStandard),
		NisabThreshold:    Money(output.NisabThreshold),
		MeetsNisab:        output.MeetsNisab,
		ZakatDue:          Money(output.ZakatDue),
		AssetCount:        output.AssetCount,
		WarningCount:      output.WarningCount,
		Categories:        categories,
		CalculationCount:  output.CalculationCount,
		LastCalculationAt: output.LastCalculationAt,
		ResolvedAt:        output.ResolvedAt,
	}
}

// ToTrendsResponse converts the use case output to a TrendsResponse DTO.
func ToTrendsResponse(output *dashboard.GetTrendsOutput) TrendsResponse {
	trends := make([]TrendPointResponse, len(output.Trends))
	for i, p := range output.Trends {
		trends[i] = TrendPointResponse{
			Date:             p.PeriodStart.Format(DateLayout),
			PeriodLabel:      p.PeriodLabel,
			TotalAssets:      Money(p.TotalAssets),
			NetZakatable:     Money(p.NetZakatable),
			NisabThreshold:   Money(p.NisabThreshold),
			MeetsNisab:       p.MeetsNisab,
			ZakatAmount:      Money(p.ZakatAmount),
			ZakatPaid:        Money(p.ZakatPaid),
			CalculationCount: p.CalculationCount,
		}
	}

	return TrendsResponse{
		Period: TrendsPeriodResponse{
			StartDate:   output.StartDate.Format(DateLayout),
			EndDate:     output.EndDate.Format(DateLayout),
			Granularity: string(output.Granularity),
		},
		Currency: output.Currency,
		Trends:   trends,
	}
}
