package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
)

// GetTrendsInput represents the input for getting wealth trends.
type GetTrendsInput struct {
	UserID      uuid.UUID
	StartDate   time.Time
	EndDate     time.Time // Inclusive
	Granularity Granularity
	Currency    string // Optional, defaults to the configured currency
}

// TrendPoint represents one period of the trend.
// The values come from the last calculation saved in the period.
type TrendPoint struct {
	PeriodStart      time.Time
	PeriodLabel      string
	TotalAssets      decimal.Decimal
	NetZakatable     decimal.Decimal
	NisabThreshold   decimal.Decimal
	MeetsNisab       bool
	ZakatAmount      decimal.Decimal
	ZakatPaid        decimal.Decimal
	CalculationCount int
}

// GetTrendsOutput represents the output of getting wealth trends.
type GetTrendsOutput struct {
	StartDate   time.Time
	EndDate     time.Time
	Granularity Granularity
	Currency    string
	Trends      []TrendPoint
}

// GetTrendsUseCase builds the wealth and Zakat history of a user from saved calculations.
type GetTrendsUseCase struct {
	calcRepo        adapter.CalculationRepository
	paymentRepo     adapter.PaymentRepository
	defaultCurrency string
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(calcRepo adapter.CalculationRepository, paymentRepo adapter.PaymentRepository, defaultCurrency string) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		calcRepo:        calcRepo,
		paymentRepo:     paymentRepo,
		defaultCurrency: defaultCurrency,
	}
}

// Execute retrieves the trend for the given period and granularity.
// Calculations and payments in another currency are left out.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	if input.Granularity == "" {
		input.Granularity = GranularityMonthly
	}
	if err := validateTrendsInput(input); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = uc.defaultCurrency
	}

	start := startOfDay(input.StartDate)
	end := startOfDay(input.EndDate).AddDate(0, 0, 1).Add(-time.Nanosecond)

	calcs, err := uc.calcRepo.FindByUserIDBetween(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get calculations: %w", err)
	}

	payments, err := uc.paymentRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}

	points := make(map[string]*TrendPoint)
	point := func(date time.Time) *TrendPoint {
		key := GetPeriodKeyForDate(date, input.Granularity)
		p, ok := points[key]
		if !ok {
			p = &TrendPoint{
				TotalAssets:    decimal.Zero,
				NetZakatable:   decimal.Zero,
				NisabThreshold: decimal.Zero,
				ZakatAmount:    decimal.Zero,
				ZakatPaid:      decimal.Zero,
			}
			points[key] = p
		}
		return p
	}

	// Calculations arrive oldest first, so the last one of a period wins.
	for _, c := range calcs {
		if c.Currency != currency {
			continue
		}
		p := point(c.CalculationDate.In(start.Location()))
		p.TotalAssets = c.TotalAssetsValue
		p.NetZakatable = c.NetZakatableValue
		p.NisabThreshold = c.NisabThresholdValue
		p.MeetsNisab = c.MeetsNisab
		p.ZakatAmount = c.ZakatAmount
		p.CalculationCount++
	}

	for _, pay := range payments {
		if pay.Status != entity.PaymentStatusPaid || pay.Currency != currency {
			continue
		}
		if pay.PaidOn.Before(start) || pay.PaidOn.After(end) {
			continue
		}
		p := point(pay.PaidOn.In(start.Location()))
		p.ZakatPaid = p.ZakatPaid.Add(pay.Amount)
	}

	periods := GeneratePeriodSeries(start, end, input.Granularity)
	trends := make([]TrendPoint, 0, len(periods))
	for _, period := range periods {
		p := point(period.PeriodStart)
		p.PeriodStart = period.PeriodStart
		p.PeriodLabel = period.PeriodLabel
		trends = append(trends, *p)
	}

	return &GetTrendsOutput{
		StartDate:   start,
		EndDate:     startOfDay(input.EndDate),
		Granularity: input.Granularity,
		Currency:    currency,
		Trends:      trends,
	}, nil
}

func validateTrendsInput(input GetTrendsInput) error {
	if input.StartDate.IsZero() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required",
			domainerror.ErrMissingStartDate,
		)
	}

	if input.EndDate.IsZero() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required",
			domainerror.ErrMissingEndDate,
		)
	}

	if input.EndDate.Before(input.StartDate) {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not be before start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	if !input.Granularity.IsValid() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: monthly, quarterly, or yearly",
			domainerror.ErrInvalidGranularity,
		)
	}

	return nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
