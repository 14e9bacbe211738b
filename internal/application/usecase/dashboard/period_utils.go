package dashboard

import (
	"fmt"
	"time"
)

// Granularity is the bucket size of a trend series.
type Granularity string

const (
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
	GranularityYearly    Granularity = "yearly"
)

// IsValid checks if the granularity is supported.
func (g Granularity) IsValid() bool {
	return g == GranularityMonthly || g == GranularityQuarterly || g == GranularityYearly
}

// PeriodInfo holds information about a single period.
type PeriodInfo struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodLabel string
}

// GeneratePeriodLabel generates a human-readable label for a period.
// Formats: "Mar 2025", "Q1 2025", "2025".
func GeneratePeriodLabel(date time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityMonthly:
		return fmt.Sprintf("%s %d", date.Month().String()[:3], date.Year())
	case GranularityQuarterly:
		return fmt.Sprintf("Q%d %d", quarterOf(date), date.Year())
	case GranularityYearly:
		return fmt.Sprintf("%d", date.Year())
	default:
		return date.Format("2006-01-02")
	}
}

// PeriodStart returns the first day of the period containing date.
func PeriodStart(date time.Time, granularity Granularity) time.Time {
	loc := date.Location()
	switch granularity {
	case GranularityQuarterly:
		return time.Date(date.Year(), time.Month((quarterOf(date)-1)*3+1), 1, 0, 0, 0, 0, loc)
	case GranularityYearly:
		return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, loc)
	}
}

// GeneratePeriodSeries generates every period between startDate and endDate, so charts have no gaps.
func GeneratePeriodSeries(startDate, endDate time.Time, granularity Granularity) []PeriodInfo {
	var periods []PeriodInfo
	current := PeriodStart(startDate, granularity)
	for !current.After(endDate) {
		next := advance(current, granularity)
		periods = append(periods, PeriodInfo{
			PeriodStart: current,
			PeriodEnd:   next.AddDate(0, 0, -1),
			PeriodLabel: GeneratePeriodLabel(current, granularity),
		})
		current = next
	}
	return periods
}

// GetPeriodKeyForDate returns a unique key for the period containing the given date.
func GetPeriodKeyForDate(date time.Time, granularity Granularity) string {
	return PeriodStart(date, granularity).Format("2006-01-02")
}

func advance(start time.Time, granularity Granularity) time.Time {
	switch granularity {
	case GranularityQuarterly:
		return start.AddDate(0, 3, 0)
	case GranularityYearly:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

func quarterOf(date time.Time) int {
	return (int(date.Month())-1)/3 + 1
}
