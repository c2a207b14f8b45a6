package report

import (
	"time"

	"github.com/isms/backend/internal/domain/shared"
)

// Period selects the reporting window
type Period string

const (
	PeriodToday        Period = "today"
	PeriodSevenDays    Period = "7days"
	PeriodThirtyDays   Period = "30days"
	PeriodThreeMonths  Period = "3months"
	PeriodSixMonths    Period = "6months"
	PeriodTwelveMonths Period = "12months"
	PeriodAll          Period = "all"
)

// Start returns the inclusive lower bound of the window, or nil for
// the all-time period.
func (p Period) Start(now time.Time) (*time.Time, error) {
	var start time.Time
	switch p {
	case PeriodToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodSevenDays:
		start = now.AddDate(0, 0, -7)
	case PeriodThirtyDays:
		start = now.AddDate(0, 0, -30)
	case PeriodThreeMonths:
		start = now.AddDate(0, -3, 0)
	case PeriodSixMonths:
		start = now.AddDate(0, -6, 0)
	case PeriodTwelveMonths:
		start = now.AddDate(0, -12, 0)
	case PeriodAll:
		return nil, nil
	default:
		return nil, shared.NewDomainError("INVALID_PERIOD", "Unknown reporting period")
	}
	return &start, nil
}
