package report

import (
	"time"

	"github.com/retail/backend/internal/domain/shared"
)

// DefaultLowStockThreshold is used when the caller does not supply a threshold.
const DefaultLowStockThreshold = 10

// ReportPeriod is an inclusive [StartDate, EndDate] range.
type ReportPeriod struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// NewReportPeriod fails with shared.ErrInvalidRange when start is after end.
func NewReportPeriod(start, end time.Time) (ReportPeriod, error) {
	if start.After(end) {
		return ReportPeriod{}, shared.ErrInvalidRange.WithMessage(
			"Start date " + start.Format(time.RFC3339) + " is after end date " + end.Format(time.RFC3339))
	}
	return ReportPeriod{StartDate: start, EndDate: end}, nil
}

// Contains reports whether t falls inside the period, bounds included.
func (p ReportPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// Envelope wraps report data with the time it was assembled.
type Envelope[T any] struct {
	Data        T         `json:"data"`
	GeneratedAt time.Time `json:"generatedAt"`
}
