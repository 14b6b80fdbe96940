package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/report"
	"github.com/retail/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// GenerateAttendanceReport totals hours worked per employee for records dated
// within [start, end]. Days without a check-out count as worked days but add
// no hours.
func (s *ReportService) GenerateAttendanceReport(ctx context.Context, start, end time.Time) (_ *report.Envelope[report.AttendanceReport], err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "attendance",
		telemetry.SpanAttrPeriodStart, start.Format(time.DateOnly),
		telemetry.SpanAttrPeriodEnd, end.Format(time.DateOnly),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	period, err := report.NewReportPeriod(start, end)
	if err != nil {
		return nil, err
	}

	records, err := s.attendance.FindAll(ctx)
	if err != nil {
		return nil, s.fetchFailed("attendance", err)
	}

	type employeeAgg struct {
		hours   decimal.Decimal
		records []report.AttendanceRecord
	}
	byEmployee := make(map[uuid.UUID]*employeeAgg)
	var employees []uuid.UUID

	for i := range records {
		a := &records[i]
		if !period.Contains(a.Date) {
			continue
		}

		agg, ok := byEmployee[a.EmployeeID]
		if !ok {
			agg = &employeeAgg{hours: decimal.Zero}
			byEmployee[a.EmployeeID] = agg
			employees = append(employees, a.EmployeeID)
		}

		hours := a.HoursWorked()
		if hours != nil {
			agg.hours = agg.hours.Add(decimal.NewFromFloat(*hours))
		}
		agg.records = append(agg.records, report.AttendanceRecord{
			Date:         a.Date,
			CheckInTime:  a.CheckInTime,
			CheckOutTime: a.CheckOutTime,
			HoursWorked:  hours,
		})
	}

	reports := make([]report.EmployeeAttendance, 0, len(employees))
	allHours := decimal.Zero
	for _, id := range employees {
		agg := byEmployee[id]
		days := len(agg.records)
		reports = append(reports, report.EmployeeAttendance{
			EmployeeID:         id,
			TotalDaysWorked:    days,
			TotalHoursWorked:   agg.hours.InexactFloat64(),
			AverageHoursPerDay: ratio(agg.hours, days),
			AttendanceRecords:  agg.records,
		})
		allHours = allHours.Add(agg.hours)
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].TotalHoursWorked > reports[j].TotalHoursWorked
	})

	return envelope(s, report.AttendanceReport{
		TotalEmployees:          len(reports),
		AverageHoursPerEmployee: ratio(allHours, len(reports)),
		TotalHoursAllEmployees:  allHours.InexactFloat64(),
		EmployeeReports:         reports,
		ReportPeriod:            period,
	}), nil
}

// ratio divides total by n, returning 0 when n is 0.
func ratio(total decimal.Decimal, n int) float64 {
	if n == 0 {
		return 0
	}
	return total.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
}
