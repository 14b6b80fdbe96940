package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	fixedNow = time.Date(2023, 2, 15, 12, 0, 0, 0, time.UTC)
	jan1     = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31    = time.Date(2023, 1, 31, 23, 59, 59, 0, time.UTC)
)

type fixture struct {
	orders     *MockOrderFinder
	products   *MockProductFinder
	stock      *MockStockFinder
	attendance *MockAttendanceFinder
	service    *ReportService
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		orders:     new(MockOrderFinder),
		products:   new(MockProductFinder),
		stock:      new(MockStockFinder),
		attendance: new(MockAttendanceFinder),
	}
	opts = append([]Option{WithClock(shared.FixedClock(fixedNow))}, opts...)
	f.service = NewReportService(f.orders, f.products, f.stock, f.attendance, opts...)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.orders.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.stock.AssertExpectations(t)
	f.attendance.AssertExpectations(t)
}

func TestReportService_SalesSummary(t *testing.T) {
	t.Run("covers the last N days ending now", func(t *testing.T) {
		f := newFixture()
		f.orders.On("FindAll", mock.Anything).Return(nil, nil)
		f.products.On("FindAll", mock.Anything).Return(nil, nil)

		got, err := f.service.SalesSummary(context.Background(), 30)
		require.NoError(t, err)

		assert.Equal(t, fixedNow, got.Data.ReportPeriod.EndDate)
		assert.Equal(t, fixedNow.AddDate(0, 0, -30), got.Data.ReportPeriod.StartDate)
		assert.Equal(t, fixedNow, got.GeneratedAt)
	})

	t.Run("rejects non-positive days before fetching", func(t *testing.T) {
		f := newFixture()

		for _, days := range []int{0, -5} {
			_, err := f.service.SalesSummary(context.Background(), days)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		}
		f.orders.AssertNotCalled(t, "FindAll", mock.Anything)
	})
}

func TestReportService_AttendanceSummary(t *testing.T) {
	f := newFixture()
	f.attendance.On("FindAll", mock.Anything).Return(nil, nil)

	got, err := f.service.AttendanceSummary(context.Background(), DefaultSummaryDays)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -30), got.Data.ReportPeriod.StartDate)

	_, err = f.service.AttendanceSummary(context.Background(), 0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	f.attendance.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestReportService_FetchFailureIsLogged(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	f := newFixture(WithLogger(zap.New(core)))
	boom := errors.New("connection refused")
	f.stock.On("FindAll", mock.Anything).Return(nil, boom)

	_, err := f.service.GenerateStockReport(context.Background(), 10)

	assert.ErrorIs(t, err, boom)
	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "stock", recorded.All()[0].ContextMap()["source"])
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.33, round2(10.0/3.0))
	assert.Equal(t, 6.67, round2(20.0/3.0))
	assert.Equal(t, 0.0, round2(0))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, ratio(decimalFrom(t, "15.5"), 0))
	assert.Equal(t, 7.75, ratio(decimalFrom(t, "15.5"), 2))
}

func decimalFrom(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestReportService_FindersRunInsideTheReportSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	f := newFixture()
	var seen trace.SpanContext
	f.attendance.On("FindAll", mock.Anything).
		Run(func(args mock.Arguments) {
			seen = trace.SpanContextFromContext(args.Get(0).(context.Context))
		}).
		Return(nil, nil)

	_, err := f.service.GenerateAttendanceReport(context.Background(), jan1, jan31)
	require.NoError(t, err)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "report.attendance", ended[0].Name())
	assert.True(t, seen.IsValid())
	assert.Equal(t, ended[0].SpanContext().SpanID(), seen.SpanID())
}
