package report

import (
	"context"
	"fmt"
	"math"

	"github.com/retail/backend/internal/domain/attendance"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/report"
	"github.com/retail/backend/internal/domain/sales"
	"github.com/retail/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultSummaryDays is the look-back window of the summary reports.
const DefaultSummaryDays = 30

// OrderFinder is the read access the report engine needs to orders
type OrderFinder interface {
	FindAll(ctx context.Context) ([]sales.Order, error)
}

// ProductFinder is the read access the report engine needs to products
type ProductFinder interface {
	FindAll(ctx context.Context) ([]catalog.Product, error)
}

// StockFinder is the read access the report engine needs to stock levels
type StockFinder interface {
	FindAll(ctx context.Context) ([]inventory.Stock, error)
}

// AttendanceFinder is the read access the report engine needs to attendance records
type AttendanceFinder interface {
	FindAll(ctx context.Context) ([]attendance.Attendance, error)
}

// ReportService builds sales, stock and attendance reports.
//
// Each call fetches whole collections and aggregates them in memory; nothing
// is kept between calls, so the service is safe for concurrent use.
type ReportService struct {
	orders     OrderFinder
	products   ProductFinder
	stock      StockFinder
	attendance AttendanceFinder
	clock      shared.Clock
	logger     *zap.Logger
}

// Option configures a ReportService
type Option func(*ReportService)

// WithClock sets the time source used for generatedAt and summary windows.
func WithClock(c shared.Clock) Option {
	return func(s *ReportService) {
		s.clock = c
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *ReportService) {
		s.logger = l.Named("report")
	}
}

// NewReportService creates a new ReportService
func NewReportService(
	orders OrderFinder,
	products ProductFinder,
	stock StockFinder,
	attendance AttendanceFinder,
	opts ...Option,
) *ReportService {
	s := &ReportService{
		orders:     orders,
		products:   products,
		stock:      stock,
		attendance: attendance,
		clock:      shared.SystemClock,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SalesSummary is the sales report for the last days days, ending now.
func (s *ReportService) SalesSummary(ctx context.Context, days int) (*report.Envelope[report.SalesReport], error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}
	end := s.clock.Now()
	return s.GenerateSalesReport(ctx, end.AddDate(0, 0, -days), end)
}

// AttendanceSummary is the attendance report for the last days days, ending now.
func (s *ReportService) AttendanceSummary(ctx context.Context, days int) (*report.Envelope[report.AttendanceReport], error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}
	end := s.clock.Now()
	return s.GenerateAttendanceReport(ctx, end.AddDate(0, 0, -days), end)
}

func validateDays(days int) error {
	if days <= 0 {
		return shared.ErrInvalidInput.WithMessage("Days must be a positive integer")
	}
	return nil
}

func (s *ReportService) fetchFailed(what string, err error) error {
	s.logger.Error("Failed to fetch report source data", zap.String("source", what), zap.Error(err))
	return fmt.Errorf("fetch %s: %w", what, err)
}

func envelope[T any](s *ReportService, data T) *report.Envelope[T] {
	return &report.Envelope[T]{Data: data, GeneratedAt: s.clock.Now()}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
