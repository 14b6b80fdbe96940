package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/report"
	"github.com/retail/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type productSalesAgg struct {
	name     string
	quantity int
	revenue  decimal.Decimal
	prices   []decimal.Decimal
}

// GenerateSalesReport aggregates orders dated within [start, end].
//
// Products are ranked by quantity sold. Categories are listed in the order
// they first appear in that ranking. Sales of products that have since been
// deleted are reported under report.UnknownCategory.
func (s *ReportService) GenerateSalesReport(ctx context.Context, start, end time.Time) (_ *report.Envelope[report.SalesReport], err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "sales",
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

	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, s.fetchFailed("orders", err)
	}

	totalSales := 0
	totalRevenue := decimal.Zero
	byProduct := make(map[uuid.UUID]*productSalesAgg)
	var seen []uuid.UUID

	for i := range orders {
		o := &orders[i]
		if !period.Contains(o.OrderDate) {
			continue
		}
		totalSales++
		totalRevenue = totalRevenue.Add(o.Total)

		for _, line := range o.Lines {
			agg, ok := byProduct[line.ProductID]
			if !ok {
				agg = &productSalesAgg{revenue: decimal.Zero}
				byProduct[line.ProductID] = agg
				seen = append(seen, line.ProductID)
			}
			agg.name = line.Name
			agg.quantity += line.Quantity
			agg.revenue = agg.revenue.Add(line.Subtotal)
			agg.prices = append(agg.prices, line.UnitPrice)
		}
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, s.fetchFailed("products", err)
	}
	categoryOf := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		categoryOf[p.ID] = p.Category
	}

	ranked := make([]rankedProduct, 0, len(seen))
	for _, id := range seen {
		agg := byProduct[id]
		category, ok := categoryOf[id]
		if !ok {
			category = report.UnknownCategory
		}
		ranked = append(ranked, rankedProduct{
			ProductSales: report.ProductSales{
				ProductID:         id,
				ProductName:       agg.name,
				Category:          category,
				TotalQuantitySold: agg.quantity,
				TotalRevenue:      agg.revenue.InexactFloat64(),
				AveragePrice:      mean(agg.prices).InexactFloat64(),
			},
			revenue: agg.revenue,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalQuantitySold > ranked[j].TotalQuantitySold
	})
	topProducts := make([]report.ProductSales, len(ranked))
	for i := range ranked {
		topProducts[i] = ranked[i].ProductSales
	}

	s.logger.Debug("Sales report generated",
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("orders", totalSales),
		zap.Int("products", len(topProducts)))

	return envelope(s, report.SalesReport{
		TotalSales:      totalSales,
		TotalRevenue:    totalRevenue.InexactFloat64(),
		TopProducts:     topProducts,
		SalesByCategory: rollupCategories(ranked),
		ReportPeriod:    period,
	}), nil
}

// rankedProduct keeps the exact revenue next to its exported row
type rankedProduct struct {
	report.ProductSales
	revenue decimal.Decimal
}

func rollupCategories(rows []rankedProduct) []report.CategorySales {
	type categoryAgg struct {
		quantity int
		revenue  decimal.Decimal
	}
	byCategory := make(map[string]*categoryAgg)
	var order []string

	for _, row := range rows {
		agg, ok := byCategory[row.Category]
		if !ok {
			agg = &categoryAgg{revenue: decimal.Zero}
			byCategory[row.Category] = agg
			order = append(order, row.Category)
		}
		agg.quantity += row.TotalQuantitySold
		agg.revenue = agg.revenue.Add(row.revenue)
	}

	out := make([]report.CategorySales, 0, len(order))
	for _, c := range order {
		out = append(out, report.CategorySales{
			Category:          c,
			TotalQuantitySold: byCategory[c].quantity,
			TotalRevenue:      byCategory[c].revenue.InexactFloat64(),
		})
	}
	return out
}

func mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(values[0], values[1:]...).Div(decimal.NewFromInt(int64(len(values))))
}
