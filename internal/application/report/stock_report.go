package report

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/report"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// GenerateStockReport classifies every stocked product against threshold.
//
// Stock rows whose product no longer exists are left out of the report.
func (s *ReportService) GenerateStockReport(ctx context.Context, threshold int) (_ *report.Envelope[report.StockReport], err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "stock", telemetry.SpanAttrThreshold, threshold)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	if threshold < 0 {
		return nil, shared.ErrInvalidThreshold
	}

	levels, err := s.stock.FindAll(ctx)
	if err != nil {
		return nil, s.fetchFailed("stock", err)
	}
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, s.fetchFailed("products", err)
	}

	productByID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	var (
		lowStock   = []report.StockItem{}
		outOfStock = []report.StockItem{}
		byCategory = make(map[string]*report.CategoryStock)
		categories []string
		totalStock int
		counted    int
		orphaned   int
	)

	for _, level := range levels {
		product, ok := productByID[level.ProductID]
		if !ok {
			orphaned++
			continue
		}

		status := report.ClassifyStock(level.CurrentQuantity, threshold)
		item := report.StockItem{
			ProductID:       level.ProductID,
			ProductName:     product.Name,
			Category:        product.Category,
			CurrentQuantity: level.CurrentQuantity,
			StockStatus:     status,
			LastUpdated:     level.UpdatedAt,
		}

		cat, ok := byCategory[product.Category]
		if !ok {
			cat = &report.CategoryStock{Category: product.Category}
			byCategory[product.Category] = cat
			categories = append(categories, product.Category)
		}
		cat.TotalProducts++
		cat.TotalQuantity += level.CurrentQuantity

		switch status {
		case report.StockStatusLow:
			lowStock = append(lowStock, item)
			cat.LowStockCount++
		case report.StockStatusOutOfStock:
			outOfStock = append(outOfStock, item)
			cat.OutOfStockCount++
		}

		totalStock += level.CurrentQuantity
		counted++
	}

	if orphaned > 0 {
		s.logger.Warn("Stock rows without a product were skipped", zap.Int("count", orphaned))
	}

	sort.SliceStable(lowStock, func(i, j int) bool {
		return lowStock[i].CurrentQuantity < lowStock[j].CurrentQuantity
	})

	coll := collate.New(language.English)
	sort.SliceStable(outOfStock, func(i, j int) bool {
		return coll.CompareString(outOfStock[i].ProductName, outOfStock[j].ProductName) < 0
	})

	stockByCategory := make([]report.CategoryStock, 0, len(categories))
	for _, c := range categories {
		stockByCategory = append(stockByCategory, *byCategory[c])
	}
	sort.SliceStable(stockByCategory, func(i, j int) bool {
		return stockByCategory[i].TotalQuantity > stockByCategory[j].TotalQuantity
	})

	average := 0.0
	if counted > 0 {
		average = round2(float64(totalStock) / float64(counted))
	}

	return envelope(s, report.StockReport{
		TotalProducts:   counted,
		LowStockItems:   lowStock,
		OutOfStockItems: outOfStock,
		StockByCategory: stockByCategory,
		StockSummary: report.StockSummary{
			TotalStock:             totalStock,
			AverageStockPerProduct: average,
			LowStockThreshold:      threshold,
		},
	}), nil
}
