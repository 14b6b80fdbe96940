package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/report"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func level(id uuid.UUID, qty int) inventory.Stock {
	return inventory.Stock{ProductID: id, CurrentQuantity: qty, UpdatedAt: jan1}
}

func TestReportService_GenerateStockReport(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies stock end to end", func(t *testing.T) {
		f := newFixture()
		p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
		f.stock.On("FindAll", mock.Anything).Return([]inventory.Stock{level(p1, 0), level(p2, 5), level(p3, 25)}, nil)
		f.products.On("FindAll", mock.Anything).Return([]catalog.Product{
			product(p1, "Rod", "fishing-gear"),
			product(p2, "Reel", "fishing-gear"),
			product(p3, "Bait", "bait"),
		}, nil)

		got, err := f.service.GenerateStockReport(ctx, report.DefaultLowStockThreshold)
		require.NoError(t, err)

		data := got.Data
		assert.Equal(t, 3, data.TotalProducts)
		require.Len(t, data.LowStockItems, 1)
		assert.Equal(t, report.StockItem{
			ProductID:       p2,
			ProductName:     "Reel",
			Category:        "fishing-gear",
			CurrentQuantity: 5,
			StockStatus:     report.StockStatusLow,
			LastUpdated:     jan1,
		}, data.LowStockItems[0])
		require.Len(t, data.OutOfStockItems, 1)
		assert.Equal(t, p1, data.OutOfStockItems[0].ProductID)
		assert.Equal(t, report.StockStatusOutOfStock, data.OutOfStockItems[0].StockStatus)

		assert.Equal(t, []report.CategoryStock{
			{Category: "bait", TotalProducts: 1, TotalQuantity: 25},
			{Category: "fishing-gear", TotalProducts: 2, LowStockCount: 1, OutOfStockCount: 1, TotalQuantity: 5},
		}, data.StockByCategory)
		assert.Equal(t, report.StockSummary{TotalStock: 30, AverageStockPerProduct: 10, LowStockThreshold: 10}, data.StockSummary)
		assert.Equal(t, fixedNow, got.GeneratedAt)
		f.assertExpectations(t)
	})

	t.Run("negative threshold fails before any fetch", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.GenerateStockReport(ctx, -1)

		assert.ErrorIs(t, err, shared.ErrInvalidThreshold)
		f.stock.AssertNotCalled(t, "FindAll", mock.Anything)
		f.products.AssertNotCalled(t, "FindAll", mock.Anything)
	})

	t.Run("skips stock rows without a product", func(t *testing.T) {
		f := newFixture()
		known, orphan := uuid.New(), uuid.New()
		f.stock.On("FindAll", mock.Anything).Return([]inventory.Stock{level(orphan, 0), level(known, 7)}, nil)
		f.products.On("FindAll", mock.Anything).Return([]catalog.Product{product(known, "Net", "nets")}, nil)

		got, err := f.service.GenerateStockReport(ctx, 10)
		require.NoError(t, err)

		assert.Equal(t, 1, got.Data.TotalProducts)
		assert.Empty(t, got.Data.OutOfStockItems)
		assert.Equal(t, 7, got.Data.StockSummary.TotalStock)
		assert.Equal(t, 7.0, got.Data.StockSummary.AverageStockPerProduct)
	})

	t.Run("sorts the item lists", func(t *testing.T) {
		f := newFixture()
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}
		f.stock.On("FindAll", mock.Anything).Return([]inventory.Stock{
			level(ids[0], 9),
			level(ids[1], 0),
			level(ids[2], 2),
			level(ids[3], 0),
			level(ids[4], 0),
			level(ids[5], 4),
		}, nil)
		f.products.On("FindAll", mock.Anything).Return([]catalog.Product{
			product(ids[0], "Lure", "a"),
			product(ids[1], "waders", "b"),
			product(ids[2], "Hook", "c"),
			product(ids[3], "Anchor", "b"),
			product(ids[4], "Buoy", "b"),
			product(ids[5], "Line", "c"),
		}, nil)

		got, err := f.service.GenerateStockReport(ctx, 10)
		require.NoError(t, err)

		var lowQty []int
		for _, it := range got.Data.LowStockItems {
			lowQty = append(lowQty, it.CurrentQuantity)
		}
		assert.Equal(t, []int{2, 4, 9}, lowQty)

		var outNames []string
		for _, it := range got.Data.OutOfStockItems {
			outNames = append(outNames, it.ProductName)
		}
		assert.Equal(t, []string{"Anchor", "Buoy", "waders"}, outNames)

		var cats []string
		for _, c := range got.Data.StockByCategory {
			cats = append(cats, c.Category)
		}
		assert.Equal(t, []string{"a", "c", "b"}, cats)
	})

	t.Run("status bands follow the threshold", func(t *testing.T) {
		f := newFixture()
		low, medium, high := uuid.New(), uuid.New(), uuid.New()
		f.stock.On("FindAll", mock.Anything).Return([]inventory.Stock{level(low, 3), level(medium, 4), level(high, 7)}, nil)
		f.products.On("FindAll", mock.Anything).Return([]catalog.Product{
			product(low, "Low", "x"), product(medium, "Medium", "x"), product(high, "High", "x"),
		}, nil)

		got, err := f.service.GenerateStockReport(ctx, 3)
		require.NoError(t, err)

		require.Len(t, got.Data.LowStockItems, 1)
		assert.Equal(t, low, got.Data.LowStockItems[0].ProductID)
		assert.Equal(t, 1, got.Data.StockByCategory[0].LowStockCount)
		assert.Equal(t, 3, got.Data.StockSummary.LowStockThreshold)
	})

	t.Run("average is rounded to two decimals", func(t *testing.T) {
		f := newFixture()
		a, b, c := uuid.New(), uuid.New(), uuid.New()
		f.stock.On("FindAll", mock.Anything).Return([]inventory.Stock{level(a, 3), level(b, 3), level(c, 4)}, nil)
		f.products.On("FindAll", mock.Anything).Return([]catalog.Product{
			product(a, "A", "x"), product(b, "B", "x"), product(c, "C", "x"),
		}, nil)

		got, err := f.service.GenerateStockReport(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 3.33, got.Data.StockSummary.AverageStockPerProduct)
	})

	t.Run("empty inventory", func(t *testing.T) {
		f := newFixture()
		f.stock.On("FindAll", mock.Anything).Return([]inventory.Stock{}, nil)
		f.products.On("FindAll", mock.Anything).Return([]catalog.Product{}, nil)

		got, err := f.service.GenerateStockReport(ctx, 0)
		require.NoError(t, err)

		assert.Zero(t, got.Data.TotalProducts)
		assert.Zero(t, got.Data.StockSummary.AverageStockPerProduct)
		assert.NotNil(t, got.Data.LowStockItems)
		assert.NotNil(t, got.Data.OutOfStockItems)
		assert.NotNil(t, got.Data.StockByCategory)
	})

	t.Run("repeated calls produce identical data", func(t *testing.T) {
		f := newFixture(WithClock(shared.ClockFunc(time.Now)))
		id := uuid.New()
		f.stock.On("FindAll", mock.Anything).Return([]inventory.Stock{level(id, 1)}, nil)
		f.products.On("FindAll", mock.Anything).Return([]catalog.Product{product(id, "A", "x")}, nil)

		first, err := f.service.GenerateStockReport(ctx, 10)
		require.NoError(t, err)
		second, err := f.service.GenerateStockReport(ctx, 10)
		require.NoError(t, err)

		assert.Equal(t, first.Data, second.Data)
	})
}
