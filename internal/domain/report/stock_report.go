package report

import (
	"time"

	"github.com/google/uuid"
)

// StockStatus is the band a stock quantity falls into relative to a threshold
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
	StockStatusLow        StockStatus = "LOW"
	StockStatusMedium     StockStatus = "MEDIUM"
	StockStatusHigh       StockStatus = "HIGH"
)

// ClassifyStock bands quantity against threshold:
// 0 is out of stock, up to threshold is low, up to twice the threshold is
// medium, anything above is high.
func ClassifyStock(quantity, threshold int) StockStatus {
	switch {
	case quantity == 0:
		return StockStatusOutOfStock
	case quantity <= threshold:
		return StockStatusLow
	case quantity <= 2*threshold:
		return StockStatusMedium
	default:
		return StockStatusHigh
	}
}

// StockReport describes current stock levels across the catalog
type StockReport struct {
	TotalProducts   int             `json:"totalProducts"`
	LowStockItems   []StockItem     `json:"lowStockItems"`
	OutOfStockItems []StockItem     `json:"outOfStockItems"`
	StockByCategory []CategoryStock `json:"stockByCategory"`
	StockSummary    StockSummary    `json:"stockSummary"`
}

// StockItem is a product's stock line in a stock report
type StockItem struct {
	ProductID       uuid.UUID   `json:"productId"`
	ProductName     string      `json:"productName"`
	Category        string      `json:"category"`
	CurrentQuantity int         `json:"currentQuantity"`
	StockStatus     StockStatus `json:"stockStatus"`
	LastUpdated     time.Time   `json:"lastUpdated"`
}

// CategoryStock aggregates stock per category
type CategoryStock struct {
	Category        string `json:"category"`
	TotalProducts   int    `json:"totalProducts"`
	LowStockCount   int    `json:"lowStockCount"`
	OutOfStockCount int    `json:"outOfStockCount"`
	TotalQuantity   int    `json:"totalQuantity"`
}

// StockSummary holds catalog-wide stock totals
type StockSummary struct {
	TotalStock             int     `json:"totalStock"`
	AverageStockPerProduct float64 `json:"averageStockPerProduct"`
	LowStockThreshold      int     `json:"lowStockThreshold"`
}
