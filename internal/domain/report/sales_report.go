package report

import "github.com/google/uuid"

// SalesReport summarizes orders placed within a period
type SalesReport struct {
	TotalSales      int             `json:"totalSales"`
	TotalRevenue    float64         `json:"totalRevenue"`
	TopProducts     []ProductSales  `json:"topProducts"`
	SalesByCategory []CategorySales `json:"salesByCategory"`
	ReportPeriod    ReportPeriod    `json:"reportPeriod"`
}

// ProductSales is one product's contribution to a sales report
type ProductSales struct {
	ProductID         uuid.UUID `json:"productId"`
	ProductName       string    `json:"productName"`
	Category          string    `json:"category"`
	TotalQuantitySold int       `json:"totalQuantitySold"`
	TotalRevenue      float64   `json:"totalRevenue"`
	AveragePrice      float64   `json:"averagePrice"` // mean of observed unit prices, not revenue / quantity
}

// CategorySales rolls product sales up to their category
type CategorySales struct {
	Category          string  `json:"category"`
	TotalQuantitySold int     `json:"totalQuantitySold"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// UnknownCategory labels sales of products that no longer exist in the catalog.
const UnknownCategory = "Unknown"
