package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/inventory"
)

// SetQuantityRequest overwrites a stock level
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// AdjustQuantityRequest increases or decreases a stock level
type AdjustQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// StockResponse represents a stock level in API responses
type StockResponse struct {
	ProductID       uuid.UUID `json:"productId"`
	CurrentQuantity int       `json:"currentQuantity"`
	IsAvailable     bool      `json:"isAvailable"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToStockResponse converts a domain Stock to StockResponse
func ToStockResponse(s *inventory.Stock) StockResponse {
	return StockResponse{
		ProductID:       s.ProductID,
		CurrentQuantity: s.CurrentQuantity,
		IsAvailable:     s.IsAvailable(),
		UpdatedAt:       s.UpdatedAt,
	}
}

// ToStockResponses converts a slice of domain Stocks
func ToStockResponses(stocks []inventory.Stock) []StockResponse {
	out := make([]StockResponse, len(stocks))
	for i := range stocks {
		out[i] = ToStockResponse(&stocks[i])
	}
	return out
}
