package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockRepository defines the interface for stock persistence
type StockRepository interface {
	FindAll(ctx context.Context) ([]Stock, error)

	// FindByProductID returns shared.ErrNotFound when the product has no stock row
	FindByProductID(ctx context.Context, productID uuid.UUID) (*Stock, error)

	// FindLowStock returns rows with quantity <= threshold, lowest first
	FindLowStock(ctx context.Context, threshold int) ([]Stock, error)

	// Save creates or updates the row keyed by ProductID
	Save(ctx context.Context, stock *Stock) error
}
