package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindAll returns every product, active or not
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID returns shared.ErrNotFound when the product does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	FindActive(ctx context.Context) ([]Product, error)

	// FindAvailable returns active products with stock > 0
	FindAvailable(ctx context.Context) ([]Product, error)

	FindByCategory(ctx context.Context, category string) ([]Product, error)

	// Search matches products whose name contains term, case-insensitively
	Search(ctx context.Context, term string) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	Delete(ctx context.Context, id uuid.UUID) error
}
