package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	FindAll(ctx context.Context) ([]Order, error)

	// FindByID returns shared.ErrNotFound when the order does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByDateRange returns orders with start <= order_date <= end
	FindByDateRange(ctx context.Context, start, end time.Time) ([]Order, error)

	Save(ctx context.Context, order *Order) error
}
