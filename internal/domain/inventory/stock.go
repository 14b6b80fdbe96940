package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// Stock is the on-hand quantity of a single product. There is at most one
// Stock per product.
type Stock struct {
	ProductID       uuid.UUID
	CurrentQuantity int
	UpdatedAt       time.Time
}

// NewStock creates a stock level for a product
func NewStock(productID uuid.UUID, quantity int, now time.Time) (*Stock, error) {
	if productID == uuid.Nil {
		return nil, shared.ErrInvalidInput.WithMessage("Product ID is required")
	}
	if quantity < 0 {
		return nil, shared.ErrInvalidInput.WithMessage("Quantity cannot be negative")
	}
	return &Stock{ProductID: productID, CurrentQuantity: quantity, UpdatedAt: now}, nil
}

// IsAvailable reports whether any units are on hand.
func (s *Stock) IsAvailable() bool {
	return s.CurrentQuantity > 0
}

// CanFulfill reports whether quantity units can be taken.
func (s *Stock) CanFulfill(quantity int) bool {
	return s.CurrentQuantity >= quantity
}

// SetQuantity overwrites the on-hand quantity, e.g. after a stock count.
func (s *Stock) SetQuantity(quantity int, now time.Time) error {
	if quantity < 0 {
		return shared.ErrInvalidInput.WithMessage("Quantity cannot be negative")
	}
	s.CurrentQuantity = quantity
	s.UpdatedAt = now
	return nil
}

// Increase adds received units.
func (s *Stock) Increase(quantity int, now time.Time) error {
	if quantity <= 0 {
		return shared.ErrInvalidInput.WithMessage("Quantity must be positive")
	}
	s.CurrentQuantity += quantity
	s.UpdatedAt = now
	return nil
}

// Decrease removes units, failing with ErrInsufficientStock when fewer are on hand.
func (s *Stock) Decrease(quantity int, now time.Time) error {
	if quantity <= 0 {
		return shared.ErrInvalidInput.WithMessage("Quantity must be positive")
	}
	if !s.CanFulfill(quantity) {
		return shared.ErrInsufficientStock.WithMessage(
			fmt.Sprintf("Insufficient stock: requested %d, available %d", quantity, s.CurrentQuantity))
	}
	s.CurrentQuantity -= quantity
	s.UpdatedAt = now
	return nil
}
