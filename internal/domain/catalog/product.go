package catalog

import (
	"strings"
	"time"

	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item in the catalog.
// Stock is informational; the authoritative quantity lives in inventory.Stock.
type Product struct {
	shared.BaseEntity
	Name     string
	Category string
	Price    decimal.Decimal
	Stock    int
	IsActive bool
}

// NewProduct creates an active product
func NewProduct(name, category string, price decimal.Decimal, stock int, now time.Time) (*Product, error) {
	p := &Product{
		BaseEntity: shared.NewBaseEntity(now),
		IsActive:   true,
	}
	if err := p.apply(name, category, price); err != nil {
		return nil, err
	}
	if err := validateStock(stock); err != nil {
		return nil, err
	}
	p.Stock = stock
	return p, nil
}

// IsAvailable reports whether the product can currently be sold.
func (p *Product) IsAvailable() bool {
	return p.IsActive && p.Stock > 0
}

// Update replaces the descriptive fields and price.
func (p *Product) Update(name, category string, price decimal.Decimal, now time.Time) error {
	if err := p.apply(name, category, price); err != nil {
		return err
	}
	p.Touch(now)
	return nil
}

// UpdateStock sets the informational stock count.
func (p *Product) UpdateStock(quantity int, now time.Time) error {
	if err := validateStock(quantity); err != nil {
		return err
	}
	p.Stock = quantity
	p.Touch(now)
	return nil
}

// Deactivate hides the product from sale. Deactivating twice is an error.
func (p *Product) Deactivate(now time.Time) error {
	if !p.IsActive {
		return shared.ErrInvalidState.WithMessage("Product is already inactive")
	}
	p.IsActive = false
	p.Touch(now)
	return nil
}

func (p *Product) apply(name, category string, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return shared.ErrInvalidInput.WithMessage("Product name cannot be empty")
	}
	if len(name) > 255 {
		return shared.ErrInvalidInput.WithMessage("Product name cannot exceed 255 characters")
	}
	if category == "" {
		return shared.ErrInvalidInput.WithMessage("Product category cannot be empty")
	}
	if !price.IsPositive() {
		return shared.ErrInvalidInput.WithMessage("Product price must be greater than zero")
	}
	p.Name = name
	p.Category = category
	p.Price = price.Round(2)
	return nil
}

func validateStock(quantity int) error {
	if quantity < 0 {
		return shared.ErrInvalidInput.WithMessage("Product stock cannot be negative")
	}
	return nil
}
