package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// totalTolerance is the accepted gap between an order total and its line subtotals.
var totalTolerance = decimal.RequireFromString("0.01")

// OrderLine is a snapshot of a product at the time it was ordered.
type OrderLine struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}

// NewOrderLine computes the subtotal from price and quantity.
func NewOrderLine(productID uuid.UUID, name string, unitPrice decimal.Decimal, quantity int) (OrderLine, error) {
	if productID == uuid.Nil {
		return OrderLine{}, shared.ErrInvalidInput.WithMessage("Order line product ID is required")
	}
	if quantity <= 0 {
		return OrderLine{}, shared.ErrInvalidInput.WithMessage("Order line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return OrderLine{}, shared.ErrInvalidInput.WithMessage("Order line price cannot be negative")
	}
	return OrderLine{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Order is a customer sale with its line items embedded.
type Order struct {
	shared.BaseEntity
	Lines     []OrderLine
	OrderDate time.Time
	Status    OrderStatus
	Total     decimal.Decimal
}

// NewOrder creates a pending order whose total is the sum of its line subtotals.
func NewOrder(lines []OrderLine, orderDate time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, shared.ErrInvalidInput.WithMessage("Order must have at least one line")
	}
	o := &Order{
		BaseEntity: shared.NewBaseEntity(orderDate),
		Lines:      lines,
		OrderDate:  orderDate,
		Status:     OrderStatusPending,
		Total:      sumSubtotals(lines),
	}
	return o, nil
}

// ValidateTotal reports whether Total matches the line subtotals within 0.01.
func (o *Order) ValidateTotal() bool {
	return sumSubtotals(o.Lines).Sub(o.Total).Abs().LessThan(totalTolerance)
}

func (o *Order) IsPending() bool   { return o.Status == OrderStatusPending }
func (o *Order) IsCompleted() bool { return o.Status == OrderStatusCompleted }
func (o *Order) IsCancelled() bool { return o.Status == OrderStatusCancelled }

// TotalItems is the number of units across all lines.
func (o *Order) TotalItems() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

func sumSubtotals(lines []OrderLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal)
	}
	return sum
}
