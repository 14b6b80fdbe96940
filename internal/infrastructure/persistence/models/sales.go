package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// OrderLineModel is stored inside the orders.products JSON column.
type OrderLineModel struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderModel is the persistence model for sales.Order
type OrderModel struct {
	BaseModel
	Products  []OrderLineModel  `gorm:"type:json;serializer:json;not null"`
	OrderDate time.Time         `gorm:"not null;index"`
	Status    sales.OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Total     decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (m *OrderModel) ToDomain() *sales.Order {
	lines := make([]sales.OrderLine, len(m.Products))
	for i, l := range m.Products {
		lines[i] = sales.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.Price,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		}
	}
	return &sales.Order{
		BaseEntity: m.BaseModel.toDomain(),
		Lines:      lines,
		OrderDate:  m.OrderDate,
		Status:     m.Status,
		Total:      m.Total,
	}
}

func (m *OrderModel) FromDomain(o *sales.Order) {
	m.BaseModel.fromDomain(o.BaseEntity)
	m.Products = make([]OrderLineModel, len(o.Lines))
	for i, l := range o.Lines {
		m.Products[i] = OrderLineModel{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		}
	}
	m.OrderDate = o.OrderDate
	m.Status = o.Status
	m.Total = o.Total
}
