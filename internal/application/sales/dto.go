package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest represents a request to place an order
type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemRequest is one requested product and quantity
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// OrderItemResponse is an order line in API responses
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID         uuid.UUID           `json:"id"`
	Items      []OrderItemResponse `json:"items"`
	TotalItems int                 `json:"totalItems"`
	Total      decimal.Decimal     `json:"total"`
	Status     sales.OrderStatus   `json:"status"`
	OrderDate  time.Time           `json:"orderDate"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *sales.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = OrderItemResponse{
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			Price:       l.UnitPrice,
			Subtotal:    l.Subtotal,
		}
	}
	return OrderResponse{
		ID:         o.ID,
		Items:      items,
		TotalItems: o.TotalItems(),
		Total:      o.Total,
		Status:     o.Status,
		OrderDate:  o.OrderDate,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []sales.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}
