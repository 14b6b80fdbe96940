package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/retail/backend/internal/application/sales"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *salesapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *salesapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetByID handles GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req salesapp.PlaceOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	order, err := h.orderService.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}
