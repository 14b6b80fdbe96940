package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/retail/backend/internal/application/inventory"
)

// StockHandler handles stock level endpoints
type StockHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(inventoryService *inventoryapp.InventoryService) *StockHandler {
	return &StockHandler{inventoryService: inventoryService}
}

// List handles GET /stock
func (h *StockHandler) List(c *gin.Context) {
	stock, err := h.inventoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// ListLowStock handles GET /stock/low-stock?threshold=
func (h *StockHandler) ListLowStock(c *gin.Context) {
	threshold, ok := h.queryThreshold(c)
	if !ok {
		return
	}
	stock, err := h.inventoryService.ListLowStock(c.Request.Context(), threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// GetByProductID handles GET /stock/product/:productId
func (h *StockHandler) GetByProductID(c *gin.Context) {
	id, ok := h.ParamUUID(c, "productId")
	if !ok {
		return
	}
	stock, err := h.inventoryService.GetByProductID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// SetQuantity handles PUT /stock/product/:productId
func (h *StockHandler) SetQuantity(c *gin.Context) {
	id, ok := h.ParamUUID(c, "productId")
	if !ok {
		return
	}
	var req inventoryapp.SetQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}
	stock, err := h.inventoryService.SetQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// Increase handles POST /stock/product/:productId/increase
func (h *StockHandler) Increase(c *gin.Context) {
	h.adjust(c, h.inventoryService.Increase)
}

// Decrease handles POST /stock/product/:productId/decrease
func (h *StockHandler) Decrease(c *gin.Context) {
	h.adjust(c, h.inventoryService.Decrease)
}

func (h *StockHandler) adjust(c *gin.Context, apply func(context.Context, uuid.UUID, int) (*inventoryapp.StockResponse, error)) {
	id, ok := h.ParamUUID(c, "productId")
	if !ok {
		return
	}
	var req inventoryapp.AdjustQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}
	stock, err := apply(c.Request.Context(), id, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}
