package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/sales"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderService handles order placement and lookup
type OrderService struct {
	orderRepo   sales.OrderRepository
	productRepo catalog.ProductRepository
	stockRepo   inventory.StockRepository
	tx          shared.Transactor
	clock       shared.Clock
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	stockRepo inventory.StockRepository,
	tx shared.Transactor,
	clock shared.Clock,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		tx:          tx,
		clock:       clock,
		logger:      logger.Named("sales"),
	}
}

// List returns every order, newest first
func (s *OrderService) List(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// GetByID returns an order after checking its total against its lines
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.ValidateTotal() {
		s.logger.Error("Order total does not match its lines",
			zap.String("order_id", id.String()),
			zap.String("total", order.Total.String()),
		)
		return nil, shared.ErrInvalidState.WithMessage("Order data integrity check failed: total does not match line subtotals")
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// PlaceOrder prices each item from the catalog, takes the units out of stock
// and records a pending order. Either all of it happens or none of it does.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (_ *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sales", "place_order", "items", len(req.Items))
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	if len(req.Items) == 0 {
		return nil, shared.ErrInvalidInput.WithMessage("Order must have at least one item")
	}
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		if seen[item.ProductID] {
			return nil, shared.ErrInvalidInput.WithMessage(
				fmt.Sprintf("Product %s appears more than once", item.ProductID))
		}
		seen[item.ProductID] = true
	}

	var order *sales.Order
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		now := s.clock.Now()
		lines := make([]sales.OrderLine, 0, len(req.Items))

		for _, item := range req.Items {
			product, err := s.productRepo.FindByID(ctx, item.ProductID)
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrInvalidInput.WithMessage(fmt.Sprintf("Product %s does not exist", item.ProductID))
			}
			if err != nil {
				return err
			}
			if !product.IsActive {
				return shared.ErrInvalidState.WithMessage(fmt.Sprintf("Product %q is not for sale", product.Name))
			}

			stock, err := s.stockRepo.FindByProductID(ctx, item.ProductID)
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrInsufficientStock.WithMessage(fmt.Sprintf("Product %q has no stock", product.Name))
			}
			if err != nil {
				return err
			}
			if err := stock.Decrease(item.Quantity, now); err != nil {
				return err
			}
			if err := s.stockRepo.Save(ctx, stock); err != nil {
				return err
			}

			line, err := sales.NewOrderLine(product.ID, product.Name, product.Price, item.Quantity)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		var err error
		if order, err = sales.NewOrder(lines, now); err != nil {
			return err
		}
		if !order.ValidateTotal() {
			return shared.ErrInvalidState.WithMessage("Order total does not match line subtotals")
		}
		return s.orderRepo.Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, order.ID.String())
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.Int("items", order.TotalItems()),
		zap.String("total", order.Total.StringFixed(2)),
	)
	resp := ToOrderResponse(order)
	return &resp, nil
}
