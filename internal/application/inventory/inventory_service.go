package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InventoryService handles stock level operations
type InventoryService struct {
	stockRepo inventory.StockRepository
	tx        shared.Transactor
	clock     shared.Clock
	logger    *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(stockRepo inventory.StockRepository, tx shared.Transactor, clock shared.Clock, logger *zap.Logger) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		stockRepo: stockRepo,
		tx:        tx,
		clock:     clock,
		logger:    logger.Named("inventory"),
	}
}

// List returns every stock row
func (s *InventoryService) List(ctx context.Context) ([]StockResponse, error) {
	stocks, err := s.stockRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToStockResponses(stocks), nil
}

// ListLowStock returns rows at or below threshold, lowest first
func (s *InventoryService) ListLowStock(ctx context.Context, threshold int) ([]StockResponse, error) {
	if threshold < 0 {
		return nil, shared.ErrInvalidThreshold
	}
	stocks, err := s.stockRepo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return ToStockResponses(stocks), nil
}

// GetByProductID returns the stock row of a product
func (s *InventoryService) GetByProductID(ctx context.Context, productID uuid.UUID) (*StockResponse, error) {
	stock, err := s.stockRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ToStockResponse(stock)
	return &resp, nil
}

// SetQuantity overwrites the quantity, creating the row if the product has none yet
func (s *InventoryService) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*StockResponse, error) {
	return s.mutate(ctx, productID, true, func(stock *inventory.Stock) error {
		return stock.SetQuantity(quantity, s.clock.Now())
	})
}

// Increase adds received units
func (s *InventoryService) Increase(ctx context.Context, productID uuid.UUID, quantity int) (*StockResponse, error) {
	return s.mutate(ctx, productID, false, func(stock *inventory.Stock) error {
		return stock.Increase(quantity, s.clock.Now())
	})
}

// Decrease removes units, failing with ErrInsufficientStock
func (s *InventoryService) Decrease(ctx context.Context, productID uuid.UUID, quantity int) (*StockResponse, error) {
	return s.mutate(ctx, productID, false, func(stock *inventory.Stock) error {
		return stock.Decrease(quantity, s.clock.Now())
	})
}

// mutate loads, changes and saves a stock row in one transaction.
func (s *InventoryService) mutate(ctx context.Context, productID uuid.UUID, createMissing bool, change func(*inventory.Stock) error) (*StockResponse, error) {
	var stock *inventory.Stock
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		stock, err = s.stockRepo.FindByProductID(ctx, productID)
		if err != nil {
			if !createMissing || !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if stock, err = inventory.NewStock(productID, 0, s.clock.Now()); err != nil {
				return err
			}
		}
		if err := change(stock); err != nil {
			return err
		}
		return s.stockRepo.Save(ctx, stock)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Stock updated",
		zap.String("product_id", productID.String()),
		zap.Int("quantity", stock.CurrentQuantity),
	)
	resp := ToStockResponse(stock)
	return &resp, nil
}
