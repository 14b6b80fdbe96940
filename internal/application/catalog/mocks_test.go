package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) products(args mock.Arguments) ([]catalog.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *MockProductRepository) FindAvailable(ctx context.Context) ([]catalog.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	return m.products(m.Called(ctx, category))
}

func (m *MockProductRepository) Search(ctx context.Context, term string) ([]catalog.Product, error) {
	return m.products(m.Called(ctx, term))
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockStockRepository is a mock implementation of inventory.StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindAll(ctx context.Context) ([]inventory.Stock, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.Stock, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) FindLowStock(ctx context.Context, threshold int) ([]inventory.Stock, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) Save(ctx context.Context, stock *inventory.Stock) error {
	return m.Called(ctx, stock).Error(0)
}

// passthroughTx runs the function without a real transaction
type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
