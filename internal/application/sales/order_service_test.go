package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/sales"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2023, 2, 14, 15, 30, 0, 0, time.UTC)

type fixture struct {
	svc      *OrderService
	orders   *MockOrderRepository
	products *MockProductRepository
	stock    *MockStockRepository
}

func newFixture() fixture {
	f := fixture{
		orders:   new(MockOrderRepository),
		products: new(MockProductRepository),
		stock:    new(MockStockRepository),
	}
	f.svc = NewOrderService(f.orders, f.products, f.stock, passthroughTx{}, shared.FixedClock(now), nil)
	return f
}

func product(t *testing.T, name, price string, qty int) *catalog.Product {
	p, err := catalog.NewProduct(name, "Tools", decimal.RequireFromString(price), qty, now.Add(-24*time.Hour))
	require.NoError(t, err)
	return p
}

func stockOf(t *testing.T, p *catalog.Product) *inventory.Stock {
	s, err := inventory.NewStock(p.ID, p.Stock, now.Add(-24*time.Hour))
	require.NoError(t, err)
	return s
}

func TestOrderService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("prices lines from catalog and decrements stock", func(t *testing.T) {
		f := newFixture()
		hammer := product(t, "Hammer", "12.50", 10)
		nails := product(t, "Nails", "0.10", 500)
		hammerStock, nailStock := stockOf(t, hammer), stockOf(t, nails)

		f.products.On("FindByID", mock.Anything, hammer.ID).Return(hammer, nil)
		f.products.On("FindByID", mock.Anything, nails.ID).Return(nails, nil)
		f.stock.On("FindByProductID", mock.Anything, hammer.ID).Return(hammerStock, nil)
		f.stock.On("FindByProductID", mock.Anything, nails.ID).Return(nailStock, nil)
		f.stock.On("Save", mock.Anything, mock.Anything).Return(nil).Twice()
		f.orders.On("Save", mock.Anything, mock.AnythingOfType("*sales.Order")).Return(nil)

		resp, err := f.svc.PlaceOrder(ctx, PlaceOrderRequest{Items: []OrderItemRequest{
			{ProductID: hammer.ID, Quantity: 2},
			{ProductID: nails.ID, Quantity: 100},
		}})

		require.NoError(t, err)
		assert.True(t, resp.Total.Equal(decimal.RequireFromString("35")))
		assert.Equal(t, 102, resp.TotalItems)
		assert.Equal(t, sales.OrderStatusPending, resp.Status)
		assert.Equal(t, now, resp.OrderDate)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Hammer", resp.Items[0].ProductName)
		assert.True(t, resp.Items[0].Subtotal.Equal(decimal.RequireFromString("25")))
		assert.Equal(t, 8, hammerStock.CurrentQuantity)
		assert.Equal(t, 400, nailStock.CurrentQuantity)
		f.orders.AssertExpectations(t)
		f.stock.AssertExpectations(t)
	})

	t.Run("insufficient stock aborts before saving the order", func(t *testing.T) {
		f := newFixture()
		hammer := product(t, "Hammer", "12.50", 1)
		f.products.On("FindByID", mock.Anything, hammer.ID).Return(hammer, nil)
		f.stock.On("FindByProductID", mock.Anything, hammer.ID).Return(stockOf(t, hammer), nil)

		_, err := f.svc.PlaceOrder(ctx, PlaceOrderRequest{Items: []OrderItemRequest{{ProductID: hammer.ID, Quantity: 3}}})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		f.stock.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown product is invalid input", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.products.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.PlaceOrder(ctx, PlaceOrderRequest{Items: []OrderItemRequest{{ProductID: id, Quantity: 1}}})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("inactive product is rejected", func(t *testing.T) {
		f := newFixture()
		hammer := product(t, "Hammer", "12.50", 5)
		require.NoError(t, hammer.Deactivate(now))
		f.products.On("FindByID", mock.Anything, hammer.ID).Return(hammer, nil)

		_, err := f.svc.PlaceOrder(ctx, PlaceOrderRequest{Items: []OrderItemRequest{{ProductID: hammer.ID, Quantity: 1}}})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("missing stock row means nothing to sell", func(t *testing.T) {
		f := newFixture()
		hammer := product(t, "Hammer", "12.50", 5)
		f.products.On("FindByID", mock.Anything, hammer.ID).Return(hammer, nil)
		f.stock.On("FindByProductID", mock.Anything, hammer.ID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.PlaceOrder(ctx, PlaceOrderRequest{Items: []OrderItemRequest{{ProductID: hammer.ID, Quantity: 1}}})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("rejects empty and duplicate items", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.PlaceOrder(ctx, PlaceOrderRequest{})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		id := uuid.New()
		_, err = f.svc.PlaceOrder(ctx, PlaceOrderRequest{Items: []OrderItemRequest{
			{ProductID: id, Quantity: 1}, {ProductID: id, Quantity: 2},
		}})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		f.products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestOrderService_GetByID(t *testing.T) {
	ctx := context.Background()
	line, err := sales.NewOrderLine(uuid.New(), "Hammer", decimal.RequireFromString("12.50"), 2)
	require.NoError(t, err)

	t.Run("returns a consistent order", func(t *testing.T) {
		f := newFixture()
		order, err := sales.NewOrder([]sales.OrderLine{line}, now)
		require.NoError(t, err)
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)

		resp, err := f.svc.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, resp.ID)
	})

	t.Run("fails when the stored total drifted", func(t *testing.T) {
		f := newFixture()
		order, err := sales.NewOrder([]sales.OrderLine{line}, now)
		require.NoError(t, err)
		order.Total = decimal.RequireFromString("30")
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err = f.svc.GetByID(ctx, order.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("not found passes through", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.orders.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	line, err := sales.NewOrderLine(uuid.New(), "Saw", decimal.NewFromInt(20), 1)
	require.NoError(t, err)
	order, err := sales.NewOrder([]sales.OrderLine{line}, now)
	require.NoError(t, err)
	f.orders.On("FindAll", ctx).Return([]sales.Order{*order}, nil)

	resp, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Saw", resp[0].Items[0].ProductName)
}
