package report

import (
	"context"

	"github.com/retail/backend/internal/domain/attendance"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/sales"
	"github.com/stretchr/testify/mock"
)

type MockOrderFinder struct {
	mock.Mock
}

func (m *MockOrderFinder) FindAll(ctx context.Context) ([]sales.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Order), args.Error(1)
}

type MockProductFinder struct {
	mock.Mock
}

func (m *MockProductFinder) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

type MockStockFinder struct {
	mock.Mock
}

func (m *MockStockFinder) FindAll(ctx context.Context) ([]inventory.Stock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Stock), args.Error(1)
}

type MockAttendanceFinder struct {
	mock.Mock
}

func (m *MockAttendanceFinder) FindAll(ctx context.Context) ([]attendance.Attendance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attendance.Attendance), args.Error(1)
}
