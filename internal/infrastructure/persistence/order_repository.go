package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/sales"
	"github.com/retail/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindAll(ctx context.Context) ([]sales.Order, error) {
	return r.find(conn(ctx, r.db))
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	var m models.OrderModel
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Order")
	}
	return m.ToDomain(), nil
}

func (r *GormOrderRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]sales.Order, error) {
	return r.find(conn(ctx, r.db).Where("order_date BETWEEN ? AND ?", start, end))
}

func (r *GormOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	var m models.OrderModel
	m.FromDomain(order)
	return translateError(conn(ctx, r.db).Save(&m).Error, "Order")
}

func (r *GormOrderRepository) find(q *gorm.DB) ([]sales.Order, error) {
	var rows []models.OrderModel
	if err := q.Order("order_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]sales.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}
