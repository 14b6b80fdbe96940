package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockRepository implements inventory.StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) FindAll(ctx context.Context) ([]inventory.Stock, error) {
	var rows []models.StockModel
	if err := conn(ctx, r.db).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toStocks(rows), nil
}

func (r *GormStockRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.Stock, error) {
	var m models.StockModel
	if err := conn(ctx, r.db).First(&m, "product_id = ?", productID).Error; err != nil {
		return nil, translateError(err, "Stock")
	}
	return m.ToDomain(), nil
}

func (r *GormStockRepository) FindLowStock(ctx context.Context, threshold int) ([]inventory.Stock, error) {
	var rows []models.StockModel
	if err := conn(ctx, r.db).
		Where("current_quantity <= ?", threshold).
		Order("current_quantity ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toStocks(rows), nil
}

// Save upserts the stock row and mirrors the quantity onto products.stock in
// the same transaction.
func (r *GormStockRepository) Save(ctx context.Context, stock *inventory.Stock) error {
	var m models.StockModel
	m.FromDomain(stock)

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		return tx.Model(&models.ProductModel{}).
			Where("id = ?", stock.ProductID).
			Updates(map[string]any{"stock": stock.CurrentQuantity, "updated_at": stock.UpdatedAt}).Error
	})
}

func toStocks(rows []models.StockModel) []inventory.Stock {
	out := make([]inventory.Stock, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}
