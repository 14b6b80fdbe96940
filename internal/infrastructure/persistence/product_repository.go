package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	return r.find(conn(ctx, r.db))
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Product")
	}
	return m.ToDomain(), nil
}

func (r *GormProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	return r.find(conn(ctx, r.db).Where("is_active = ?", true))
}

func (r *GormProductRepository) FindAvailable(ctx context.Context) ([]catalog.Product, error) {
	return r.find(conn(ctx, r.db).Where("is_active = ? AND stock > ?", true, 0))
}

func (r *GormProductRepository) FindByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	return r.find(conn(ctx, r.db).Where("category = ?", category))
}

// Search uses LOWER(...) LIKE so it behaves the same on postgres and sqlite.
func (r *GormProductRepository) Search(ctx context.Context, term string) ([]catalog.Product, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	return r.find(conn(ctx, r.db).Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern))
}

func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var m models.ProductModel
	m.FromDomain(product)
	return translateError(conn(ctx, r.db).Save(&m).Error, "Product")
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "Product")
	}
	return nil
}

func (r *GormProductRepository) find(q *gorm.DB) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
