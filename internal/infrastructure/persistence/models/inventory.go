package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/inventory"
)

// StockModel is the persistence model for inventory.Stock. ProductID is the key.
type StockModel struct {
	ProductID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	CurrentQuantity int       `gorm:"not null;default:0"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (StockModel) TableName() string {
	return "stock"
}

func (m *StockModel) ToDomain() *inventory.Stock {
	return &inventory.Stock{
		ProductID:       m.ProductID,
		CurrentQuantity: m.CurrentQuantity,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (m *StockModel) FromDomain(s *inventory.Stock) {
	m.ProductID = s.ProductID
	m.CurrentQuantity = s.CurrentQuantity
	m.UpdatedAt = s.UpdatedAt
}
