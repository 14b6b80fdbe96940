package models

import (
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	BaseModel
	Name     string          `gorm:"type:varchar(255);not null"`
	Category string          `gorm:"type:varchar(100);not null;index"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock    int             `gorm:"not null;default:0"`
	IsActive bool            `gorm:"not null"`
}

func (ProductModel) TableName() string {
	return "products"
}

func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.toDomain(),
		Name:       m.Name,
		Category:   m.Category,
		Price:      m.Price,
		Stock:      m.Stock,
		IsActive:   m.IsActive,
	}
}

func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.BaseModel.fromDomain(p.BaseEntity)
	m.Name = p.Name
	m.Category = p.Category
	m.Price = p.Price
	m.Stock = p.Stock
	m.IsActive = p.IsActive
}
