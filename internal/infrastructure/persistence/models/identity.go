package models

import "github.com/retail/backend/internal/domain/identity"

// UserModel is the persistence model for identity.User
type UserModel struct {
	BaseModel
	Name         string        `gorm:"type:varchar(255);not null"`
	Email        string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string        `gorm:"column:password;type:varchar(255);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'employee'"`
	IsActive     bool          `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.toDomain(),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		IsActive:     m.IsActive,
	}
}

func (m *UserModel) FromDomain(u *identity.User) {
	m.BaseModel.fromDomain(u.BaseEntity)
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.IsActive = u.IsActive
}
