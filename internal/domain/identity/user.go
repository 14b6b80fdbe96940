package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/retail/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse permission level of a user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// bcryptCost is a package variable so tests can lower it.
var bcryptCost = 12

// User is an account that can log in. Employees record attendance under their user ID.
type User struct {
	shared.BaseEntity
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
}

// NewUser creates an active user with a bcrypt-hashed password
func NewUser(name, email, password string, role Role, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, shared.ErrInvalidInput.WithMessage("Name cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.ErrInvalidInput.WithMessage("Invalid email format")
	}
	if role == "" {
		role = RoleEmployee
	}
	if !role.IsValid() {
		return nil, shared.ErrInvalidInput.WithMessage("Unknown role: " + string(role))
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(now),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}, nil
}

// VerifyPassword compares password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanLogin reports whether the account may authenticate.
func (u *User) CanLogin() bool {
	return u.IsActive
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.ErrInvalidInput.WithMessage("Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.ErrInvalidInput.WithMessage("Password cannot exceed 72 characters")
	}
	return nil
}
