package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindAll(ctx context.Context) ([]User, error)

	// FindByID returns shared.ErrNotFound when the user does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail returns shared.ErrNotFound when no user has that email
	FindByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	Save(ctx context.Context, user *User) error
}
