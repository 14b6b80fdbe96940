package identity

import (
	"testing"
	"time"

	"github.com/retail/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	bcryptCost = bcrypt.MinCost
	m.Run()
}

func TestNewUser(t *testing.T) {
	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("hashes password and normalizes email", func(t *testing.T) {
		u, err := NewUser("Ana", " Ana@Shop.Example ", "s3cret-pass", "", now)
		require.NoError(t, err)

		assert.Equal(t, "ana@shop.example", u.Email)
		assert.Equal(t, RoleEmployee, u.Role)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
		assert.True(t, u.VerifyPassword("s3cret-pass"))
		assert.False(t, u.VerifyPassword("wrong-pass"))
		assert.True(t, u.CanLogin())
	})

	t.Run("validates input", func(t *testing.T) {
		cases := []struct {
			name, email, password string
			role                  Role
		}{
			{"", "a@b.co", "password1", RoleAdmin},
			{"Ana", "not-an-email", "password1", RoleAdmin},
			{"Ana", "a@b.co", "short", RoleAdmin},
			{"Ana", "a@b.co", "password1", Role("owner")},
		}
		for _, tc := range cases {
			_, err := NewUser(tc.name, tc.email, tc.password, tc.role, now)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		}
	})
}
