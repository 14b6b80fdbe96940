package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/auth"
	"github.com/retail/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var now = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) user(args mock.Arguments) (*identity.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

type testEnv struct {
	svc       *AuthService
	users     *MockUserRepository
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
}

func newTestEnv(t *testing.T) testEnv {
	clock := shared.FixedClock(now)
	jwtService, err := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "retail-test",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
	}, clock)
	require.NoError(t, err)

	env := testEnv{
		users:     new(MockUserRepository),
		jwt:       jwtService,
		blacklist: auth.NewInMemoryTokenBlacklist(clock),
	}
	env.svc = NewAuthService(env.users, jwtService, env.blacklist, clock, nil)
	return env
}

// storedUser builds a user with a cheap hash so tests stay fast
func storedUser(t *testing.T, password string) *identity.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &identity.User{
		BaseEntity:   shared.NewBaseEntity(now.Add(-time.Hour)),
		Name:         "Ana",
		Email:        "ana@shop.example",
		PasswordHash: string(hash),
		Role:         identity.RoleManager,
		IsActive:     true,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an employee by default", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("ExistsByEmail", ctx, "new@shop.example").Return(false, nil)
		env.users.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := env.svc.Register(ctx, RegisterRequest{Name: "New", Email: "New@Shop.example", Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, "new@shop.example", resp.Email)
		assert.Equal(t, "employee", resp.Role)
		assert.True(t, resp.IsActive)
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("ExistsByEmail", ctx, "ana@shop.example").Return(true, nil)

		_, err := env.svc.Register(ctx, RegisterRequest{Name: "Ana", Email: "ana@shop.example", Password: "password123"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		env.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues tokens for valid credentials", func(t *testing.T) {
		env := newTestEnv(t)
		user := storedUser(t, "password123")
		env.users.On("FindByEmail", ctx, user.Email).Return(user, nil)

		resp, err := env.svc.Login(ctx, LoginRequest{Email: user.Email, Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, user.ID, resp.User.ID)
		claims, err := env.jwt.ValidateAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "manager", claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		env := newTestEnv(t)
		user := storedUser(t, "password123")
		env.users.On("FindByEmail", ctx, user.Email).Return(user, nil)

		_, err := env.svc.Login(ctx, LoginRequest{Email: user.Email, Password: "nope-nope"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("unknown email looks like a wrong password", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("FindByEmail", ctx, "ghost@shop.example").Return(nil, shared.ErrNotFound)

		_, err := env.svc.Login(ctx, LoginRequest{Email: "ghost@shop.example", Password: "password123"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		assert.EqualError(t, err, errInvalidCredentials.Error())
	})

	t.Run("inactive account", func(t *testing.T) {
		env := newTestEnv(t)
		user := storedUser(t, "password123")
		user.IsActive = false
		env.users.On("FindByEmail", ctx, user.Email).Return(user, nil)

		_, err := env.svc.Login(ctx, LoginRequest{Email: user.Email, Password: "password123"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		env := newTestEnv(t)
		user := storedUser(t, "password123")
		env.users.On("FindByID", ctx, user.ID).Return(user, nil)
		pair, err := env.jwt.GenerateTokenPair(auth.Subject{UserID: user.ID, Email: user.Email})
		require.NoError(t, err)

		resp, err := env.svc.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)

		_, err = env.svc.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		env := newTestEnv(t)
		pair, err := env.jwt.GenerateTokenPair(auth.Subject{UserID: uuid.New(), Email: "a@b.co"})
		require.NoError(t, err)

		_, err = env.svc.Refresh(ctx, RefreshRequest{RefreshToken: pair.AccessToken})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("deleted user", func(t *testing.T) {
		env := newTestEnv(t)
		id := uuid.New()
		env.users.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)
		pair, err := env.jwt.GenerateTokenPair(auth.Subject{UserID: id, Email: "a@b.co"})
		require.NoError(t, err)

		_, err = env.svc.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	id := uuid.New()
	pair, err := env.jwt.GenerateTokenPair(auth.Subject{UserID: id, Email: "a@b.co", Role: "employee"})
	require.NoError(t, err)
	access, err := env.jwt.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := env.jwt.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, env.svc.Logout(ctx, access, LogoutRequest{RefreshToken: pair.RefreshToken}))

	revoked, err := env.blacklist.IsRevoked(ctx, access.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = env.blacklist.IsRevoked(ctx, refresh.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
