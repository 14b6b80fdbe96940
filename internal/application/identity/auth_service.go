package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var errInvalidCredentials = shared.ErrUnauthorized.WithMessage("Invalid email or password")

// AuthService handles registration and token lifecycle
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	clock      shared.Clock
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	clock shared.Clock,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		clock:      clock,
		logger:     logger.Named("auth"),
	}
}

// Register creates an account. The email must not be taken.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.WithMessage("Email is already registered")
	}

	user, err := identity.NewUser(req.Name, email, req.Password, identity.Role(req.Role), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	resp := ToUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("Login for unknown email")
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, errInvalidCredentials
	}
	if !user.CanLogin() {
		s.logger.Warn("Login attempt for inactive account", zap.String("user_id", user.ID.String()))
		return nil, shared.ErrUnauthorized.WithMessage("Account is not active")
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return &LoginResponse{TokenPair: *pair, User: ToUserResponse(user)}, nil
}

// Refresh rotates a refresh token. The presented token is revoked so it can
// only be used once.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.logger.Debug("Refresh token rejected", zap.Error(err))
		return nil, tokenError(err)
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, tokenError(auth.ErrTokenRevoked)
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrUnauthorized.WithMessage("User no longer exists")
	}
	if err != nil {
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.ErrUnauthorized.WithMessage("Account is not active")
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL(s.clock.Now())); err != nil {
		return nil, err
	}
	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{TokenPair: *pair, User: ToUserResponse(user)}, nil
}

// Logout revokes the access token described by access and, when given, the
// refresh token too.
func (s *AuthService) Logout(ctx context.Context, access *auth.Claims, req LogoutRequest) error {
	now := s.clock.Now()
	if err := s.blacklist.Revoke(ctx, access.ID, access.RemainingTTL(now)); err != nil {
		return err
	}
	if req.RefreshToken != "" {
		refresh, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
		if err != nil {
			// An unusable refresh token needs no revoking.
			s.logger.Debug("Ignoring invalid refresh token on logout", zap.Error(err))
		} else if refresh.UserID == access.UserID {
			if err := s.blacklist.Revoke(ctx, refresh.ID, refresh.RemainingTTL(now)); err != nil {
				return err
			}
		}
	}
	s.logger.Info("User logged out", zap.String("user_id", access.UserID))
	return nil
}

func (s *AuthService) issue(user *identity.User) (*auth.TokenPair, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.Subject{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}
	return pair, nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.ErrUnauthorized.WithMessage("Refresh token has expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		return shared.ErrUnauthorized.WithMessage("Refresh token has been revoked")
	default:
		return shared.ErrUnauthorized.WithMessage("Invalid refresh token")
	}
}
