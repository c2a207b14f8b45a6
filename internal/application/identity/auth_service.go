package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/identity"
	"github.com/isms/backend/internal/domain/shared"
)

// TokenIssuer signs session tokens for authenticated users
type TokenIssuer interface {
	Generate(userID uuid.UUID, email, name string, role identity.Role) (string, time.Time, error)
}

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// AuthService handles login and identity lookups
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	hasher   PasswordHasher
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, hasher PasswordHasher, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		logger:   logger,
	}
}

// Login verifies credentials and issues a session token. Unknown
// emails, wrong passwords and deactivated accounts all produce the same
// error so the response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Info("Login failed: unknown email", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive {
		s.logger.Info("Login failed: account deactivated", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		s.logger.Info("Login failed: wrong password", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		s.logger.Error("Failed to issue session token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// CurrentUser returns the account behind an authenticated request
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}
