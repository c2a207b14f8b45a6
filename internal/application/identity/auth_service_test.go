package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/identity"
	"github.com/isms/backend/internal/domain/shared"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Generate(userID uuid.UUID, email, name string, role identity.Role) (string, time.Time, error) {
	args := m.Called(userID, email, name, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockPasswordHasher is a mock implementation of PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(hash, password string) bool {
	args := m.Called(hash, password)
	return args.Bool(0)
}

func activeUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser("jane@shop.co.tz", "Jane", "hashed-secret", role)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		hasher := new(MockPasswordHasher)
		service := NewAuthService(userRepo, tokens, hasher, zap.NewNop())

		user := activeUser(t, identity.RoleCashier)
		expiresAt := time.Now().Add(24 * time.Hour)

		userRepo.On("FindByEmail", ctx, "jane@shop.co.tz").Return(user, nil)
		hasher.On("Verify", "hashed-secret", "secret123").Return(true)
		tokens.On("Generate", user.ID, user.Email, user.Name, identity.RoleCashier).
			Return("signed-token", expiresAt, nil)

		resp, err := service.Login(ctx, LoginRequest{Email: "jane@shop.co.tz", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, "CASHIER", resp.User.Role)
		assert.Equal(t, expiresAt, resp.ExpiresAt)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		hasher := new(MockPasswordHasher)
		service := NewAuthService(userRepo, tokens, hasher, zap.NewNop())

		user := activeUser(t, identity.RoleCashier)
		userRepo.On("FindByEmail", ctx, "jane@shop.co.tz").Return(user, nil)
		hasher.On("Verify", "hashed-secret", "wrong").Return(false)

		_, err := service.Login(ctx, LoginRequest{Email: "jane@shop.co.tz", Password: "wrong"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		tokens.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown email with the same error", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		hasher := new(MockPasswordHasher)
		service := NewAuthService(userRepo, tokens, hasher, zap.NewNop())

		userRepo.On("FindByEmail", ctx, "ghost@shop.co.tz").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginRequest{Email: "ghost@shop.co.tz", Password: "secret123"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("rejects a deactivated account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokens := new(MockTokenIssuer)
		hasher := new(MockPasswordHasher)
		service := NewAuthService(userRepo, tokens, hasher, zap.NewNop())

		user := activeUser(t, identity.RoleCashier)
		user.Deactivate()
		userRepo.On("FindByEmail", ctx, "jane@shop.co.tz").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "jane@shop.co.tz", Password: "secret123"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	service := NewAuthService(userRepo, new(MockTokenIssuer), new(MockPasswordHasher), zap.NewNop())

	user := activeUser(t, identity.RoleAdmin)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	resp, err := service.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.Email)
	assert.Equal(t, "ADMIN", resp.Role)
}
