package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/identity"
	"github.com/isms/backend/internal/domain/shared"
)

// MockPermissionRepository is a mock implementation of identity.PermissionRepository
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) FindAll(ctx context.Context) ([]identity.RolePermission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.RolePermission), args.Error(1)
}

func (m *MockPermissionRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.RolePermission, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.RolePermission), args.Error(1)
}

func (m *MockPermissionRepository) Find(ctx context.Context, role identity.Role, module identity.Module) (*identity.RolePermission, error) {
	args := m.Called(ctx, role, module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.RolePermission), args.Error(1)
}

func (m *MockPermissionRepository) ReplaceForRole(ctx context.Context, role identity.Role, permissions []identity.RolePermission) error {
	args := m.Called(ctx, role, permissions)
	return args.Error(0)
}

func (m *MockPermissionRepository) ReplaceAll(ctx context.Context, permissions []identity.RolePermission) error {
	args := m.Called(ctx, permissions)
	return args.Error(0)
}

func TestPermissionService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("admin holds every capability without a lookup", func(t *testing.T) {
		repo := new(MockPermissionRepository)
		service := NewPermissionService(repo, nil, zap.NewNop())

		capability, err := service.Check(ctx, identity.RoleAdmin, identity.ModuleUsers)
		require.NoError(t, err)
		assert.True(t, capability.CanRead)
		assert.True(t, capability.CanWrite)
		assert.True(t, capability.CanDelete)
		repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("resolves a stored cell", func(t *testing.T) {
		repo := new(MockPermissionRepository)
		service := NewPermissionService(repo, nil, zap.NewNop())

		cell, err := identity.NewRolePermission(identity.RoleCashier, identity.ModulePOS, identity.Capability{
			CanRead:  true,
			CanWrite: true,
		})
		require.NoError(t, err)
		repo.On("Find", ctx, identity.RoleCashier, identity.ModulePOS).Return(cell, nil)

		capability, err := service.Check(ctx, identity.RoleCashier, identity.ModulePOS)
		require.NoError(t, err)
		assert.True(t, capability.CanRead)
		assert.True(t, capability.CanWrite)
		assert.False(t, capability.CanDelete)
	})

	t.Run("an absent cell denies everything", func(t *testing.T) {
		repo := new(MockPermissionRepository)
		service := NewPermissionService(repo, nil, zap.NewNop())

		repo.On("Find", ctx, identity.RoleCashier, identity.ModuleExpenses).Return(nil, shared.ErrNotFound)

		capability, err := service.Check(ctx, identity.RoleCashier, identity.ModuleExpenses)
		require.NoError(t, err)
		assert.False(t, capability.CanRead)
		assert.False(t, capability.CanWrite)
		assert.False(t, capability.CanDelete)
	})
}

func TestPermissionService_UpdateForRole(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the cells of one role", func(t *testing.T) {
		repo := new(MockPermissionRepository)
		service := NewPermissionService(repo, nil, zap.NewNop())

		repo.On("ReplaceForRole", ctx, identity.RoleCashier, mock.MatchedBy(func(cells []identity.RolePermission) bool {
			return len(cells) == 1 && cells[0].Module == identity.ModulePOS && cells[0].CanWrite
		})).Return(nil)

		err := service.UpdateForRole(ctx, identity.RoleCashier, UpdatePermissionsRequest{
			Permissions: []PermissionCell{
				{Module: "pos", CanRead: true, CanWrite: true},
			},
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("refuses to change admin permissions", func(t *testing.T) {
		repo := new(MockPermissionRepository)
		service := NewPermissionService(repo, nil, zap.NewNop())

		err := service.UpdateForRole(ctx, identity.RoleAdmin, UpdatePermissionsRequest{
			Permissions: []PermissionCell{{Module: "pos", CanRead: true}},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		repo.AssertNotCalled(t, "ReplaceForRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown module", func(t *testing.T) {
		repo := new(MockPermissionRepository)
		service := NewPermissionService(repo, nil, zap.NewNop())

		err := service.UpdateForRole(ctx, identity.RoleCashier, UpdatePermissionsRequest{
			Permissions: []PermissionCell{{Module: "warp-drive", CanRead: true}},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MODULE", domainErr.Code)
	})
}

func TestPermissionService_ResetToDefaults(t *testing.T) {
	ctx := context.Background()

	repo := new(MockPermissionRepository)
	service := NewPermissionService(repo, nil, zap.NewNop())

	repo.On("ReplaceAll", ctx, mock.MatchedBy(func(cells []identity.RolePermission) bool {
		// Every role in the default matrix carries a cell for every module
		return len(cells) == len(identity.AllRoles())*len(identity.AllModules())
	})).Return(nil)

	err := service.ResetToDefaults(ctx)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPermissionService_SeedDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("does nothing when the matrix is populated", func(t *testing.T) {
		repo := new(MockPermissionRepository)
		service := NewPermissionService(repo, nil, zap.NewNop())

		cell, err := identity.NewRolePermission(identity.RoleCashier, identity.ModulePOS, identity.Capability{CanRead: true})
		require.NoError(t, err)
		repo.On("FindAll", ctx).Return([]identity.RolePermission{*cell}, nil)

		require.NoError(t, service.SeedDefaults(ctx))
		repo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
	})

	t.Run("seeds an empty matrix", func(t *testing.T) {
		repo := new(MockPermissionRepository)
		service := NewPermissionService(repo, nil, zap.NewNop())

		repo.On("FindAll", ctx).Return([]identity.RolePermission{}, nil)
		repo.On("ReplaceAll", ctx, mock.Anything).Return(nil)

		require.NoError(t, service.SeedDefaults(ctx))
		repo.AssertExpectations(t)
	})
}
