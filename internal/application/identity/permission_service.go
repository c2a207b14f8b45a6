package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/identity"
	"github.com/isms/backend/internal/domain/shared"
)

// PermissionCache caches resolved matrix cells. Implementations must
// tolerate a nil receiver.
type PermissionCache interface {
	Get(ctx context.Context, role identity.Role, module identity.Module) (*identity.Capability, error)
	Set(ctx context.Context, role identity.Role, module identity.Module, capability identity.Capability)
	Invalidate(ctx context.Context)
}

// PermissionService manages and resolves the role/module permission matrix
type PermissionService struct {
	permissionRepo identity.PermissionRepository
	cache          PermissionCache
	logger         *zap.Logger
}

// NewPermissionService creates a new PermissionService. cache may be nil.
func NewPermissionService(permissionRepo identity.PermissionRepository, cache PermissionCache, logger *zap.Logger) *PermissionService {
	return &PermissionService{
		permissionRepo: permissionRepo,
		cache:          cache,
		logger:         logger,
	}
}

// ListAll returns the whole matrix grouped by role
func (s *PermissionService) ListAll(ctx context.Context) ([]RolePermissionsResponse, error) {
	permissions, err := s.permissionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byRole := make(map[identity.Role][]PermissionCell)
	for i := range permissions {
		p := &permissions[i]
		byRole[p.Role] = append(byRole[p.Role], ToPermissionCell(p))
	}

	responses := make([]RolePermissionsResponse, 0, len(byRole))
	for _, role := range identity.AllRoles() {
		cells, ok := byRole[role]
		if !ok {
			continue
		}
		responses = append(responses, RolePermissionsResponse{
			Role:        role.String(),
			Permissions: cells,
		})
	}
	return responses, nil
}

// ListByRole returns every matrix cell for one role
func (s *PermissionService) ListByRole(ctx context.Context, role identity.Role) (*RolePermissionsResponse, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	permissions, err := s.permissionRepo.FindByRole(ctx, role)
	if err != nil {
		return nil, err
	}

	cells := make([]PermissionCell, len(permissions))
	for i := range permissions {
		cells[i] = ToPermissionCell(&permissions[i])
	}
	return &RolePermissionsResponse{Role: role.String(), Permissions: cells}, nil
}

// UpdateForRole replaces every cell for one role. The admin matrix is
// immutable so the shop cannot lock itself out.
func (s *PermissionService) UpdateForRole(ctx context.Context, role identity.Role, req UpdatePermissionsRequest) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	if role.IsAdmin() {
		return shared.NewDomainError("FORBIDDEN", "Admin permissions cannot be changed")
	}

	permissions := make([]identity.RolePermission, 0, len(req.Permissions))
	for _, cell := range req.Permissions {
		p, err := identity.NewRolePermission(role, identity.Module(cell.Module), identity.Capability{
			CanRead:   cell.CanRead,
			CanWrite:  cell.CanWrite,
			CanDelete: cell.CanDelete,
		})
		if err != nil {
			return err
		}
		permissions = append(permissions, *p)
	}

	if err := s.permissionRepo.ReplaceForRole(ctx, role, permissions); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.logger.Info("Permissions updated", zap.String("role", role.String()))
	return nil
}

// ResetToDefaults restores the built-in matrix for every role
func (s *PermissionService) ResetToDefaults(ctx context.Context) error {
	permissions, err := defaultMatrix()
	if err != nil {
		return err
	}

	if err := s.permissionRepo.ReplaceAll(ctx, permissions); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.logger.Info("Permissions reset to defaults")
	return nil
}

// SeedDefaults populates the matrix on first boot. Does nothing when
// any rows already exist.
func (s *PermissionService) SeedDefaults(ctx context.Context) error {
	existing, err := s.permissionRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return s.ResetToDefaults(ctx)
}

// Check resolves the capability one role holds on one module. Admins
// always hold every capability regardless of the stored matrix.
func (s *PermissionService) Check(ctx context.Context, role identity.Role, module identity.Module) (identity.Capability, error) {
	if role.IsAdmin() {
		return identity.Capability{CanRead: true, CanWrite: true, CanDelete: true}, nil
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, role, module); err == nil && cached != nil {
			return *cached, nil
		}
	}

	permission, err := s.permissionRepo.Find(ctx, role, module)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// An absent cell denies everything
			return identity.Capability{}, nil
		}
		return identity.Capability{}, err
	}

	capability := identity.Capability{
		CanRead:   permission.CanRead,
		CanWrite:  permission.CanWrite,
		CanDelete: permission.CanDelete,
	}
	if s.cache != nil {
		s.cache.Set(ctx, role, module, capability)
	}
	return capability, nil
}

func defaultMatrix() ([]identity.RolePermission, error) {
	defaults := identity.DefaultPermissions()
	permissions := make([]identity.RolePermission, 0, len(defaults)*len(identity.AllModules()))
	for _, role := range identity.AllRoles() {
		capabilities, ok := defaults[role]
		if !ok {
			continue
		}
		for _, module := range identity.AllModules() {
			capability, ok := capabilities[module]
			if !ok {
				continue
			}
			p, err := identity.NewRolePermission(role, module, capability)
			if err != nil {
				return nil, err
			}
			permissions = append(permissions, *p)
		}
	}
	return permissions, nil
}
