package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/isms/backend/internal/domain/identity"
	"github.com/isms/backend/internal/domain/shared"
)

// GormPermissionRepository implements PermissionRepository using GORM
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// FindAll returns the whole permission matrix
func (r *GormPermissionRepository) FindAll(ctx context.Context) ([]identity.RolePermission, error) {
	var permissions []identity.RolePermission
	if err := r.db.WithContext(ctx).
		Order("role ASC, module ASC").
		Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// FindByRole returns all matrix cells for one role
func (r *GormPermissionRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.RolePermission, error) {
	var permissions []identity.RolePermission
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("module ASC").
		Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// Find returns one matrix cell
func (r *GormPermissionRepository) Find(ctx context.Context, role identity.Role, module identity.Module) (*identity.RolePermission, error) {
	var permission identity.RolePermission
	if err := r.db.WithContext(ctx).
		First(&permission, "role = ? AND module = ?", role, module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &permission, nil
}

// ReplaceForRole atomically swaps every cell for one role
func (r *GormPermissionRepository) ReplaceForRole(ctx context.Context, role identity.Role, permissions []identity.RolePermission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&identity.RolePermission{}, "role = ?", role).Error; err != nil {
			return err
		}
		if len(permissions) == 0 {
			return nil
		}
		return tx.Create(&permissions).Error
	})
}

// ReplaceAll atomically swaps the entire matrix
func (r *GormPermissionRepository) ReplaceAll(ctx context.Context, permissions []identity.RolePermission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&identity.RolePermission{}).Error; err != nil {
			return err
		}
		if len(permissions) == 0 {
			return nil
		}
		return tx.Create(&permissions).Error
	})
}

// Ensure GormPermissionRepository implements PermissionRepository
var _ identity.PermissionRepository = (*GormPermissionRepository)(nil)
