package identity

import (
	"context"

	"github.com/isms/backend/internal/domain/shared"
)

// Module identifies an application area gated by the permission matrix
type Module string

const (
	ModuleDashboard      Module = "dashboard"
	ModuleInventory      Module = "inventory"
	ModulePOS            Module = "pos"
	ModuleInstallments   Module = "installments"
	ModuleReturns        Module = "returns"
	ModuleSuppliers      Module = "suppliers"
	ModulePurchaseOrders Module = "purchase-orders"
	ModuleStockCount     Module = "stock-count"
	ModuleExpenses       Module = "expenses"
	ModuleProfitLoss     Module = "profit-loss"
	ModuleReports        Module = "reports"
	ModuleUsers          Module = "users"
	ModuleSettings       Module = "settings"
)

// AllModules lists every gated module
func AllModules() []Module {
	return []Module{
		ModuleDashboard, ModuleInventory, ModulePOS, ModuleInstallments,
		ModuleReturns, ModuleSuppliers, ModulePurchaseOrders, ModuleStockCount,
		ModuleExpenses, ModuleProfitLoss, ModuleReports, ModuleUsers, ModuleSettings,
	}
}

// IsValid checks if the module is a known value
func (m Module) IsValid() bool {
	for _, known := range AllModules() {
		if m == known {
			return true
		}
	}
	return false
}

// Capability is the read/write/delete triple granted for one module
type Capability struct {
	CanRead   bool `json:"canRead"`
	CanWrite  bool `json:"canWrite"`
	CanDelete bool `json:"canDelete"`
}

var (
	capFull      = Capability{CanRead: true, CanWrite: true, CanDelete: true}
	capReadWrite = Capability{CanRead: true, CanWrite: true}
	capReadOnly  = Capability{CanRead: true}
	capNone      = Capability{}
)

// RolePermission is one persisted matrix cell, unique per (role, module)
type RolePermission struct {
	shared.BaseEntity
	Role      Role   `gorm:"not null;uniqueIndex:idx_role_module"`
	Module    Module `gorm:"not null;uniqueIndex:idx_role_module"`
	CanRead   bool   `gorm:"not null;default:false"`
	CanWrite  bool   `gorm:"not null;default:false"`
	CanDelete bool   `gorm:"not null;default:false"`
}

// NewRolePermission creates a matrix cell
func NewRolePermission(role Role, module Module, capability Capability) (*RolePermission, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	if !module.IsValid() {
		return nil, shared.NewDomainError("INVALID_MODULE", "Unknown module")
	}
	return &RolePermission{
		BaseEntity: shared.NewBaseEntity(),
		Role:       role,
		Module:     module,
		CanRead:    capability.CanRead,
		CanWrite:   capability.CanWrite,
		CanDelete:  capability.CanDelete,
	}, nil
}

// Capability returns the cell's capability triple
func (p *RolePermission) Capability() Capability {
	return Capability{CanRead: p.CanRead, CanWrite: p.CanWrite, CanDelete: p.CanDelete}
}

// TableName returns the database table name
func (RolePermission) TableName() string {
	return "role_permissions"
}

// DefaultPermissions returns the seeded capability table. A module
// absent from a role's map grants nothing.
func DefaultPermissions() map[Role]map[Module]Capability {
	return map[Role]map[Module]Capability{
		RoleAdmin: {
			ModuleDashboard: capFull, ModuleInventory: capFull, ModulePOS: capFull,
			ModuleInstallments: capFull, ModuleReturns: capFull, ModuleSuppliers: capFull,
			ModulePurchaseOrders: capFull, ModuleStockCount: capFull, ModuleExpenses: capFull,
			ModuleProfitLoss: capFull, ModuleReports: capFull, ModuleUsers: capFull,
			ModuleSettings: capFull,
		},
		RoleManager: {
			ModuleDashboard: capReadWrite, ModuleInventory: capReadWrite, ModulePOS: capReadWrite,
			ModuleInstallments: capReadWrite, ModuleReturns: capReadWrite, ModuleSuppliers: capReadWrite,
			ModulePurchaseOrders: capReadWrite, ModuleStockCount: capReadWrite, ModuleExpenses: capReadWrite,
			ModuleProfitLoss: capReadOnly, ModuleReports: capReadOnly, ModuleUsers: capReadOnly,
			ModuleSettings: capReadOnly,
		},
		RoleCashier: {
			ModuleDashboard: capReadOnly, ModuleInventory: capReadOnly, ModulePOS: capReadWrite,
			ModuleInstallments: capReadWrite, ModuleReturns: capReadWrite, ModuleSuppliers: capNone,
			ModulePurchaseOrders: capNone, ModuleStockCount: capNone, ModuleExpenses: capNone,
			ModuleProfitLoss: capNone, ModuleReports: capNone, ModuleUsers: capNone,
			ModuleSettings: capNone,
		},
		RoleAccountant: {
			ModuleDashboard: capReadOnly, ModuleInventory: capNone, ModulePOS: capNone,
			ModuleInstallments: capNone, ModuleReturns: capNone, ModuleSuppliers: capNone,
			ModulePurchaseOrders: capNone, ModuleStockCount: capNone, ModuleExpenses: capReadWrite,
			ModuleProfitLoss: capReadOnly, ModuleReports: capReadWrite, ModuleUsers: capNone,
			ModuleSettings: capNone,
		},
		RoleWinger: {
			ModuleDashboard: capReadOnly, ModuleInventory: capReadOnly, ModulePOS: capReadWrite,
			ModuleInstallments: capNone, ModuleReturns: capNone, ModuleSuppliers: capNone,
			ModulePurchaseOrders: capNone, ModuleStockCount: capReadOnly, ModuleExpenses: capNone,
			ModuleProfitLoss: capNone, ModuleReports: capNone, ModuleUsers: capNone,
			ModuleSettings: capNone,
		},
		RoleShopAssistant: {
			ModuleDashboard: capReadOnly, ModuleInventory: capReadWrite, ModulePOS: capReadWrite,
			ModuleInstallments: capNone, ModuleReturns: capNone, ModuleSuppliers: capNone,
			ModulePurchaseOrders: capNone, ModuleStockCount: capReadWrite, ModuleExpenses: capNone,
			ModuleProfitLoss: capNone, ModuleReports: capNone, ModuleUsers: capNone,
			ModuleSettings: capNone,
		},
	}
}

// PermissionRepository defines persistence operations for the matrix
type PermissionRepository interface {
	FindAll(ctx context.Context) ([]RolePermission, error)
	FindByRole(ctx context.Context, role Role) ([]RolePermission, error)
	Find(ctx context.Context, role Role, module Module) (*RolePermission, error)
	// ReplaceForRole atomically swaps every cell for one role
	ReplaceForRole(ctx context.Context, role Role, permissions []RolePermission) error
	// ReplaceAll atomically swaps the entire matrix (used by reset)
	ReplaceAll(ctx context.Context, permissions []RolePermission) error
}
