package persistence

import (
	"context"

	"gorm.io/gorm"

	apppurchasing "github.com/isms/backend/internal/application/purchasing"
	"github.com/isms/backend/internal/domain/catalog"
	"github.com/isms/backend/internal/domain/inventory"
	"github.com/isms/backend/internal/domain/purchasing"
)

// GormPurchasingTransactionScope implements the purchasing
// TransactionScope using GORM transactions.
type GormPurchasingTransactionScope struct {
	db *gorm.DB
}

// NewGormPurchasingTransactionScope creates a new GormPurchasingTransactionScope
func NewGormPurchasingTransactionScope(db *gorm.DB) *GormPurchasingTransactionScope {
	return &GormPurchasingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormPurchasingTransactionScope) Execute(ctx context.Context, fn func(repos apppurchasing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormPurchasingRepositories{tx: tx})
	})
}

type gormPurchasingRepositories struct {
	tx *gorm.DB
}

func (r *gormPurchasingRepositories) Orders() purchasing.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormPurchasingRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormPurchasingRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var (
	_ apppurchasing.TransactionScope          = (*GormPurchasingTransactionScope)(nil)
	_ apppurchasing.TransactionalRepositories = (*gormPurchasingRepositories)(nil)
)
