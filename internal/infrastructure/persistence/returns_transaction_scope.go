package persistence

import (
	"context"

	"gorm.io/gorm"

	appreturns "github.com/isms/backend/internal/application/returns"
	"github.com/isms/backend/internal/domain/catalog"
	"github.com/isms/backend/internal/domain/inventory"
	"github.com/isms/backend/internal/domain/returns"
)

// GormReturnsTransactionScope implements the returns TransactionScope
// using GORM transactions.
type GormReturnsTransactionScope struct {
	db *gorm.DB
}

// NewGormReturnsTransactionScope creates a new GormReturnsTransactionScope
func NewGormReturnsTransactionScope(db *gorm.DB) *GormReturnsTransactionScope {
	return &GormReturnsTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormReturnsTransactionScope) Execute(ctx context.Context, fn func(repos appreturns.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormReturnsRepositories{tx: tx})
	})
}

type gormReturnsRepositories struct {
	tx *gorm.DB
}

func (r *gormReturnsRepositories) Returns() returns.ReturnRepository {
	return NewGormReturnRepository(r.tx)
}

func (r *gormReturnsRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormReturnsRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var (
	_ appreturns.TransactionScope          = (*GormReturnsTransactionScope)(nil)
	_ appreturns.TransactionalRepositories = (*gormReturnsRepositories)(nil)
)
