package purchasing

import (
	"context"

	"github.com/isms/backend/internal/domain/catalog"
	"github.com/isms/backend/internal/domain/inventory"
	"github.com/isms/backend/internal/domain/purchasing"
)

// TransactionScope provides transactional access to the repositories a
// purchase order receipt touches. The status flip, the stock credits
// and the ledger entries commit or roll back together, which is what
// keeps receipt a once-only operation.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories scoped to the
// current transaction.
type TransactionalRepositories interface {
	Orders() purchasing.PurchaseOrderRepository
	Products() catalog.ProductRepository
	Movements() inventory.StockMovementRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used in tests.
type NoOpTransactionScope struct {
	orderRepo    purchasing.PurchaseOrderRepository
	productRepo  catalog.ProductRepository
	movementRepo inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo purchasing.PurchaseOrderRepository,
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the purchase order repository
func (s *NoOpTransactionScope) Orders() purchasing.PurchaseOrderRepository { return s.orderRepo }

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.productRepo }

// Movements returns the stock movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository { return s.movementRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
