package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/inventory"
	"github.com/isms/backend/internal/domain/shared"
)

// InventoryService exposes the stock ledger and manual adjustments
type InventoryService struct {
	scope        TransactionScope
	movementRepo inventory.StockMovementRepository
	logger       *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(scope TransactionScope, movementRepo inventory.StockMovementRepository, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		scope:        scope,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// ListMovements returns ledger entries, optionally scoped to one product
func (s *InventoryService) ListMovements(ctx context.Context, productID *uuid.UUID, page, pageSize int) ([]StockMovementResponse, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	var movements []inventory.StockMovement
	var err error
	if productID != nil {
		movements, err = s.movementRepo.FindByProduct(ctx, *productID, filter)
	} else {
		movements, err = s.movementRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]StockMovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, ToStockMovementResponse(&movements[i]))
	}
	return responses, nil
}

// AdjustStock applies a manual correction. The relational delta and the
// ADJUSTMENT ledger entry commit together; decrements that would push
// stock below zero fail.
func (s *InventoryService) AdjustStock(ctx context.Context, req AdjustStockRequest) error {
	if req.Delta == 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Products().AdjustStock(ctx, req.ProductID, req.Delta); err != nil {
			return err
		}
		qty := req.Delta
		if qty < 0 {
			qty = -qty
		}
		movement, err := inventory.NewStockMovement(req.ProductID, inventory.MovementAdjustment, qty, "", req.Reason)
		if err != nil {
			return err
		}
		return repos.Movements().Save(ctx, movement)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Stock adjusted",
		zap.String("product_id", req.ProductID.String()),
		zap.Int("delta", req.Delta),
		zap.String("reason", req.Reason))
	return nil
}
