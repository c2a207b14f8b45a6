package returns

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/catalog"
	"github.com/isms/backend/internal/domain/inventory"
	"github.com/isms/backend/internal/domain/returns"
	"github.com/isms/backend/internal/domain/shared"
)

// ReturnService processes customer returns and replacements
type ReturnService struct {
	scope      TransactionScope
	returnRepo returns.ReturnRepository
	logger     *zap.Logger
}

// NewReturnService creates a new return service
func NewReturnService(scope TransactionScope, returnRepo returns.ReturnRepository, logger *zap.Logger) *ReturnService {
	return &ReturnService{
		scope:      scope,
		returnRepo: returnRepo,
		logger:     logger,
	}
}

// Create records a processed return. Award amounts and price
// differences are computed from catalog prices; stock side effects per
// line disposition commit with the return record:
//   - RESELLABLE restocks the returned quantity
//   - FAULTY and DISCARDED flag the product faulty, stock unchanged
//   - a replacement award ships the replacement, decrementing its stock
func (s *ReturnService) Create(ctx context.Context, req CreateReturnRequest) (*ReturnResponse, error) {
	ret, err := returns.NewReturn(returns.GenerateReturnNumber(), req.Reason, req.ProcessedBy)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, input := range req.Items {
			product, err := repos.Products().FindByID(ctx, input.ProductID)
			if err != nil {
				return err
			}

			replacementPrice := product.SellingPrice
			replacementName := ""
			var replacement *catalog.Product
			if input.AwardedType == returns.AwardReplacement && input.ReplacementProductID != nil {
				replacement, err = repos.Products().FindByID(ctx, *input.ReplacementProductID)
				if err != nil {
					return err
				}
				if replacement.StockQuantity < input.Quantity {
					return shared.ErrInsufficientStock
				}
				replacementPrice = replacement.SellingPrice
				replacementName = replacement.Name
			}

			item, err := ret.AddItem(returns.ItemInput{
				ProductID:            input.ProductID,
				Quantity:             input.Quantity,
				Reason:               input.Reason,
				Status:               input.Status,
				AwardedType:          input.AwardedType,
				RefundAmount:         input.RefundAmount,
				AwardedAmount:        input.AwardedAmount,
				RepairCost:           input.RepairCost,
				ReplacementProductID: input.ReplacementProductID,
				OriginalProductValue: input.OriginalProductValue,
				Notes:                input.Notes,
			}, product.SellingPrice, replacementPrice, replacementName)
			if err != nil {
				return err
			}

			switch item.Status {
			case returns.ItemStatusResellable:
				if err := repos.Products().AdjustStock(ctx, product.ID, item.Quantity); err != nil {
					return err
				}
				movement, err := inventory.NewStockMovement(product.ID, inventory.MovementReturnResellable, item.Quantity, ret.ReturnNumber, "Customer return restocked")
				if err != nil {
					return err
				}
				if err := repos.Movements().Save(ctx, movement); err != nil {
					return err
				}
			case returns.ItemStatusFaulty, returns.ItemStatusDiscarded:
				product.MarkFaulty()
				if err := repos.Products().Save(ctx, product); err != nil {
					return err
				}
				movement, err := inventory.NewStockMovement(product.ID, inventory.MovementReturnFaulty, item.Quantity, ret.ReturnNumber, "Customer return, unit faulty")
				if err != nil {
					return err
				}
				if err := repos.Movements().Save(ctx, movement); err != nil {
					return err
				}
			}

			if replacement != nil {
				if err := repos.Products().AdjustStock(ctx, replacement.ID, -item.Quantity); err != nil {
					return err
				}
				movement, err := inventory.NewStockMovement(replacement.ID, inventory.MovementStockOut, item.Quantity, ret.ReturnNumber, "Replacement shipped")
				if err != nil {
					return err
				}
				if err := repos.Movements().Save(ctx, movement); err != nil {
					return err
				}
			}
		}
		return repos.Returns().Save(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Return processed",
		zap.String("return_number", ret.ReturnNumber),
		zap.Int("items", len(ret.Items)),
		zap.String("total_refund", ret.TotalRefund.String()))

	response := ToReturnResponse(ret)
	return &response, nil
}

// GetByID retrieves a return by ID
func (s *ReturnService) GetByID(ctx context.Context, id uuid.UUID) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToReturnResponse(ret)
	return &response, nil
}

// List retrieves returns with pagination
func (s *ReturnService) List(ctx context.Context, page, pageSize int) (*shared.Paginated[ReturnResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	items, err := s.returnRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.returnRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ReturnResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToReturnResponse(&items[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// AmendItemStatus changes a return item's disposition after the fact.
// Record-keeping only; the stock effects applied at creation are not
// replayed.
func (s *ReturnService) AmendItemStatus(ctx context.Context, itemID uuid.UUID, req AmendItemStatusRequest) (*ReturnItemResponse, error) {
	if !req.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_RETURN_STATUS", "Unknown return item status")
	}
	item, err := s.returnRepo.UpdateItemStatus(ctx, itemID, req.Status)
	if err != nil {
		return nil, err
	}
	response := ToReturnItemResponse(item)
	return &response, nil
}

// Delete removes a return and its items
func (s *ReturnService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.returnRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Return deleted", zap.String("return_id", id.String()))
	return nil
}
