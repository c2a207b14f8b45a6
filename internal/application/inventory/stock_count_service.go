package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/inventory"
	"github.com/isms/backend/internal/domain/shared"
)

// StockCountService handles counting sheets
type StockCountService struct {
	scope     TransactionScope
	countRepo inventory.StockCountRepository
	logger    *zap.Logger
}

// NewStockCountService creates a new stock count service
func NewStockCountService(scope TransactionScope, countRepo inventory.StockCountRepository, logger *zap.Logger) *StockCountService {
	return &StockCountService{
		scope:     scope,
		countRepo: countRepo,
		logger:    logger,
	}
}

// Create starts a counting sheet snapshotting the current system
// quantity of each chosen product
func (s *StockCountService) Create(ctx context.Context, req CreateStockCountRequest) (*StockCountResponse, error) {
	count, err := inventory.NewStockCount(inventory.GenerateCountNumber(), req.CreatedBy, req.Notes)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, productID := range req.ProductIDs {
			product, err := repos.Products().FindByID(ctx, productID)
			if err != nil {
				return err
			}
			if _, err := count.AddItem(product.ID, product.StockQuantity); err != nil {
				return err
			}
		}
		return repos.Counts().Save(ctx, count)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock count started",
		zap.String("count_number", count.CountNumber),
		zap.Int("items", len(count.Items)))

	response := ToStockCountResponse(count)
	return &response, nil
}

// RecordCounts fills in counted quantities on an open sheet
func (s *StockCountService) RecordCounts(ctx context.Context, id uuid.UUID, req RecordCountsRequest) (*StockCountResponse, error) {
	count, err := s.countRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if count.Status != inventory.CountStatusInProgress {
		return nil, shared.ErrInvalidState
	}

	byID := make(map[uuid.UUID]*inventory.StockCountItem, len(count.Items))
	for i := range count.Items {
		byID[count.Items[i].ID] = &count.Items[i]
	}
	for _, input := range req.Items {
		item, ok := byID[input.ItemID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		if err := item.RecordCount(input.CountedQty, input.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.countRepo.Save(ctx, count); err != nil {
		return nil, err
	}
	response := ToStockCountResponse(count)
	return &response, nil
}

// Complete closes the sheet. For every counted line the product's stock
// quantity becomes the counted quantity, and non-zero variances write
// an ADJUSTMENT ledger entry. All of it commits in one transaction.
func (s *StockCountService) Complete(ctx context.Context, id uuid.UUID) (*StockCountResponse, error) {
	var count *inventory.StockCount
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		count, err = repos.Counts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := count.Complete(); err != nil {
			return err
		}
		for _, item := range count.Items {
			if item.CountedQty == nil || item.Variance == nil {
				continue
			}
			if *item.Variance != 0 {
				if err := repos.Products().AdjustStock(ctx, item.ProductID, *item.Variance); err != nil {
					return err
				}
				qty := *item.Variance
				if qty < 0 {
					qty = -qty
				}
				movement, err := inventory.NewStockMovement(item.ProductID, inventory.MovementAdjustment, qty, count.CountNumber, "Stock count variance")
				if err != nil {
					return err
				}
				if err := repos.Movements().Save(ctx, movement); err != nil {
					return err
				}
			}
		}
		return repos.Counts().Save(ctx, count)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock count completed",
		zap.String("count_number", count.CountNumber),
		zap.Int("variances", count.VarianceCount()))

	response := ToStockCountResponse(count)
	return &response, nil
}

// Cancel abandons an open sheet without touching stock
func (s *StockCountService) Cancel(ctx context.Context, id uuid.UUID) (*StockCountResponse, error) {
	count, err := s.countRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := count.Cancel(); err != nil {
		return nil, err
	}
	if err := s.countRepo.Save(ctx, count); err != nil {
		return nil, err
	}
	response := ToStockCountResponse(count)
	return &response, nil
}

// GetByID retrieves a counting sheet by ID
func (s *StockCountService) GetByID(ctx context.Context, id uuid.UUID) (*StockCountResponse, error) {
	count, err := s.countRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToStockCountResponse(count)
	return &response, nil
}

// List retrieves counting sheets with pagination
func (s *StockCountService) List(ctx context.Context, page, pageSize int) (*shared.Paginated[StockCountResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	counts, err := s.countRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.countRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockCountResponse, 0, len(counts))
	for i := range counts {
		responses = append(responses, ToStockCountResponse(&counts[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
