package purchasing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/inventory"
	"github.com/isms/backend/internal/domain/purchasing"
	"github.com/isms/backend/internal/domain/shared"
)

// PurchaseOrderService handles supplier orders and goods receipt
type PurchaseOrderService struct {
	scope     TransactionScope
	orderRepo purchasing.PurchaseOrderRepository
	logger    *zap.Logger
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(scope TransactionScope, orderRepo purchasing.PurchaseOrderRepository, logger *zap.Logger) *PurchaseOrderService {
	return &PurchaseOrderService{
		scope:     scope,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Create places a pending purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := purchasing.NewPurchaseOrder(purchasing.GenerateOrderNumber(), req.SupplierID, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes
	order.ExpectedDelivery = req.ExpectedDelivery

	for _, line := range req.Items {
		if _, err := order.AddItem(line.ProductID, line.Quantity, line.UnitCost); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("total_amount", order.TotalAmount.String()))

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with pagination
func (s *PurchaseOrderService) List(ctx context.Context, page, pageSize int, status *purchasing.OrderStatus) (*shared.Paginated[PurchaseOrderResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if status != nil {
		filter.Filters["status"] = string(*status)
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Transition moves an order through its status machine. Receiving an
// order credits each line's stock and writes a STOCK_IN movement in the
// same transaction; a second receive fails on the terminal status
// before any stock is touched.
func (s *PurchaseOrderService) Transition(ctx context.Context, id uuid.UUID, req TransitionRequest) (*PurchaseOrderResponse, error) {
	var order *purchasing.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, id)
		if err != nil {
			return err
		}

		switch req.Status {
		case purchasing.OrderStatusOrdered:
			if err := order.MarkOrdered(); err != nil {
				return err
			}
		case purchasing.OrderStatusCancelled:
			if err := order.Cancel(); err != nil {
				return err
			}
		case purchasing.OrderStatusReceived:
			received := make(map[uuid.UUID]int, len(req.Items))
			for _, line := range req.Items {
				received[line.ItemID] = line.Quantity
			}
			if err := order.Receive(received); err != nil {
				return err
			}
			for _, item := range order.Items {
				if item.QuantityReceived == 0 {
					continue
				}
				if err := repos.Products().AdjustStock(ctx, item.ProductID, item.QuantityReceived); err != nil {
					return err
				}
				movement, err := inventory.NewStockMovement(item.ProductID, inventory.MovementStockIn, item.QuantityReceived, order.OrderNumber, "Purchase order received")
				if err != nil {
					return err
				}
				if err := repos.Movements().Save(ctx, movement); err != nil {
					return err
				}
			}
		default:
			return shared.NewDomainError("INVALID_STATUS", "Unknown purchase order status")
		}

		if req.PaidAmount != nil {
			if err := order.RecordPayment(*req.PaidAmount); err != nil {
				return err
			}
		}
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order transitioned",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)))

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Delete removes a purchase order and its lines
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Purchase order deleted", zap.String("order_id", id.String()))
	return nil
}
