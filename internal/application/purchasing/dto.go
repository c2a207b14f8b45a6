package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isms/backend/internal/domain/purchasing"
)

// PurchaseOrderLineInput is one order line in a create request
type PurchaseOrderLineInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreatePurchaseOrderRequest places an order with a supplier
type CreatePurchaseOrderRequest struct {
	SupplierID       uuid.UUID                `json:"supplier_id" binding:"required"`
	Items            []PurchaseOrderLineInput `json:"items" binding:"required,min=1,dive"`
	Notes            string                   `json:"notes"`
	ExpectedDelivery *time.Time               `json:"expected_delivery"`
	CreatedBy        string                   `json:"created_by"`
}

// ReceivedLineInput overrides the received quantity for one line
type ReceivedLineInput struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"min=0"`
}

// TransitionRequest moves the order through its status machine.
// Received quantities are only consulted for the RECEIVED transition;
// lines not listed receive their full ordered quantity.
type TransitionRequest struct {
	Status     purchasing.OrderStatus `json:"status" binding:"required"`
	Items      []ReceivedLineInput    `json:"items"`
	PaidAmount *decimal.Decimal       `json:"paid_amount"`
}

// PurchaseOrderItemResponse is one supplier order line
type PurchaseOrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	QuantityOrdered  int             `json:"quantity_ordered"`
	QuantityReceived int             `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
}

// PurchaseOrderResponse represents a purchase order
type PurchaseOrderResponse struct {
	ID               uuid.UUID                   `json:"id"`
	OrderNumber      string                      `json:"order_number"`
	SupplierID       uuid.UUID                   `json:"supplier_id"`
	TotalAmount      decimal.Decimal             `json:"total_amount"`
	PaidAmount       decimal.Decimal             `json:"paid_amount"`
	Status           purchasing.OrderStatus      `json:"status"`
	Notes            string                      `json:"notes"`
	ExpectedDelivery *time.Time                  `json:"expected_delivery,omitempty"`
	ReceivedAt       *time.Time                  `json:"received_at,omitempty"`
	CreatedBy        string                      `json:"created_by"`
	Items            []PurchaseOrderItemResponse `json:"items"`
	CreatedAt        time.Time                   `json:"created_at"`
}

// ToPurchaseOrderResponse maps a purchase order to its response shape
func ToPurchaseOrderResponse(order *purchasing.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, PurchaseOrderItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			QuantityOrdered:  item.QuantityOrdered,
			QuantityReceived: item.QuantityReceived,
			UnitCost:         item.UnitCost,
			TotalCost:        item.TotalCost,
		})
	}
	return PurchaseOrderResponse{
		ID:               order.ID,
		OrderNumber:      order.OrderNumber,
		SupplierID:       order.SupplierID,
		TotalAmount:      order.TotalAmount,
		PaidAmount:       order.PaidAmount,
		Status:           order.Status,
		Notes:            order.Notes,
		ExpectedDelivery: order.ExpectedDelivery,
		ReceivedAt:       order.ReceivedAt,
		CreatedBy:        order.CreatedBy,
		Items:            items,
		CreatedAt:        order.CreatedAt,
	}
}
