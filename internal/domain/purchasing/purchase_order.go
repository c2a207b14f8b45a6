package purchasing

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isms/backend/internal/domain/shared"
)

// OrderStatus represents the status of a purchase order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusOrdered   OrderStatus = "ORDERED"
	OrderStatusReceived  OrderStatus = "RECEIVED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOrdered, OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target.
// RECEIVED and CANCELLED are terminal, which is what makes PO receipt
// a once-only operation: a second receive is rejected before any stock
// is credited.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusOrdered || target == OrderStatusReceived || target == OrderStatusCancelled
	case OrderStatusOrdered:
		return target == OrderStatusReceived || target == OrderStatusCancelled
	case OrderStatusReceived, OrderStatusCancelled:
		return false
	}
	return false
}

// PurchaseOrderItem is one supplier order line
type PurchaseOrderItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index"`
	QuantityOrdered  int       `gorm:"not null"`
	QuantityReceived int       `gorm:"not null;default:0"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalCost        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the database table name
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// PurchaseOrder is the aggregate root for an order placed with a supplier
type PurchaseOrder struct {
	shared.BaseEntity
	OrderNumber      string    `gorm:"uniqueIndex;not null"`
	SupplierID       uuid.UUID `gorm:"type:uuid;not null;index"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status           OrderStatus     `gorm:"not null;default:'PENDING'"`
	Notes            string
	ExpectedDelivery *time.Time
	ReceivedAt       *time.Time
	CreatedBy        string
	Items            []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID"`
}

// NewPurchaseOrder creates a pending purchase order
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, createdBy string) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	return &PurchaseOrder{
		BaseEntity:  shared.NewBaseEntity(),
		OrderNumber: orderNumber,
		SupplierID:  supplierID,
		TotalAmount: decimal.Zero,
		PaidAmount:  decimal.Zero,
		Status:      OrderStatusPending,
		CreatedBy:   createdBy,
		Items:       make([]PurchaseOrderItem, 0),
	}, nil
}

// AddItem appends an order line. totalCost = quantity * unitCost.
func (o *PurchaseOrder) AddItem(productID uuid.UUID, quantity int, unitCost decimal.Decimal) (*PurchaseOrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	now := time.Now()
	item := PurchaseOrderItem{
		ID:              uuid.New(),
		PurchaseOrderID: o.ID,
		ProductID:       productID,
		QuantityOrdered: quantity,
		UnitCost:        unitCost,
		TotalCost:       unitCost.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.Items = append(o.Items, item)
	o.recalculateTotal()
	return &o.Items[len(o.Items)-1], nil
}

func (o *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalCost)
	}
	o.TotalAmount = total
	o.Touch()
}

// MarkOrdered transitions the order to ORDERED
func (o *PurchaseOrder) MarkOrdered() error {
	return o.transition(OrderStatusOrdered)
}

// Cancel transitions the order to CANCELLED
func (o *PurchaseOrder) Cancel() error {
	return o.transition(OrderStatusCancelled)
}

// Receive transitions the order to RECEIVED and fixes the received
// quantities per line. receivedQuantities maps line item ID to the
// quantity actually delivered; lines absent from the map receive the
// full ordered quantity.
func (o *PurchaseOrder) Receive(receivedQuantities map[uuid.UUID]int) error {
	if !o.Status.CanTransitionTo(OrderStatusReceived) {
		return shared.ErrInvalidState
	}
	for i := range o.Items {
		qty, ok := receivedQuantities[o.Items[i].ID]
		if !ok {
			qty = o.Items[i].QuantityOrdered
		}
		if qty < 0 {
			return shared.NewDomainError("INVALID_QUANTITY", "Received quantity cannot be negative")
		}
		o.Items[i].QuantityReceived = qty
		o.Items[i].UpdatedAt = time.Now()
	}
	now := time.Now()
	o.Status = OrderStatusReceived
	o.ReceivedAt = &now
	o.Touch()
	return nil
}

// RecordPayment updates the amount paid to the supplier
func (o *PurchaseOrder) RecordPayment(paidAmount decimal.Decimal) error {
	if paidAmount.IsNegative() {
		return shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Paid amount cannot be negative")
	}
	o.PaidAmount = paidAmount
	o.Touch()
	return nil
}

func (o *PurchaseOrder) transition(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState
	}
	o.Status = target
	o.Touch()
	return nil
}

// TableName returns the database table name
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// GenerateOrderNumber produces a purchase order reference: PO<base36 ts>
func GenerateOrderNumber() string {
	return "PO" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}
