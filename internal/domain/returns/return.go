package returns

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isms/backend/internal/domain/shared"
)

// ItemStatus is the disposition of a returned unit
type ItemStatus string

const (
	ItemStatusPending    ItemStatus = "PENDING"
	ItemStatusResellable ItemStatus = "RESELLABLE"
	ItemStatusFaulty     ItemStatus = "FAULTY"
	ItemStatusDiscarded  ItemStatus = "DISCARDED"
)

// IsValid checks if the status is a known value
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPending, ItemStatusResellable, ItemStatusFaulty, ItemStatusDiscarded:
		return true
	}
	return false
}

// AwardType is what the customer was given for the returned unit
type AwardType string

const (
	AwardRefund      AwardType = "REFUND"
	AwardReplacement AwardType = "REPLACEMENT"
	AwardRepair      AwardType = "REPAIR"
	AwardStoreCredit AwardType = "STORE_CREDIT"
)

// IsValid checks if the award type is a known value
func (a AwardType) IsValid() bool {
	switch a {
	case AwardRefund, AwardReplacement, AwardRepair, AwardStoreCredit:
		return true
	}
	return false
}

// DifferencePayer identifies who covers a replacement price difference
type DifferencePayer string

const (
	PayerClient   DifferencePayer = "CLIENT"
	PayerBusiness DifferencePayer = "BUSINESS"
)

// ReturnItem is one returned line with its award computation
type ReturnItem struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReturnID                uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID               uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity                int       `gorm:"not null"`
	Reason                  string
	Status                  ItemStatus `gorm:"not null;default:'PENDING'"`
	RefundAmount            decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AwardedType             AwardType       `gorm:"not null;default:'REFUND'"`
	AwardedAmount           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RepairCost              decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ReplacementProductID    *uuid.UUID `gorm:"type:uuid"`
	ReplacementProductName  *string
	ReplacementProductPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OriginalProductValue    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PriceDifference         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DifferencePaidBy        DifferencePayer `gorm:"not null;default:'CLIENT'"`
	Notes                   *string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// ChangeStatus amends the disposition after the return was recorded.
// Stock effects applied at creation are never replayed.
func (i *ReturnItem) ChangeStatus(status ItemStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_RETURN_STATUS", "Unknown return item status")
	}
	i.Status = status
	i.UpdatedAt = time.Now()
	return nil
}

// TableName returns the database table name
func (ReturnItem) TableName() string {
	return "return_items"
}

// ItemInput carries the caller-supplied fields for one return line.
// Replacement pricing is resolved by the engine, not trusted from the
// caller.
type ItemInput struct {
	ProductID            uuid.UUID
	Quantity             int
	Reason               string
	Status               ItemStatus
	AwardedType          AwardType
	RefundAmount         decimal.Decimal
	AwardedAmount        decimal.Decimal
	RepairCost           decimal.Decimal
	ReplacementProductID *uuid.UUID
	OriginalProductValue decimal.Decimal
	Notes                string
}

// Return is the aggregate root for a processed customer return
type Return struct {
	shared.BaseEntity
	ReturnNumber string `gorm:"uniqueIndex;not null"`
	Reason       string
	ProcessedBy  string
	TotalRefund  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Items        []ReturnItem    `gorm:"foreignKey:ReturnID"`
}

// NewReturn creates a return record
func NewReturn(returnNumber, reason, processedBy string) (*Return, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	return &Return{
		BaseEntity:   shared.NewBaseEntity(),
		ReturnNumber: returnNumber,
		Reason:       reason,
		ProcessedBy:  processedBy,
		TotalRefund:  decimal.Zero,
		Items:        make([]ReturnItem, 0),
	}, nil
}

// AddItem evaluates one return line. originalUnitPrice is the returned
// product's selling price (used when the caller supplied no original
// value); replacementUnitPrice is the replacement product's selling
// price and is only consulted for REPLACEMENT awards.
//
// For a replacement of original value O and replacement value R the
// stored priceDifference is |R-O|: the client tops up when the
// replacement is dearer, the business refunds the gap when it is
// cheaper.
func (r *Return) AddItem(input ItemInput, originalUnitPrice, replacementUnitPrice decimal.Decimal, replacementName string) (*ReturnItem, error) {
	if input.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if input.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	status := input.Status
	if status == "" {
		status = ItemStatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_RETURN_STATUS", "Unknown return item status")
	}
	awarded := input.AwardedType
	if awarded == "" {
		awarded = AwardRefund
	}
	if !awarded.IsValid() {
		return nil, shared.NewDomainError("INVALID_AWARD_TYPE", "Unknown award type")
	}

	originalValue := input.OriginalProductValue
	replacementPrice := decimal.Zero
	priceDifference := decimal.Zero
	paidBy := PayerClient

	if awarded == AwardReplacement && input.ReplacementProductID != nil {
		replacementPrice = replacementUnitPrice
		if originalValue.IsZero() {
			originalValue = originalUnitPrice
		}
		diff := replacementPrice.Sub(originalValue)
		switch {
		case diff.IsPositive():
			priceDifference = diff
			paidBy = PayerClient
		case diff.IsNegative():
			priceDifference = diff.Abs()
			paidBy = PayerBusiness
		}
	}

	now := time.Now()
	item := ReturnItem{
		ID:                      uuid.New(),
		ReturnID:                r.ID,
		ProductID:               input.ProductID,
		Quantity:                input.Quantity,
		Reason:                  input.Reason,
		Status:                  status,
		RefundAmount:            input.RefundAmount,
		AwardedType:             awarded,
		AwardedAmount:           input.AwardedAmount,
		RepairCost:              input.RepairCost,
		ReplacementProductID:    input.ReplacementProductID,
		ReplacementProductPrice: replacementPrice,
		OriginalProductValue:    originalValue,
		PriceDifference:         priceDifference,
		DifferencePaidBy:        paidBy,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if replacementName != "" {
		item.ReplacementProductName = &replacementName
	}
	if input.Notes != "" {
		item.Notes = &input.Notes
	}
	r.Items = append(r.Items, item)
	r.recalculateTotal()
	return &r.Items[len(r.Items)-1], nil
}

// recalculateTotal keeps the original system's aggregation: refunds on
// REFUND awards, plus every price difference regardless of payer, so
// historical receipts keep reconciling. Profit reporting splits the
// difference by payer itself.
func (r *Return) recalculateTotal() {
	total := decimal.Zero
	for _, item := range r.Items {
		if item.AwardedType == AwardRefund {
			total = total.Add(item.RefundAmount)
		}
		total = total.Add(item.PriceDifference)
	}
	r.TotalRefund = total
	r.Touch()
}

// TableName returns the database table name
func (Return) TableName() string {
	return "returns"
}

// GenerateReturnNumber produces a return reference: RET-<base36 ts>-<4 rand>
func GenerateReturnNumber() string {
	return "RET-" + base36Now() + "-" + randomSuffix(4)
}
