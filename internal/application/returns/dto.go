package returns

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isms/backend/internal/domain/returns"
)

// ReturnItemInput is one returned line in a create request
type ReturnItemInput struct {
	ProductID            uuid.UUID          `json:"product_id" binding:"required"`
	Quantity             int                `json:"quantity" binding:"required,min=1"`
	Reason               string             `json:"reason"`
	Status               returns.ItemStatus `json:"status"`
	AwardedType          returns.AwardType  `json:"awarded_type"`
	RefundAmount         decimal.Decimal    `json:"refund_amount"`
	AwardedAmount        decimal.Decimal    `json:"awarded_amount"`
	RepairCost           decimal.Decimal    `json:"repair_cost"`
	ReplacementProductID *uuid.UUID         `json:"replacement_product_id"`
	OriginalProductValue decimal.Decimal    `json:"original_product_value"`
	Notes                string             `json:"notes"`
}

// CreateReturnRequest records a processed customer return
type CreateReturnRequest struct {
	Reason      string            `json:"reason"`
	ProcessedBy string            `json:"processed_by"`
	Items       []ReturnItemInput `json:"items" binding:"required,min=1,dive"`
}

// AmendItemStatusRequest changes a return item's disposition
type AmendItemStatusRequest struct {
	Status returns.ItemStatus `json:"status" binding:"required"`
}

// ReturnItemResponse is one returned line with its award computation
type ReturnItemResponse struct {
	ID                      uuid.UUID               `json:"id"`
	ProductID               uuid.UUID               `json:"product_id"`
	Quantity                int                     `json:"quantity"`
	Reason                  string                  `json:"reason"`
	Status                  returns.ItemStatus      `json:"status"`
	RefundAmount            decimal.Decimal         `json:"refund_amount"`
	AwardedType             returns.AwardType       `json:"awarded_type"`
	AwardedAmount           decimal.Decimal         `json:"awarded_amount"`
	RepairCost              decimal.Decimal         `json:"repair_cost"`
	ReplacementProductID    *uuid.UUID              `json:"replacement_product_id,omitempty"`
	ReplacementProductName  *string                 `json:"replacement_product_name,omitempty"`
	ReplacementProductPrice decimal.Decimal         `json:"replacement_product_price"`
	OriginalProductValue    decimal.Decimal         `json:"original_product_value"`
	PriceDifference         decimal.Decimal         `json:"price_difference"`
	DifferencePaidBy        returns.DifferencePayer `json:"difference_paid_by"`
	Notes                   *string                 `json:"notes,omitempty"`
}

// ReturnResponse represents a processed return
type ReturnResponse struct {
	ID           uuid.UUID            `json:"id"`
	ReturnNumber string               `json:"return_number"`
	Reason       string               `json:"reason"`
	ProcessedBy  string               `json:"processed_by"`
	TotalRefund  decimal.Decimal      `json:"total_refund"`
	Items        []ReturnItemResponse `json:"items"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ToReturnItemResponse maps a return item to its response shape
func ToReturnItemResponse(item *returns.ReturnItem) ReturnItemResponse {
	return ReturnItemResponse{
		ID:                      item.ID,
		ProductID:               item.ProductID,
		Quantity:                item.Quantity,
		Reason:                  item.Reason,
		Status:                  item.Status,
		RefundAmount:            item.RefundAmount,
		AwardedType:             item.AwardedType,
		AwardedAmount:           item.AwardedAmount,
		RepairCost:              item.RepairCost,
		ReplacementProductID:    item.ReplacementProductID,
		ReplacementProductName:  item.ReplacementProductName,
		ReplacementProductPrice: item.ReplacementProductPrice,
		OriginalProductValue:    item.OriginalProductValue,
		PriceDifference:         item.PriceDifference,
		DifferencePaidBy:        item.DifferencePaidBy,
		Notes:                   item.Notes,
	}
}

// ToReturnResponse maps a return aggregate to its response shape
func ToReturnResponse(ret *returns.Return) ReturnResponse {
	items := make([]ReturnItemResponse, 0, len(ret.Items))
	for i := range ret.Items {
		items = append(items, ToReturnItemResponse(&ret.Items[i]))
	}
	return ReturnResponse{
		ID:           ret.ID,
		ReturnNumber: ret.ReturnNumber,
		Reason:       ret.Reason,
		ProcessedBy:  ret.ProcessedBy,
		TotalRefund:  ret.TotalRefund,
		Items:        items,
		CreatedAt:    ret.CreatedAt,
	}
}
