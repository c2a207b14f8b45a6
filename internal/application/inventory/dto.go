package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/isms/backend/internal/domain/inventory"
)

// AdjustStockRequest applies a manual stock correction
type AdjustStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Delta     int       `json:"delta" binding:"required"`
	Reason    string    `json:"reason" binding:"required,min=1,max=500"`
}

// CreateStockCountRequest starts a counting sheet over the given products
type CreateStockCountRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" binding:"required,min=1"`
	Notes      string      `json:"notes"`
	CreatedBy  string      `json:"created_by"`
}

// RecordCountInput records the counted quantity for one sheet line
type RecordCountInput struct {
	ItemID     uuid.UUID `json:"item_id" binding:"required"`
	CountedQty int       `json:"counted_qty" binding:"min=0"`
	Notes      string    `json:"notes"`
}

// RecordCountsRequest records counted quantities on an open sheet
type RecordCountsRequest struct {
	Items []RecordCountInput `json:"items" binding:"required,min=1,dive"`
}

// StockMovementResponse is one ledger entry
type StockMovementResponse struct {
	ID        uuid.UUID              `json:"id"`
	ProductID uuid.UUID              `json:"product_id"`
	Type      inventory.MovementType `json:"type"`
	Quantity  int                    `json:"quantity"`
	Reference string                 `json:"reference"`
	Reason    string                 `json:"reason"`
	CreatedAt time.Time              `json:"created_at"`
}

// StockCountItemResponse is one counting sheet line
type StockCountItemResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	SystemQty  int       `json:"system_qty"`
	CountedQty *int      `json:"counted_qty,omitempty"`
	Variance   *int      `json:"variance,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}

// StockCountResponse represents a counting sheet
type StockCountResponse struct {
	ID            uuid.UUID                `json:"id"`
	CountNumber   string                   `json:"count_number"`
	Status        inventory.CountStatus    `json:"status"`
	Notes         *string                  `json:"notes,omitempty"`
	CreatedBy     string                   `json:"created_by"`
	StartedAt     time.Time                `json:"started_at"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
	VarianceCount int                      `json:"variance_count"`
	Items         []StockCountItemResponse `json:"items"`
}

// ToStockMovementResponse maps a ledger entry to its response shape
func ToStockMovementResponse(m *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reference: m.Reference,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}

// ToStockCountResponse maps a counting sheet to its response shape
func ToStockCountResponse(sc *inventory.StockCount) StockCountResponse {
	items := make([]StockCountItemResponse, 0, len(sc.Items))
	for _, item := range sc.Items {
		items = append(items, StockCountItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			SystemQty:  item.SystemQty,
			CountedQty: item.CountedQty,
			Variance:   item.Variance,
			Notes:      item.Notes,
		})
	}
	return StockCountResponse{
		ID:            sc.ID,
		CountNumber:   sc.CountNumber,
		Status:        sc.Status,
		Notes:         sc.Notes,
		CreatedBy:     sc.CreatedBy,
		StartedAt:     sc.StartedAt,
		CompletedAt:   sc.CompletedAt,
		VarianceCount: sc.VarianceCount(),
		Items:         items,
	}
}
