package purchasing

import (
	"context"
	"time"

	"github.com/isms/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines persistence operations for purchase orders
type PurchaseOrderRepository interface {
	shared.Repository[PurchaseOrder]
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)
	FindReceivedSince(ctx context.Context, since *time.Time) ([]PurchaseOrder, error)
}
