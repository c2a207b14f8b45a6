package returns

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/isms/backend/internal/domain/shared"
)

// ReturnRepository defines persistence operations for returns
type ReturnRepository interface {
	shared.Repository[Return]
	FindByReturnNumber(ctx context.Context, returnNumber string) (*Return, error)
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status ItemStatus) (*ReturnItem, error)
	FindItemsSince(ctx context.Context, since *time.Time) ([]ReturnItem, error)
}
