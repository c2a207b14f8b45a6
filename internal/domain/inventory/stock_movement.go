package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/isms/backend/internal/domain/shared"
)

// MovementType classifies a stock ledger entry
type MovementType string

const (
	MovementStockIn          MovementType = "STOCK_IN"
	MovementStockOut         MovementType = "STOCK_OUT"
	MovementAdjustment       MovementType = "ADJUSTMENT"
	MovementReturnResellable MovementType = "RETURN_RESELLABLE"
	MovementReturnFaulty     MovementType = "RETURN_FAULTY"
)

// IsValid checks if the movement type is a known value
func (m MovementType) IsValid() bool {
	switch m {
	case MovementStockIn, MovementStockOut, MovementAdjustment, MovementReturnResellable, MovementReturnFaulty:
		return true
	}
	return false
}

// StockMovement is an append-only audit row. Every stock quantity
// mutation anywhere in the system writes exactly one of these in the
// same transaction as the mutation itself.
type StockMovement struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Type      MovementType `gorm:"not null"`
	Quantity  int          `gorm:"not null"`
	Reference string
	Reason    string
	CreatedAt time.Time
}

// NewStockMovement creates a stock ledger entry
func NewStockMovement(productID uuid.UUID, movementType MovementType, quantity int, reference, reason string) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown stock movement type")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}
	return &StockMovement{
		ID:        uuid.New(),
		ProductID: productID,
		Type:      movementType,
		Quantity:  quantity,
		Reference: reference,
		Reason:    reason,
		CreatedAt: time.Now(),
	}, nil
}

// TableName returns the database table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// StockMovementRepository stores the append-only stock ledger
type StockMovementRepository interface {
	Save(ctx context.Context, movement *StockMovement) error
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)
}
