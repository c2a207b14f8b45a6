package inventory

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/isms/backend/internal/domain/shared"
)

// CountStatus is the lifecycle state of a stock count sheet
type CountStatus string

const (
	CountStatusInProgress CountStatus = "IN_PROGRESS"
	CountStatusCompleted  CountStatus = "COMPLETED"
	CountStatusCancelled  CountStatus = "CANCELLED"
)

// StockCountItem snapshots one product's system quantity and records
// what was physically counted. Variance = counted - system.
type StockCountItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	StockCountID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SystemQty    int       `gorm:"not null"`
	CountedQty   *int
	Variance     *int
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecordCount sets the counted quantity and derives the variance
func (i *StockCountItem) RecordCount(countedQty int, notes string) error {
	if countedQty < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
	}
	variance := countedQty - i.SystemQty
	i.CountedQty = &countedQty
	i.Variance = &variance
	if notes != "" {
		i.Notes = &notes
	}
	i.UpdatedAt = time.Now()
	return nil
}

// TableName returns the database table name
func (StockCountItem) TableName() string {
	return "stock_count_items"
}

// StockCount is a counting sheet: a snapshot of system quantities for
// a chosen set of products, filled in as shelves are counted, then
// completed to push counted quantities back into the catalog.
type StockCount struct {
	shared.BaseEntity
	CountNumber string      `gorm:"uniqueIndex;not null"`
	Status      CountStatus `gorm:"not null;default:'IN_PROGRESS'"`
	Notes       *string
	CreatedBy   string
	StartedAt   time.Time `gorm:"not null"`
	CompletedAt *time.Time
	Items       []StockCountItem `gorm:"foreignKey:StockCountID"`
}

// NewStockCount starts a counting sheet
func NewStockCount(countNumber, createdBy, notes string) (*StockCount, error) {
	if countNumber == "" {
		return nil, shared.NewDomainError("INVALID_COUNT_NUMBER", "Count number cannot be empty")
	}
	sc := &StockCount{
		BaseEntity:  shared.NewBaseEntity(),
		CountNumber: countNumber,
		Status:      CountStatusInProgress,
		CreatedBy:   createdBy,
		StartedAt:   time.Now(),
		Items:       make([]StockCountItem, 0),
	}
	if notes != "" {
		sc.Notes = &notes
	}
	return sc, nil
}

// AddItem snapshots a product's current system quantity onto the sheet
func (s *StockCount) AddItem(productID uuid.UUID, systemQty int) (*StockCountItem, error) {
	if s.Status != CountStatusInProgress {
		return nil, shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	now := time.Now()
	item := StockCountItem{
		ID:           uuid.New(),
		StockCountID: s.ID,
		ProductID:    productID,
		SystemQty:    systemQty,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Items = append(s.Items, item)
	s.Touch()
	return &s.Items[len(s.Items)-1], nil
}

// Complete closes the sheet. Counted quantities become the system
// quantities; the caller applies the catalog updates and movement rows.
func (s *StockCount) Complete() error {
	if s.Status != CountStatusInProgress {
		return shared.ErrInvalidState
	}
	now := time.Now()
	s.Status = CountStatusCompleted
	s.CompletedAt = &now
	s.Touch()
	return nil
}

// Cancel abandons the sheet without touching stock
func (s *StockCount) Cancel() error {
	if s.Status != CountStatusInProgress {
		return shared.ErrInvalidState
	}
	s.Status = CountStatusCancelled
	s.Touch()
	return nil
}

// VarianceCount reports how many lines differ from the system quantity
func (s *StockCount) VarianceCount() int {
	n := 0
	for _, item := range s.Items {
		if item.Variance != nil && *item.Variance != 0 {
			n++
		}
	}
	return n
}

// TableName returns the database table name
func (StockCount) TableName() string {
	return "stock_counts"
}

// GenerateCountNumber produces a count sheet reference: SC-<unix ms>
func GenerateCountNumber() string {
	return "SC-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// StockCountRepository defines persistence operations for stock counts
type StockCountRepository interface {
	shared.Repository[StockCount]
	FindByStatus(ctx context.Context, status CountStatus) ([]StockCount, error)
}
