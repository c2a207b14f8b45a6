package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/isms/backend/internal/domain/sales"
)

// GormInstallmentPaymentRepository implements InstallmentPaymentRepository using GORM
type GormInstallmentPaymentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentPaymentRepository creates a new GormInstallmentPaymentRepository
func NewGormInstallmentPaymentRepository(db *gorm.DB) *GormInstallmentPaymentRepository {
	return &GormInstallmentPaymentRepository{db: db}
}

// Save appends a ledger entry. Entries are never updated.
func (r *GormInstallmentPaymentRepository) Save(ctx context.Context, payment *sales.InstallmentPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindBySale returns the payment ledger for a sale, oldest first
func (r *GormInstallmentPaymentRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]sales.InstallmentPayment, error) {
	var payments []sales.InstallmentPayment
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Ensure GormInstallmentPaymentRepository implements InstallmentPaymentRepository
var _ sales.InstallmentPaymentRepository = (*GormInstallmentPaymentRepository)(nil)
