package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/isms/backend/internal/domain/shared"
)

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	shared.Repository[Sale]
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*Sale, error)
	FindRecent(ctx context.Context, limit int) ([]Sale, error)
	FindInstallmentSales(ctx context.Context) ([]Sale, error)
	FindSince(ctx context.Context, since *time.Time) ([]Sale, error)
}

// InstallmentPaymentRepository stores the append-only payment ledger
type InstallmentPaymentRepository interface {
	Save(ctx context.Context, payment *InstallmentPayment) error
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]InstallmentPayment, error)
}
