package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentPayment is an append-only ledger entry recording one
// partial payment against a credit sale. Amount snapshots the sale
// total, AmountPaid is this payment's increment, Balance the remaining
// due after it (signed, so overpayments are visible).
type InstallmentPayment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SaleID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Balance    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAt     time.Time       `gorm:"not null"`
	Notes      *string
	CreatedAt  time.Time
}

// NewInstallmentPayment creates a ledger entry for a recorded payment
func NewInstallmentPayment(saleID uuid.UUID, saleTotal, amountPaid, balance decimal.Decimal, notes string) *InstallmentPayment {
	p := &InstallmentPayment{
		ID:         uuid.New(),
		SaleID:     saleID,
		Amount:     saleTotal,
		AmountPaid: amountPaid,
		Balance:    balance,
		PaidAt:     time.Now(),
		CreatedAt:  time.Now(),
	}
	if notes != "" {
		p.Notes = &notes
	}
	return p
}

// TableName returns the database table name
func (InstallmentPayment) TableName() string {
	return "installment_payments"
}
