package settings

import (
	"context"
	"strings"

	"github.com/isms/backend/internal/domain/shared"
	"github.com/isms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Settings is the single shop-wide configuration record. Exactly one
// row exists; Load seeds defaults when the table is empty.
type Settings struct {
	shared.BaseEntity
	BusinessName    string               `gorm:"not null" json:"businessName"`
	Address         string               `json:"address"`
	Phone           string               `json:"phone"`
	Email           string               `json:"email"`
	Currency        valueobject.Currency `gorm:"not null;default:'TZS'" json:"currency"`
	TaxRate         decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0" json:"taxRate"`
	ReceiptFooter   string               `json:"receiptFooter"`
	LowStockAlert   bool                 `gorm:"not null;default:true" json:"lowStockAlert"`
	ExpiryAlert     bool                 `gorm:"not null;default:true" json:"expiryAlert"`
	ExpiryAlertDays int                  `gorm:"not null;default:30" json:"expiryAlertDays"`
}

// Defaults returns the settings record seeded on first load.
func Defaults() *Settings {
	return &Settings{
		BaseEntity:      shared.NewBaseEntity(),
		BusinessName:    "My Shop",
		Currency:        valueobject.TZS,
		TaxRate:         decimal.Zero,
		ReceiptFooter:   "Thank you for your business!",
		LowStockAlert:   true,
		ExpiryAlert:     true,
		ExpiryAlertDays: 30,
	}
}

// Update holds the editable subset of the settings record. Nil fields
// are left unchanged.
type Update struct {
	BusinessName    *string
	Address         *string
	Phone           *string
	Email           *string
	Currency        *valueobject.Currency
	TaxRate         *decimal.Decimal
	ReceiptFooter   *string
	LowStockAlert   *bool
	ExpiryAlert     *bool
	ExpiryAlertDays *int
}

// Apply merges an update into the record, validating each changed field.
func (s *Settings) Apply(update Update) error {
	if update.BusinessName != nil {
		name := strings.TrimSpace(*update.BusinessName)
		if name == "" {
			return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot be empty")
		}
		s.BusinessName = name
	}
	if update.Address != nil {
		s.Address = strings.TrimSpace(*update.Address)
	}
	if update.Phone != nil {
		s.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Email != nil {
		s.Email = strings.TrimSpace(*update.Email)
	}
	if update.Currency != nil {
		if !update.Currency.IsValid() {
			return shared.NewDomainError("INVALID_CURRENCY", "Unknown currency code")
		}
		s.Currency = *update.Currency
	}
	if update.TaxRate != nil {
		if update.TaxRate.IsNegative() || update.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
		}
		s.TaxRate = *update.TaxRate
	}
	if update.ReceiptFooter != nil {
		s.ReceiptFooter = strings.TrimSpace(*update.ReceiptFooter)
	}
	if update.LowStockAlert != nil {
		s.LowStockAlert = *update.LowStockAlert
	}
	if update.ExpiryAlert != nil {
		s.ExpiryAlert = *update.ExpiryAlert
	}
	if update.ExpiryAlertDays != nil {
		if *update.ExpiryAlertDays < 1 {
			return shared.NewDomainError("INVALID_EXPIRY_ALERT_DAYS", "Expiry alert window must be at least one day")
		}
		s.ExpiryAlertDays = *update.ExpiryAlertDays
	}
	s.Touch()
	return nil
}

// CurrencySymbol returns the display symbol for the configured currency.
func (s *Settings) CurrencySymbol() string {
	return s.Currency.Symbol()
}

// TableName returns the database table name
func (Settings) TableName() string {
	return "settings"
}

// Repository loads and saves the singleton record.
type Repository interface {
	// Load returns the record, seeding defaults when none exists.
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}
