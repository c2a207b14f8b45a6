package settings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/settings"
	"github.com/isms/backend/internal/domain/shared/valueobject"
)

// SettingsCache caches the shop settings record. Implementations must
// tolerate a nil receiver.
type SettingsCache interface {
	Get(ctx context.Context) (*settings.Settings, error)
	Set(ctx context.Context, record *settings.Settings)
	Invalidate(ctx context.Context)
}

// UpdateSettingsRequest carries the editable settings fields. Nil
// fields are left unchanged.
type UpdateSettingsRequest struct {
	BusinessName    *string          `json:"businessName"`
	Address         *string          `json:"address"`
	Phone           *string          `json:"phone"`
	Email           *string          `json:"email"`
	Currency        *string          `json:"currency"`
	TaxRate         *decimal.Decimal `json:"taxRate"`
	ReceiptFooter   *string          `json:"receiptFooter"`
	LowStockAlert   *bool            `json:"lowStockAlert"`
	ExpiryAlert     *bool            `json:"expiryAlert"`
	ExpiryAlertDays *int             `json:"expiryAlertDays"`
}

// SettingsResponse is the API representation of the settings record
type SettingsResponse struct {
	BusinessName    string          `json:"businessName"`
	Address         string          `json:"address"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	Currency        string          `json:"currency"`
	CurrencySymbol  string          `json:"currencySymbol"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	ReceiptFooter   string          `json:"receiptFooter"`
	LowStockAlert   bool            `json:"lowStockAlert"`
	ExpiryAlert     bool            `json:"expiryAlert"`
	ExpiryAlertDays int             `json:"expiryAlertDays"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// SettingsService manages the shop-wide configuration record
type SettingsService struct {
	repo   settings.Repository
	cache  SettingsCache
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService. cache may be nil.
func NewSettingsService(repo settings.Repository, cache SettingsCache, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Get returns the settings record, seeding defaults on first call
func (s *SettingsService) Get(ctx context.Context) (*SettingsResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return toResponse(cached), nil
		}
	}

	record, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, record)
	}
	return toResponse(record), nil
}

// Update merges the changed fields into the record
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error) {
	record, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	update := settings.Update{
		BusinessName:    req.BusinessName,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		TaxRate:         req.TaxRate,
		ReceiptFooter:   req.ReceiptFooter,
		LowStockAlert:   req.LowStockAlert,
		ExpiryAlert:     req.ExpiryAlert,
		ExpiryAlertDays: req.ExpiryAlertDays,
	}
	if req.Currency != nil {
		currency := valueobject.Currency(*req.Currency)
		update.Currency = &currency
	}

	if err := record.Apply(update); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.logger.Info("Settings updated", zap.String("business_name", record.BusinessName))
	return toResponse(record), nil
}

func toResponse(record *settings.Settings) *SettingsResponse {
	return &SettingsResponse{
		BusinessName:    record.BusinessName,
		Address:         record.Address,
		Phone:           record.Phone,
		Email:           record.Email,
		Currency:        string(record.Currency),
		CurrencySymbol:  record.CurrencySymbol(),
		TaxRate:         record.TaxRate,
		ReceiptFooter:   record.ReceiptFooter,
		LowStockAlert:   record.LowStockAlert,
		ExpiryAlert:     record.ExpiryAlert,
		ExpiryAlertDays: record.ExpiryAlertDays,
		UpdatedAt:       record.UpdatedAt,
	}
}
