package settings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/settings"
	"github.com/isms/backend/internal/domain/shared"
)

// MockSettingsRepository is a mock implementation of settings.Repository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (*settings.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, record *settings.Settings) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func TestSettingsService_Get(t *testing.T) {
	ctx := context.Background()

	repo := new(MockSettingsRepository)
	service := NewSettingsService(repo, nil, zap.NewNop())

	repo.On("Load", ctx).Return(settings.Defaults(), nil)

	resp, err := service.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Shop", resp.BusinessName)
	assert.Equal(t, "TZS", resp.Currency)
	assert.Equal(t, 30, resp.ExpiryAlertDays)
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("merges changed fields and saves", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		service := NewSettingsService(repo, nil, zap.NewNop())

		repo.On("Load", ctx).Return(settings.Defaults(), nil)
		repo.On("Save", ctx, mock.MatchedBy(func(record *settings.Settings) bool {
			return record.BusinessName == "Mariam Electronics" && record.TaxRate.Equal(decimal.NewFromInt(18))
		})).Return(nil)

		name := "Mariam Electronics"
		tax := decimal.NewFromInt(18)
		resp, err := service.Update(ctx, UpdateSettingsRequest{
			BusinessName: &name,
			TaxRate:      &tax,
		})
		require.NoError(t, err)
		assert.Equal(t, "Mariam Electronics", resp.BusinessName)
		assert.Equal(t, "Thank you for your business!", resp.ReceiptFooter)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown currency", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		service := NewSettingsService(repo, nil, zap.NewNop())

		repo.On("Load", ctx).Return(settings.Defaults(), nil)

		currency := "DOUBLOONS"
		_, err := service.Update(ctx, UpdateSettingsRequest{Currency: &currency})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CURRENCY", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
