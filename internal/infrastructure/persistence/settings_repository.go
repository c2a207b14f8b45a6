package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/isms/backend/internal/domain/settings"
)

// GormSettingsRepository implements the settings Repository using GORM.
// The table holds a single row which is seeded with defaults on first
// load.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Load returns the settings record, seeding defaults when none exists
func (r *GormSettingsRepository) Load(ctx context.Context) (*settings.Settings, error) {
	var record settings.Settings
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := settings.Defaults()
	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		return nil, err
	}
	return defaults, nil
}

// Save persists the settings record
func (r *GormSettingsRepository) Save(ctx context.Context, record *settings.Settings) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Ensure GormSettingsRepository implements Repository
var _ settings.Repository = (*GormSettingsRepository)(nil)
