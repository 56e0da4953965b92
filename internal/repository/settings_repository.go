package repository

import (
	"context"

	"gorm.io/gorm"

	"magicstore/internal/model"
)

// SettingsRepository defines persistence for the single settings record.
type SettingsRepository interface {
	First(ctx context.Context) (*model.Settings, error)
	Create(ctx context.Context, settings *model.Settings) error
	Update(ctx context.Context, settings *model.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// First returns the settings row, or gorm.ErrRecordNotFound when the table
// is empty. Singleton-by-convention: callers go through the service's
// get-or-create-default path.
func (r *settingsRepository) First(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	if err := r.db.WithContext(ctx).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Create persists a new settings row.
func (r *settingsRepository) Create(ctx context.Context, settings *model.Settings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

// Update saves the settings row. Last write wins.
func (r *settingsRepository) Update(ctx context.Context, settings *model.Settings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
