package repositories

import (
	"context"
	"errors"

	"autopro-rental/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// settingsRepository implements SettingsRepository interface
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row, falling back to defaults when the
// table is still empty.
func (r *settingsRepository) Get(ctx context.Context) (*models.SystemSettings, error) {
	var settings models.SystemSettings
	err := r.db.WithContext(ctx).First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save upserts the single settings row
func (r *settingsRepository) Save(ctx context.Context, settings *models.SystemSettings) error {
	settings.ID = 1
	return r.db.WithContext(ctx).Save(settings).Error
}
