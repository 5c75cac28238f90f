package repository

import (
	"branch-billing-backend/internal/database/models"

	"gorm.io/gorm"
)

// SettingsRepository handles the single settings row of one branch
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository bound to one connection
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves the branch settings row
func (r *SettingsRepository) Get() (*models.Settings, error) {
	var settings models.Settings
	err := r.db.First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert creates the settings row or updates the existing one
func (r *SettingsRepository) Upsert(settings *models.Settings) error {
	var existing models.Settings
	err := r.db.First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(settings).Error
	}
	if err != nil {
		return err
	}
	settings.ID = existing.ID
	return r.db.Save(settings).Error
}
