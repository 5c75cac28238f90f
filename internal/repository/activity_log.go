package repository

import (
	"branch-billing-backend/internal/database/models"

	"gorm.io/gorm"
)

// ActivityLogRepository handles database operations for one branch's audit trail
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository bound to one connection
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create records an audit event
func (r *ActivityLogRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// GetAll retrieves audit events with pagination, newest first
func (r *ActivityLogRepository) GetAll(limit, offset int) ([]models.ActivityLog, int64, error) {
	var entries []models.ActivityLog
	var total int64

	if err := r.db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Order("created_at desc").Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// GetByEntity retrieves audit events for one entity type with pagination
func (r *ActivityLogRepository) GetByEntity(entity string, limit, offset int) ([]models.ActivityLog, int64, error) {
	var entries []models.ActivityLog
	var total int64

	query := r.db.Model(&models.ActivityLog{}).Where("entity = ?", entity)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("created_at desc").Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
