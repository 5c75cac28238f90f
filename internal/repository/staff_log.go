package repository

import (
	"branch-billing-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffLogRepository handles database operations for one branch's staff logs
type StaffLogRepository struct {
	db *gorm.DB
}

// NewStaffLogRepository creates a new staff log repository bound to one connection
func NewStaffLogRepository(db *gorm.DB) *StaffLogRepository {
	return &StaffLogRepository{db: db}
}

// Create records a staff log entry
func (r *StaffLogRepository) Create(entry *models.StaffLog) error {
	return r.db.Create(entry).Error
}

// GetByUserID retrieves one user's log entries with pagination, newest first
func (r *StaffLogRepository) GetByUserID(userID uuid.UUID, limit, offset int) ([]models.StaffLog, int64, error) {
	var entries []models.StaffLog
	var total int64

	query := r.db.Model(&models.StaffLog{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("occurred_at desc").Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// GetAll retrieves all log entries with pagination, newest first
func (r *StaffLogRepository) GetAll(limit, offset int) ([]models.StaffLog, int64, error) {
	var entries []models.StaffLog
	var total int64

	if err := r.db.Model(&models.StaffLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Order("occurred_at desc").Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
