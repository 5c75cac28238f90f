package repository

import (
	"branch-billing-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BranchRepository handles catalog operations for branches. It is the
// Tenant Directory: authoritative reads against the central catalog with no
// caching of its own.
type BranchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// Create registers a new branch
func (r *BranchRepository) Create(branch *models.Branch) error {
	return r.db.Create(branch).Error
}

// GetByID retrieves a branch by ID
func (r *BranchRepository) GetByID(id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.First(&branch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// GetBySlug retrieves a branch by its unique slug
func (r *BranchRepository) GetBySlug(slug string) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.First(&branch, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// GetByOrganizationID retrieves all branches belonging to an organization
func (r *BranchRepository) GetByOrganizationID(orgID uuid.UUID) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db.Where("organization_id = ?", orgID).Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

// GetAll retrieves all branches with pagination
func (r *BranchRepository) GetAll(limit, offset int) ([]models.Branch, int64, error) {
	var branches []models.Branch
	var total int64

	if err := r.db.Model(&models.Branch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Find(&branches).Error
	if err != nil {
		return nil, 0, err
	}

	return branches, total, nil
}

// UpdateStatus changes a branch's lifecycle status
func (r *BranchRepository) UpdateStatus(slug string, status models.BranchStatus) error {
	result := r.db.Model(&models.Branch{}).Where("slug = ?", slug).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Archive marks a branch archived and soft-deletes it. The row is kept so
// cached connections can still be traced back to their catalog entry.
func (r *BranchRepository) Archive(slug string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Branch{}).Where("slug = ?", slug).Update("status", models.BranchArchived)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("slug = ?", slug).Delete(&models.Branch{}).Error
	})
}
