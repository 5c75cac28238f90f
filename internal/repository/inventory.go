package repository

import (
	"branch-billing-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository handles database operations for one branch's stock levels
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository bound to one connection
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Upsert creates or replaces the inventory row for a product
func (r *InventoryRepository) Upsert(entry *models.Inventory) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "reorder_level", "updated_at"}),
	}).Create(entry).Error
}

// GetByProductID retrieves the inventory row for a product
func (r *InventoryRepository) GetByProductID(productID uuid.UUID) (*models.Inventory, error) {
	var entry models.Inventory
	err := r.db.First(&entry, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetAll retrieves all inventory rows with pagination
func (r *InventoryRepository) GetAll(limit, offset int) ([]models.Inventory, int64, error) {
	var entries []models.Inventory
	var total int64

	if err := r.db.Model(&models.Inventory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// AdjustQuantity atomically changes the stock level for a product
func (r *InventoryRepository) AdjustQuantity(productID uuid.UUID, delta int64) error {
	result := r.db.Model(&models.Inventory{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
