package models

import (
	"github.com/google/uuid"
)

// Inventory tracks stock levels for a product in one branch
type Inventory struct {
	BaseModel
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex"`
	Quantity     int64     `json:"quantity" gorm:"not null;default:0"`
	ReorderLevel int64     `json:"reorder_level" gorm:"not null;default:0"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for Inventory
func (Inventory) TableName() string {
	return "inventory"
}
