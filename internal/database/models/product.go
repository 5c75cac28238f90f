package models

// Product represents a sellable item or service of one branch
type Product struct {
	BaseModel
	SKU            string `json:"sku" gorm:"uniqueIndex;not null;size:50" validate:"required,max=50"`
	Name           string `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description    string `json:"description" gorm:"size:1000"`
	UnitPriceCents int64  `json:"unit_price_cents" gorm:"not null;default:0"`
	Active         bool   `json:"active" gorm:"not null;default:true"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "products"
}
