package models

// Customer represents a billing customer of one branch
type Customer struct {
	BaseModel
	Name      string `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Email     string `json:"email" gorm:"uniqueIndex;size:255" validate:"omitempty,email,max=255"`
	Phone     string `json:"phone" gorm:"size:30"`
	Address   string `json:"address" gorm:"size:500"`
	TaxNumber string `json:"tax_number" gorm:"size:50"`

	// Relationships
	Invoices []Invoice `json:"invoices,omitempty" gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for Customer
func (Customer) TableName() string {
	return "customers"
}
