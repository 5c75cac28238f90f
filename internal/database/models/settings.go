package models

// Settings holds per-branch billing configuration. Each branch database
// carries at most one row.
type Settings struct {
	BaseModel
	BusinessName  string `json:"business_name" gorm:"size:200"`
	Currency      string `json:"currency" gorm:"size:3;not null;default:'USD'"`
	TaxRateBasis  int64  `json:"tax_rate_basis" gorm:"not null;default:0"` // basis points, e.g. 825 = 8.25%
	InvoicePrefix string `json:"invoice_prefix" gorm:"size:10;not null;default:'INV'"`
}

// TableName returns the table name for Settings
func (Settings) TableName() string {
	return "settings"
}
