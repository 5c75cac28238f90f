package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice represents a billing invoice inside one branch database.
// Monetary amounts are stored in cents.
type Invoice struct {
	BaseModel
	Number        string        `json:"number" gorm:"uniqueIndex;not null;size:50"`
	CustomerID    uuid.UUID     `json:"customer_id" gorm:"type:uuid;not null;index"`
	Status        InvoiceStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	SubtotalCents int64         `json:"subtotal_cents" gorm:"not null;default:0"`
	TaxCents      int64         `json:"tax_cents" gorm:"not null;default:0"`
	TotalCents    int64         `json:"total_cents" gorm:"not null;default:0"`
	Notes         string        `json:"notes" gorm:"size:1000"`
	IssuedAt      *time.Time    `json:"issued_at,omitempty"`
	DueAt         *time.Time    `json:"due_at,omitempty"`

	// Relationships
	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}
