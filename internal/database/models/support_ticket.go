package models

import (
	"time"

	"github.com/google/uuid"
)

// SupportTicket represents a support request raised inside one branch
type SupportTicket struct {
	BaseModel
	Subject    string       `json:"subject" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Body       string       `json:"body" gorm:"size:2000"`
	Status     TicketStatus `json:"status" gorm:"type:varchar(20);not null;default:'open'"`
	OpenedByID uuid.UUID    `json:"opened_by_id" gorm:"type:uuid;not null;index"`
	ClosedAt   *time.Time   `json:"closed_at,omitempty"`

	// Relationships
	OpenedBy *User `json:"opened_by,omitempty" gorm:"foreignKey:OpenedByID"`
}

// TableName returns the table name for SupportTicket
func (SupportTicket) TableName() string {
	return "support_tickets"
}
