package models

import (
	"time"

	"github.com/google/uuid"
)

// StaffLog records shift and duty events for branch staff
type StaffLog struct {
	BaseModel
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Action     string    `json:"action" gorm:"not null;size:50"`
	Note       string    `json:"note" gorm:"size:500"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for StaffLog
func (StaffLog) TableName() string {
	return "staff_logs"
}
