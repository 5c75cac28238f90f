package models

import (
	"github.com/google/uuid"
)

// Branch represents one isolated billing database belonging to an
// organization. The slug is the external tenant identifier: globally unique
// and immutable once assigned. The DSN is the connection descriptor used to
// open the branch database on first access.
type Branch struct {
	BaseModel
	OrganizationID uuid.UUID    `json:"organization_id" gorm:"type:uuid;not null;index"`
	Name           string       `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Slug           string       `json:"slug" gorm:"uniqueIndex;not null;size:100" validate:"required,min=1,max=100"`
	DSN            string       `json:"-" gorm:"column:dsn;not null;size:512"`
	Status         BranchStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`

	// Relationships
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for Branch
func (Branch) TableName() string {
	return "branches"
}

// IsActive reports whether the branch may accept connections
func (b *Branch) IsActive() bool {
	return b.Status == BranchActive
}
