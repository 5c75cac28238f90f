package models

// Organization represents a tenant-owner account in the central catalog.
// A self-plan organization owns exactly one branch; an organization-plan
// account may own many.
type Organization struct {
	BaseModel
	Name       string             `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	OwnerEmail string             `json:"owner_email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	Status     OrganizationStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	PlanType   PlanType           `json:"plan_type" gorm:"type:varchar(20);not null;default:'self'"`

	// Relationships
	Branches []Branch `json:"branches,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
