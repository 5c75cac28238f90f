package models

// User represents a staff account inside one branch database. Users are
// branch-local: the same email or ID may exist in different branches and
// they are never cross-checked against another branch.
type User struct {
	BaseModel
	FirstName    string   `json:"first_name" gorm:"size:100"`
	LastName     string   `json:"last_name" gorm:"size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'staff'"`
	Active       bool     `json:"active" gorm:"not null;default:true"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
