package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ActivityLog records an audit event inside one branch database. Writes are
// fire-and-forget: a failed log write never aborts the request that caused it.
type ActivityLog struct {
	BaseModel
	ActorID  *uuid.UUID      `json:"actor_id,omitempty" gorm:"type:uuid;index"`
	Action   string          `json:"action" gorm:"not null;size:50"`
	Entity   string          `json:"entity" gorm:"not null;size:50"`
	EntityID string          `json:"entity_id" gorm:"size:40"`
	Detail   json.RawMessage `json:"detail,omitempty" gorm:"type:jsonb"`
}

// TableName returns the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}
