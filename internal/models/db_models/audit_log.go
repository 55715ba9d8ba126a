package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog records admin-side state changes (subscription approvals,
// document reviews, store suspensions). Append-only.
type AuditLog struct {
	BaseModel
	ActorID    uuid.UUID      `gorm:"index;not null"`
	Action     string         `gorm:"index;not null"`
	EntityType string         `gorm:"index"`
	EntityID   string         `gorm:"index"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
