package models

import (
	"time"

	"gorm.io/datatypes"
)

// Approval audit entity types.
const (
	AuditEntityApplication = "teacher_application"
	AuditEntityClass       = "class"
)

// ApprovalAudit records an admin decision. It is written in the same
// transaction as the status change it describes.
type ApprovalAudit struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	EntityType string            `gorm:"size:64;not null;index" json:"entityType"`
	EntityID   uint              `gorm:"not null;index" json:"entityId"`
	ActorEmail string            `gorm:"size:255" json:"actorEmail"`
	FromStatus ApprovalStatus    `gorm:"size:16" json:"fromStatus"`
	ToStatus   ApprovalStatus    `gorm:"size:16;not null" json:"toStatus"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"createdAt"`
}
