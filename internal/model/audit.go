package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit action constants for the approval workflow and its surroundings
const (
	ActionCreateAssessment = "CREATE_ASSESSMENT"
	ActionAnalyzeDoor      = "ANALYZE_DOOR"
	ActionCreatePlan       = "CREATE_CONSERVATION_PLAN"
	ActionSubmitApproval   = "SUBMIT_FOR_APPROVAL"
	ActionApproveStage     = "APPROVE_STAGE"
	ActionRejectStage      = "REJECT_STAGE"
	ActionAssignWork       = "ASSIGN_WORK"
	ActionCompleteWork     = "COMPLETE_WORK"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string         `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string         `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string         `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"` // serialized payload of the action
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}
