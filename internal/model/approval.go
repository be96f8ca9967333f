package model

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalType enum constants, one per stage of the approval chain
const (
	ApprovalTypeSurveyor     = "surveyor"
	ApprovalTypeConservation = "conservation"
	ApprovalTypeBudget       = "budget"
)

// ApprovalStatus enum constants
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Approval is one role's decision record for one assessment stage.
// Created pending when the assessment is submitted for the stage, decided
// exactly once, never re-opened.
type Approval struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssessmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"assessment_id"`
	ApproverID   uuid.UUID `gorm:"type:uuid;not null;index" json:"approver_id"`
	Approver     *User     `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
	ApprovalType string    `gorm:"type:varchar(20);not null;index" json:"approval_type"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Comments     *string   `gorm:"type:text" json:"comments"` // present only once decided
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ValidDecision reports whether s is a terminal approval decision
func ValidDecision(s string) bool {
	return s == ApprovalApproved || s == ApprovalRejected
}
