package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkStatus enum constants
const (
	WorkAssigned   = "assigned"
	WorkInProgress = "in_progress"
	WorkCompleted  = "completed"
)

// WorkAssignment hands an approved assessment to a contractor. Starting the
// work moves the assessment to in_progress, completing it to completed.
type WorkAssignment struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssessmentID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"assessment_id"`
	Assessment      *Assessment `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
	ContractorID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"contractor_id"`
	Contractor      *User      `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	AssignedBy      uuid.UUID  `gorm:"type:uuid;not null" json:"assigned_by"`
	Assigner        *User      `gorm:"foreignKey:AssignedBy" json:"assigner,omitempty"`
	AssignedAt      time.Time  `gorm:"autoCreateTime" json:"assigned_at"`
	DueDate         *time.Time `json:"due_date"`
	Status          string     `gorm:"type:varchar(20);not null;default:'assigned'" json:"status"`
	CompletionNotes *string    `gorm:"type:text" json:"completion_notes"`
	CompletedAt     *time.Time `json:"completed_at"`
}
