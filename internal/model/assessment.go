package model

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentStatus enum constants. The three pending_* statuses form the
// sequential approval chain; in_progress/completed belong to the
// post-approval work assignment flow.
const (
	StatusDraft               = "draft"
	StatusPendingSurveyor     = "pending_surveyor"
	StatusPendingConservation = "pending_conservation"
	StatusPendingBudget       = "pending_budget"
	StatusApproved            = "approved"
	StatusRejected            = "rejected"
	StatusInProgress          = "in_progress"
	StatusCompleted           = "completed"
)

// UrgencyLevel enum constants for the AI condition analysis
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// DefaultConditionRating is used before any analysis exists and for unknown
// urgency levels.
const DefaultConditionRating = 3

// AIAnalysis is the structured condition analysis produced by the external
// vision service. Stored embedded on the assessment, never referenced
// independently.
type AIAnalysis struct {
	DoorType                 string   `json:"door_type"`
	EstimatedAge             string   `json:"estimated_age"`
	ConditionSummary         string   `json:"condition_summary"`
	ConservationConcerns     []string `json:"conservation_concerns"`
	RecommendedInterventions []string `json:"recommended_interventions"`
	HeritageConsiderations   []string `json:"heritage_considerations"`
	UrgencyLevel             string   `json:"urgency_level"`
}

// Assessment is one door-condition record and its approval journey.
// Status is mutated only through the workflow engine; the analysis fields
// only through the analysis service.
type Assessment struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SiteID       uuid.UUID `gorm:"type:uuid;not null;index" json:"site_id"`
	Site         *Site     `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	Creator      *User     `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	PhotoURL     string    `gorm:"type:text" json:"photo_url"`
	PhotoTakenAt time.Time `json:"photo_taken_at"`
	DoorType     string    `gorm:"type:varchar(255)" json:"door_type"` // empty until AI analysis runs
	DoorLocation string    `gorm:"type:varchar(255)" json:"door_location"`

	// Optional capture geolocation. Accuracy 0 signals manually entered,
	// unverified coordinates.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`

	AIAnalysis      *AIAnalysis `gorm:"type:jsonb;serializer:json" json:"ai_analysis"`
	ConditionRating int         `gorm:"not null;default:3" json:"condition_rating"` // 1-5, 1 = most severe
	Status          string      `gorm:"type:varchar(30);not null;default:'draft';index" json:"status"`

	ConservationPlan *ConservationPlan `gorm:"foreignKey:AssessmentID" json:"conservation_plan,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
