package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EffortLevel enum constants. The level is supplied at plan-authoring time,
// not derived from hours; they may diverge for policy reasons such as
// critical materials availability.
const (
	EffortLow      = "low"
	EffortMedium   = "medium"
	EffortHigh     = "high"
	EffortCritical = "critical"
)

// HeritageGrade enum constants for material requirements
const (
	GradeStandard     = "standard"
	GradeConservation = "conservation"
	GradeMuseum       = "museum"
)

// MaterialRequirement is one costed line of a conservation plan.
// TotalPrice = Quantity * UnitPrice, exact (no per-line rounding).
type MaterialRequirement struct {
	MaterialID    string          `json:"material_id"`
	MaterialName  string          `json:"material_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Supplier      string          `json:"supplier"`
	HeritageGrade string          `json:"heritage_grade"`
}

// ConservationPlan is the costed work proposal attached 1:1 to an assessment.
// The material list is immutable after creation.
type ConservationPlan struct {
	ID                uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssessmentID      uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex" json:"assessment_id"`
	WorkDescription   string                `gorm:"type:text;not null" json:"work_description"`
	Materials         []MaterialRequirement `gorm:"type:jsonb;serializer:json" json:"materials"`
	TotalCost         decimal.Decimal       `gorm:"type:decimal(18,2);not null" json:"total_cost"`
	EffortHours       float64               `gorm:"not null;default:0" json:"effort_hours"`
	EffortLevel       string                `gorm:"type:varchar(20);not null" json:"effort_level"`
	ConservationNotes string                `gorm:"type:text" json:"conservation_notes"`
	CreatedAt         time.Time             `gorm:"autoCreateTime" json:"created_at"`
}

// ValidEffortLevel reports whether s is a known effort level
func ValidEffortLevel(s string) bool {
	switch s {
	case EffortLow, EffortMedium, EffortHigh, EffortCritical:
		return true
	}
	return false
}
