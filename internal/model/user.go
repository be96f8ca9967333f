package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole enum constants for the fixed five-role model. Only the first three
// carry approval responsibilities (see workflow.ApprovalTypeForRole).
const (
	RoleSurveyor            = "surveyor"
	RoleConservationOfficer = "conservation_officer"
	RoleBudgetHolder        = "budget_holder"
	RoleContractor          = "contractor"
	RoleAdmin               = "admin"
)

// User represents the central user entity for logic and database structure
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	Role      string         `gorm:"type:varchar(50);not null" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

// ValidRole reports whether role is one of the five known roles
func ValidRole(role string) bool {
	switch role {
	case RoleSurveyor, RoleConservationOfficer, RoleBudgetHolder, RoleContractor, RoleAdmin:
		return true
	}
	return false
}
