package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"gorm.io/gorm"
)

// PlanRepository defines the interface for data access of ConservationPlan
// entities. Plans are 1:1 with assessments and immutable after creation.
type PlanRepository interface {
	Create(ctx context.Context, plan *model.ConservationPlan) error
	GetByAssessment(ctx context.Context, assessmentID string) (*model.ConservationPlan, error)
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository returns the GORM-backed PlanRepository
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *model.ConservationPlan) error {
	return GetDB(ctx, r.db).Create(plan).Error
}

func (r *planRepository) GetByAssessment(ctx context.Context, assessmentID string) (*model.ConservationPlan, error) {
	var plan model.ConservationPlan
	err := GetDB(ctx, r.db).First(&plan, "assessment_id = ?", assessmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}
