package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"gorm.io/gorm"
)

// WorkAssignmentRepository defines the interface for data access of
// WorkAssignment entities
type WorkAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.WorkAssignment) error
	GetByID(ctx context.Context, id string) (*model.WorkAssignment, error)
	List(ctx context.Context, contractorID string) ([]model.WorkAssignment, error)
	Update(ctx context.Context, assignment *model.WorkAssignment) error
}

type workAssignmentRepository struct {
	db *gorm.DB
}

// NewWorkAssignmentRepository returns a new instance of WorkAssignmentRepository
func NewWorkAssignmentRepository(db *gorm.DB) WorkAssignmentRepository {
	return &workAssignmentRepository{db: db}
}

func (r *workAssignmentRepository) Create(ctx context.Context, assignment *model.WorkAssignment) error {
	return GetDB(ctx, r.db).Create(assignment).Error
}

func (r *workAssignmentRepository) GetByID(ctx context.Context, id string) (*model.WorkAssignment, error) {
	var assignment model.WorkAssignment
	err := GetDB(ctx, r.db).
		Preload("Contractor").
		Preload("Assigner").
		Preload("Assessment").
		Preload("Assessment.Site").
		First(&assignment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *workAssignmentRepository) List(ctx context.Context, contractorID string) ([]model.WorkAssignment, error) {
	query := GetDB(ctx, r.db).
		Preload("Contractor").
		Preload("Assigner").
		Preload("Assessment").
		Preload("Assessment.Site").
		Order("assigned_at DESC")
	if contractorID != "" {
		query = query.Where("contractor_id = ?", contractorID)
	}
	var assignments []model.WorkAssignment
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *workAssignmentRepository) Update(ctx context.Context, assignment *model.WorkAssignment) error {
	return GetDB(ctx, r.db).Save(assignment).Error
}
