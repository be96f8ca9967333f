package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"gorm.io/gorm"
)

// AssessmentRepository defines the interface for data access of Assessment
// entities. Reads join the site, creator and conservation plan; the
// ownership direction stays with the assessment.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	GetByID(ctx context.Context, id string) (*model.Assessment, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Assessment, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// SetAnalysis applies the AI analysis outcome as a single mutation:
	// payload, door type and derived condition rating together.
	SetAnalysis(ctx context.Context, id string, analysis *model.AIAnalysis, doorType string, rating int) error
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository returns the GORM-backed AssessmentRepository
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	return GetDB(ctx, r.db).Create(assessment).Error
}

func (r *assessmentRepository) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	var assessment model.Assessment
	err := GetDB(ctx, r.db).
		Preload("Site").
		Preload("Creator").
		Preload("ConservationPlan").
		First(&assessment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) List(ctx context.Context, status string, page, limit int) ([]model.Assessment, int64, error) {
	var total int64
	query := GetDB(ctx, r.db).Model(&model.Assessment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var assessments []model.Assessment
	fetch := GetDB(ctx, r.db).
		Preload("Site").
		Preload("Creator").
		Preload("ConservationPlan")
	if status != "" {
		fetch = fetch.Where("status = ?", status)
	}
	if err := fetch.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&assessments).Error; err != nil {
		return nil, 0, err
	}

	return assessments, total, nil
}

func (r *assessmentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res := GetDB(ctx, r.db).Model(&model.Assessment{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *assessmentRepository) SetAnalysis(ctx context.Context, id string, analysis *model.AIAnalysis, doorType string, rating int) error {
	res := GetDB(ctx, r.db).Model(&model.Assessment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ai_analysis":      analysis,
			"door_type":        doorType,
			"condition_rating": rating,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
