package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/vision"

	"github.com/google/uuid"
)

// AnalysisService runs the vision service against an assessment's photo and
// persists the outcome. The external call happens first and the assessment
// is only touched on success, so a failed analysis leaves the record
// exactly as it was and the operation can simply be retried.
type AnalysisService interface {
	AnalyzeDoor(ctx context.Context, assessmentID, actorID string, image []byte, mediaType string) (*model.Assessment, error)
}

type analysisService struct {
	assessments repository.AssessmentRepository
	analyzer    vision.Analyzer
	audits      repository.AuditRepository
}

// NewAnalysisService returns a new instance of AnalysisService
func NewAnalysisService(assessments repository.AssessmentRepository, analyzer vision.Analyzer, audits repository.AuditRepository) AnalysisService {
	return &analysisService{assessments: assessments, analyzer: analyzer, audits: audits}
}

func (s *analysisService) AnalyzeDoor(ctx context.Context, assessmentID, actorID string, image []byte, mediaType string) (*model.Assessment, error) {
	if _, err := s.assessments.GetByID(ctx, assessmentID); err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}

	analysis, err := s.analyzer.AnalyzeDoor(ctx, image, mediaType)
	if err != nil {
		return nil, err
	}

	rating := vision.RatingForUrgency(analysis.UrgencyLevel)
	if err := s.assessments.SetAnalysis(ctx, assessmentID, analysis, analysis.DoorType, rating); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}

	if actor, parseErr := uuid.Parse(actorID); parseErr == nil {
		recordAudit(ctx, s.audits, actor, model.ActionAnalyzeDoor,
			assessmentID, analysis.DoorType, map[string]interface{}{
				"urgency_level":    analysis.UrgencyLevel,
				"condition_rating": rating,
			})
	}

	return s.assessments.GetByID(ctx, assessmentID)
}
