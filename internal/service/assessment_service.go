package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/storage"

	"github.com/google/uuid"
)

// CreateAssessmentRequest carries the capture form fields. The photo itself
// arrives as a multipart part and is passed separately.
type CreateAssessmentRequest struct {
	SiteID       string   `form:"site_id" binding:"required,uuid"`
	DoorLocation string   `form:"door_location" binding:"required"`
	PhotoTakenAt string   `form:"photo_taken_at"`
	Latitude     *float64 `form:"latitude"`
	Longitude    *float64 `form:"longitude"`
	Accuracy     *float64 `form:"accuracy"`
}

// PhotoUpload is the raw uploaded door photo
type PhotoUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// AssessmentService manages assessment records. Status transitions are out
// of scope here and belong to the workflow engine.
type AssessmentService interface {
	Create(ctx context.Context, actorID string, req CreateAssessmentRequest, photo *PhotoUpload) (*model.Assessment, error)
	GetByID(ctx context.Context, id string) (*model.Assessment, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Assessment, int64, error)
}

type assessmentService struct {
	assessments repository.AssessmentRepository
	sites       repository.SiteRepository
	photos      storage.PhotoStore
	audits      repository.AuditRepository
}

// NewAssessmentService returns a new instance of AssessmentService
func NewAssessmentService(assessments repository.AssessmentRepository, sites repository.SiteRepository, photos storage.PhotoStore, audits repository.AuditRepository) AssessmentService {
	return &assessmentService{assessments: assessments, sites: sites, photos: photos, audits: audits}
}

func (s *assessmentService) Create(ctx context.Context, actorID string, req CreateAssessmentRequest, photo *PhotoUpload) (*model.Assessment, error) {
	creatorID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %w", err)
	}
	siteID, err := uuid.Parse(req.SiteID)
	if err != nil {
		return nil, fmt.Errorf("invalid site id: %w", err)
	}
	site, err := s.sites.GetByID(ctx, req.SiteID)
	if err != nil {
		return nil, fmt.Errorf("load site: %w", err)
	}

	takenAt := time.Now()
	if req.PhotoTakenAt != "" {
		if parsed, err := time.Parse(time.RFC3339, req.PhotoTakenAt); err == nil {
			takenAt = parsed
		}
	}

	var photoURL string
	if photo != nil {
		objectName := fmt.Sprintf("%s-%s", uuid.NewString(), photo.Filename)
		photoURL, err = s.photos.UploadPhoto(ctx, objectName, photo.Reader, photo.Size, photo.ContentType)
		if err != nil {
			return nil, fmt.Errorf("store photo: %w", err)
		}
	}

	assessment := &model.Assessment{
		SiteID:          siteID,
		CreatedBy:       creatorID,
		PhotoURL:        photoURL,
		PhotoTakenAt:    takenAt,
		DoorLocation:    req.DoorLocation,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Accuracy:        req.Accuracy,
		ConditionRating: model.DefaultConditionRating,
		Status:          model.StatusDraft,
	}
	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}

	recordAudit(ctx, s.audits, creatorID, model.ActionCreateAssessment,
		assessment.ID.String(), site.Name, map[string]interface{}{
			"site_id":       req.SiteID,
			"door_location": req.DoorLocation,
		})

	return s.assessments.GetByID(ctx, assessment.ID.String())
}

func (s *assessmentService) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	return s.assessments.GetByID(ctx, id)
}

func (s *assessmentService) List(ctx context.Context, status string, page, limit int) ([]model.Assessment, int64, error) {
	return s.assessments.List(ctx, status, page, limit)
}
