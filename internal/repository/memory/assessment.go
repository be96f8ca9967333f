package memory

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

type assessmentRepository struct {
	store *Store
}

// NewAssessmentRepository returns the in-memory AssessmentRepository
func NewAssessmentRepository(store *Store) repository.AssessmentRepository {
	return &assessmentRepository{store: store}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if assessment.ID == uuid.Nil {
		assessment.ID = uuid.New()
	}
	now := time.Now()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now
	if assessment.Status == "" {
		assessment.Status = model.StatusDraft
	}
	if assessment.ConditionRating == 0 {
		assessment.ConditionRating = model.DefaultConditionRating
	}
	r.store.assessments = append(r.store.assessments, *assessment)
	return nil
}

func (r *assessmentRepository) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.assessments {
		if r.store.assessments[i].ID.String() == id {
			a := r.store.assessments[i]
			r.store.joinAssessment(&a)
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *assessmentRepository) List(ctx context.Context, status string, page, limit int) ([]model.Assessment, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []model.Assessment
	for i := range r.store.assessments {
		if status == "" || r.store.assessments[i].Status == status {
			a := r.store.assessments[i]
			r.store.joinAssessment(&a)
			matched = append(matched, a)
		}
	}

	total := int64(len(matched))
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []model.Assessment{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *assessmentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.assessments {
		if r.store.assessments[i].ID.String() == id {
			r.store.assessments[i].Status = status
			r.store.assessments[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *assessmentRepository) SetAnalysis(ctx context.Context, id string, analysis *model.AIAnalysis, doorType string, rating int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.assessments {
		if r.store.assessments[i].ID.String() == id {
			r.store.assessments[i].AIAnalysis = analysis
			r.store.assessments[i].DoorType = doorType
			r.store.assessments[i].ConditionRating = rating
			r.store.assessments[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

// joinAssessment fills read-time composition fields. Caller holds the lock.
func (s *Store) joinAssessment(a *model.Assessment) {
	for i := range s.sites {
		if s.sites[i].ID == a.SiteID {
			site := s.sites[i]
			a.Site = &site
			break
		}
	}
	for i := range s.users {
		if s.users[i].ID == a.CreatedBy {
			creator := s.users[i]
			a.Creator = &creator
			break
		}
	}
	for i := range s.plans {
		if s.plans[i].AssessmentID == a.ID {
			plan := s.plans[i]
			a.ConservationPlan = &plan
			break
		}
	}
}
