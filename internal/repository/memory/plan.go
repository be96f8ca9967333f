package memory

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

type planRepository struct {
	store *Store
}

// NewPlanRepository returns the in-memory PlanRepository
func NewPlanRepository(store *Store) repository.PlanRepository {
	return &planRepository{store: store}
}

func (r *planRepository) Create(ctx context.Context, plan *model.ConservationPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	plan.CreatedAt = time.Now()
	r.store.plans = append(r.store.plans, *plan)
	return nil
}

func (r *planRepository) GetByAssessment(ctx context.Context, assessmentID string) (*model.ConservationPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.plans {
		if r.store.plans[i].AssessmentID.String() == assessmentID {
			p := r.store.plans[i]
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}
