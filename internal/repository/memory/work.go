package memory

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

type workAssignmentRepository struct {
	store *Store
}

// NewWorkAssignmentRepository returns the in-memory WorkAssignmentRepository
func NewWorkAssignmentRepository(store *Store) repository.WorkAssignmentRepository {
	return &workAssignmentRepository{store: store}
}

func (r *workAssignmentRepository) Create(ctx context.Context, assignment *model.WorkAssignment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	assignment.AssignedAt = time.Now()
	if assignment.Status == "" {
		assignment.Status = model.WorkAssigned
	}
	r.store.assignments = append(r.store.assignments, *assignment)
	return nil
}

func (r *workAssignmentRepository) GetByID(ctx context.Context, id string) (*model.WorkAssignment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.assignments {
		if r.store.assignments[i].ID.String() == id {
			w := r.store.assignments[i]
			r.store.joinAssignment(&w)
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *workAssignmentRepository) List(ctx context.Context, contractorID string) ([]model.WorkAssignment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []model.WorkAssignment
	for i := range r.store.assignments {
		if contractorID == "" || r.store.assignments[i].ContractorID.String() == contractorID {
			w := r.store.assignments[i]
			r.store.joinAssignment(&w)
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *workAssignmentRepository) Update(ctx context.Context, assignment *model.WorkAssignment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.assignments {
		if r.store.assignments[i].ID == assignment.ID {
			stored := *assignment
			stored.Assessment = nil
			stored.Contractor = nil
			stored.Assigner = nil
			r.store.assignments[i] = stored
			return nil
		}
	}
	return repository.ErrNotFound
}

// joinAssignment fills read-time composition fields. Caller holds the lock.
func (s *Store) joinAssignment(w *model.WorkAssignment) {
	for i := range s.users {
		if s.users[i].ID == w.ContractorID {
			u := s.users[i]
			w.Contractor = &u
		}
		if s.users[i].ID == w.AssignedBy {
			u := s.users[i]
			w.Assigner = &u
		}
	}
	for i := range s.assessments {
		if s.assessments[i].ID == w.AssessmentID {
			a := s.assessments[i]
			s.joinAssessment(&a)
			w.Assessment = &a
			break
		}
	}
}
