package memory

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

type approvalRepository struct {
	store *Store
}

// NewApprovalRepository returns the in-memory ApprovalRepository
func NewApprovalRepository(store *Store) repository.ApprovalRepository {
	return &approvalRepository{store: store}
}

func (r *approvalRepository) Create(ctx context.Context, approval *model.Approval) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if approval.ID == uuid.Nil {
		approval.ID = uuid.New()
	}
	now := time.Now()
	approval.CreatedAt = now
	approval.UpdatedAt = now
	if approval.Status == "" {
		approval.Status = model.ApprovalPending
	}
	r.store.approvals = append(r.store.approvals, *approval)
	return nil
}

func (r *approvalRepository) GetByID(ctx context.Context, id string) (*model.Approval, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.approvals {
		if r.store.approvals[i].ID.String() == id {
			a := r.store.approvals[i]
			r.store.joinApprover(&a)
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *approvalRepository) ListPending(ctx context.Context, approverID, approvalType string) ([]model.Approval, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []model.Approval
	for i := range r.store.approvals {
		a := r.store.approvals[i]
		if a.ApproverID.String() == approverID &&
			a.ApprovalType == approvalType &&
			a.Status == model.ApprovalPending {
			r.store.joinApprover(&a)
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (r *approvalRepository) Decide(ctx context.Context, id, decision string, comments *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.approvals {
		if r.store.approvals[i].ID.String() == id {
			if r.store.approvals[i].Status != model.ApprovalPending {
				return repository.ErrNotPending
			}
			r.store.approvals[i].Status = decision
			r.store.approvals[i].Comments = comments
			r.store.approvals[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *approvalRepository) Reopen(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.approvals {
		if r.store.approvals[i].ID.String() == id {
			r.store.approvals[i].Status = model.ApprovalPending
			r.store.approvals[i].Comments = nil
			r.store.approvals[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *approvalRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.approvals {
		if r.store.approvals[i].ID.String() == id {
			r.store.approvals = append(r.store.approvals[:i], r.store.approvals[i+1:]...)
			return nil
		}
	}
	return nil
}

// joinApprover fills the read-time approver field. Caller holds the lock.
func (s *Store) joinApprover(a *model.Approval) {
	for i := range s.users {
		if s.users[i].ID == a.ApproverID {
			approver := s.users[i]
			a.Approver = &approver
			break
		}
	}
}
