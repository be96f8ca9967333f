package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"gorm.io/gorm"
)

// ApprovalRepository defines the interface for data access of Approval
// records. Decide and Reopen carry compare-and-set semantics on the status
// field so racing decisions produce exactly one winner.
type ApprovalRepository interface {
	Create(ctx context.Context, approval *model.Approval) error
	GetByID(ctx context.Context, id string) (*model.Approval, error)
	// ListPending returns pending approvals for an approver and type, in
	// insertion order.
	ListPending(ctx context.Context, approverID, approvalType string) ([]model.Approval, error)
	// Decide moves a pending approval to a terminal decision. Returns
	// ErrNotPending if the approval was already decided.
	Decide(ctx context.Context, id, decision string, comments *string) error
	// Reopen reverts a decided approval back to pending. Compensation path
	// only, never part of the normal protocol.
	Reopen(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type approvalRepository struct {
	db *gorm.DB
}

// NewApprovalRepository returns the GORM-backed ApprovalRepository
func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, approval *model.Approval) error {
	return GetDB(ctx, r.db).Create(approval).Error
}

func (r *approvalRepository) GetByID(ctx context.Context, id string) (*model.Approval, error) {
	var approval model.Approval
	err := GetDB(ctx, r.db).Preload("Approver").First(&approval, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepository) ListPending(ctx context.Context, approverID, approvalType string) ([]model.Approval, error) {
	var approvals []model.Approval
	err := GetDB(ctx, r.db).
		Where("approver_id = ? AND approval_type = ? AND status = ?",
			approverID, approvalType, model.ApprovalPending).
		Order("created_at ASC").
		Find(&approvals).Error
	if err != nil {
		return nil, err
	}
	return approvals, nil
}

func (r *approvalRepository) Decide(ctx context.Context, id, decision string, comments *string) error {
	res := GetDB(ctx, r.db).Model(&model.Approval{}).
		Where("id = ? AND status = ?", id, model.ApprovalPending).
		Updates(map[string]interface{}{
			"status":   decision,
			"comments": comments,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing record from a lost decision race
		var count int64
		if err := GetDB(ctx, r.db).Model(&model.Approval{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrNotPending
	}
	return nil
}

func (r *approvalRepository) Reopen(ctx context.Context, id string) error {
	res := GetDB(ctx, r.db).Model(&model.Approval{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   model.ApprovalPending,
			"comments": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *approvalRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Approval{}).Error
}
