package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// PendingApproval is the read-side join of an approval with its assessment.
// The assessment is embedded for display only, not an ownership relation.
type PendingApproval struct {
	Approval   model.Approval   `json:"approval"`
	Assessment model.Assessment `json:"assessment"`
}

// Engine orchestrates the assessment approval protocol. It is the only
// component allowed to mutate assessment status. Each operation applies its
// approval write and assessment write as one logical unit: under the GORM
// transaction manager the pair is truly atomic; under the in-memory manager
// the unit is serialized and a failed second write is compensated, with
// ErrInconsistent surfaced if the compensation itself fails.
type Engine struct {
	assessments repository.AssessmentRepository
	approvals   repository.ApprovalRepository
	tx          repository.TransactionManager
}

// NewEngine returns a workflow engine over the given stores
func NewEngine(assessments repository.AssessmentRepository, approvals repository.ApprovalRepository, tx repository.TransactionManager) *Engine {
	return &Engine{assessments: assessments, approvals: approvals, tx: tx}
}

// SubmitForApproval creates a pending approval for (assessment, approver,
// type) and moves the assessment to the stage-entry status for the type.
// Submitting a draft is restricted to the assessment's creator, the only
// way out of draft. Returns the created approval.
func (e *Engine) SubmitForApproval(ctx context.Context, assessmentID, actorID, approverID, approvalType string) (*model.Approval, error) {
	assessment, err := e.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}

	if assessment.Status == model.StatusDraft && assessment.CreatedBy.String() != actorID {
		return nil, fmt.Errorf("only the creator may submit a draft assessment: %w", ErrForbidden)
	}

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return nil, fmt.Errorf("invalid approver id: %w", err)
	}

	approval := &model.Approval{
		AssessmentID: assessment.ID,
		ApproverID:   approverUUID,
		ApprovalType: approvalType,
		Status:       model.ApprovalPending,
	}
	nextStatus := StageEntryStatus(approvalType)

	created := false
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := e.approvals.Create(txCtx, approval); err != nil {
			return fmt.Errorf("create approval: %w", err)
		}
		created = true
		if err := e.assessments.UpdateStatus(txCtx, assessmentID, nextStatus); err != nil {
			return fmt.Errorf("update assessment status: %w", err)
		}
		return nil
	})
	if err != nil {
		if created {
			// A real transaction has already rolled the approval back and
			// the delete is a no-op; without one this removes the orphan.
			if delErr := e.approvals.Delete(ctx, approval.ID.String()); delErr != nil {
				log.Printf("workflow inconsistency: approval %s exists but assessment %s was not moved to %s: %v (rollback failed: %v)",
					approval.ID, assessmentID, nextStatus, err, delErr)
				return nil, fmt.Errorf("approval %s / assessment %s: %w", approval.ID, assessmentID, ErrInconsistent)
			}
		}
		return nil, err
	}

	return approval, nil
}

// RecordDecision applies one role's terminal decision to a pending approval
// and advances the assessment per the transition table. The approval's
// status is compare-and-set from pending, so of two racing decisions
// exactly one wins; the loser fails with ErrInvalidState. Returns the
// decided approval and the assessment's new status.
func (e *Engine) RecordDecision(ctx context.Context, approvalID, assessmentID, actorID, decision, comments string) (*model.Approval, string, error) {
	if !model.ValidDecision(decision) {
		return nil, "", fmt.Errorf("unknown decision %q: %w", decision, ErrInvalidState)
	}

	approval, err := e.approvals.GetByID(ctx, approvalID)
	if err != nil {
		return nil, "", fmt.Errorf("load approval: %w", err)
	}
	if approval.AssessmentID.String() != assessmentID {
		return nil, "", fmt.Errorf("approval %s does not belong to assessment %s: %w", approvalID, assessmentID, ErrInvalidState)
	}
	if approval.ApproverID.String() != actorID {
		return nil, "", fmt.Errorf("decision reserved for the assigned approver: %w", ErrForbidden)
	}
	if approval.Status != model.ApprovalPending {
		return nil, "", fmt.Errorf("approval already %s: %w", approval.Status, ErrInvalidState)
	}

	assessment, err := e.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, "", fmt.Errorf("load assessment: %w", err)
	}
	nextStatus := AdvanceStatus(assessment.Status, decision)

	var commentsPtr *string
	if comments != "" {
		commentsPtr = &comments
	}

	decided := false
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := e.approvals.Decide(txCtx, approvalID, decision, commentsPtr); err != nil {
			if errors.Is(err, repository.ErrNotPending) {
				return fmt.Errorf("approval already decided: %w", ErrInvalidState)
			}
			return fmt.Errorf("decide approval: %w", err)
		}
		decided = true
		if err := e.assessments.UpdateStatus(txCtx, assessmentID, nextStatus); err != nil {
			return fmt.Errorf("update assessment status: %w", err)
		}
		return nil
	})
	if err != nil {
		if decided && !errors.Is(err, ErrInvalidState) {
			if reopenErr := e.approvals.Reopen(ctx, approvalID); reopenErr != nil {
				log.Printf("workflow inconsistency: approval %s decided but assessment %s was not moved to %s: %v (rollback failed: %v)",
					approvalID, assessmentID, nextStatus, err, reopenErr)
				return nil, "", fmt.Errorf("approval %s / assessment %s: %w", approvalID, assessmentID, ErrInconsistent)
			}
		}
		return nil, "", err
	}

	approval.Status = decision
	approval.Comments = commentsPtr
	return approval, nextStatus, nil
}

// ListPendingApprovals returns every pending approval for an approver and
// type, each joined with its assessment. Ordering follows the store's
// insertion order.
func (e *Engine) ListPendingApprovals(ctx context.Context, approverID, approvalType string) ([]PendingApproval, error) {
	approvals, err := e.approvals.ListPending(ctx, approverID, approvalType)
	if err != nil {
		return nil, fmt.Errorf("list pending approvals: %w", err)
	}

	out := make([]PendingApproval, 0, len(approvals))
	for _, a := range approvals {
		assessment, err := e.assessments.GetByID(ctx, a.AssessmentID.String())
		if err != nil {
			return nil, fmt.Errorf("join assessment %s: %w", a.AssessmentID, err)
		}
		out = append(out, PendingApproval{Approval: a, Assessment: *assessment})
	}
	return out, nil
}
