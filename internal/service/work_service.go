package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/notify"
	"backend/internal/repository"
	"backend/internal/workflow"

	"github.com/google/uuid"
)

// AssignWorkRequest hands an approved assessment to a contractor
type AssignWorkRequest struct {
	AssessmentID string `json:"assessment_id" binding:"required,uuid"`
	ContractorID string `json:"contractor_id" binding:"required,uuid"`
	DueDate      string `json:"due_date"`
}

// CompleteWorkRequest closes an assignment
type CompleteWorkRequest struct {
	CompletionNotes string `json:"completion_notes" binding:"required"`
}

// WorkService manages the post-approval contractor flow. Assigning is only
// valid on an approved assessment; starting the work moves the assessment to
// in_progress and completing it to completed, in step with the assignment's
// own status.
type WorkService interface {
	Assign(ctx context.Context, actorID string, req AssignWorkRequest) (*model.WorkAssignment, error)
	Start(ctx context.Context, assignmentID, actorID string) (*model.WorkAssignment, error)
	Complete(ctx context.Context, assignmentID, actorID string, req CompleteWorkRequest) (*model.WorkAssignment, error)
	GetByID(ctx context.Context, id string) (*model.WorkAssignment, error)
	List(ctx context.Context, contractorID string) ([]model.WorkAssignment, error)
}

type workService struct {
	work        repository.WorkAssignmentRepository
	assessments repository.AssessmentRepository
	users       repository.UserRepository
	audits      repository.AuditRepository
	notifier    notify.Notifier
	tx          repository.TransactionManager
}

// NewWorkService returns a new instance of WorkService
func NewWorkService(work repository.WorkAssignmentRepository, assessments repository.AssessmentRepository, users repository.UserRepository, audits repository.AuditRepository, notifier notify.Notifier, tx repository.TransactionManager) WorkService {
	return &workService{work: work, assessments: assessments, users: users, audits: audits, notifier: notifier, tx: tx}
}

func (s *workService) Assign(ctx context.Context, actorID string, req AssignWorkRequest) (*model.WorkAssignment, error) {
	assignerID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor id: %w", err)
	}

	assessment, err := s.assessments.GetByID(ctx, req.AssessmentID)
	if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}
	if assessment.Status != model.StatusApproved {
		return nil, fmt.Errorf("assessment is %s, work needs approved: %w", assessment.Status, workflow.ErrInvalidState)
	}

	contractor, err := s.users.GetByID(ctx, req.ContractorID)
	if err != nil {
		return nil, fmt.Errorf("load contractor: %w", err)
	}
	if contractor.Role != model.RoleContractor {
		return nil, fmt.Errorf("user %s is not a contractor: %w", req.ContractorID, workflow.ErrForbidden)
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q: %w", req.DueDate, err)
		}
		dueDate = &parsed
	}

	assignment := &model.WorkAssignment{
		AssessmentID: assessment.ID,
		ContractorID: contractor.ID,
		AssignedBy:   assignerID,
		DueDate:      dueDate,
		Status:       model.WorkAssigned,
	}
	if err := s.work.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	recordAudit(ctx, s.audits, assignerID, model.ActionAssignWork,
		assignment.ID.String(), assessment.DoorLocation, map[string]interface{}{
			"assessment_id": req.AssessmentID,
			"contractor_id": req.ContractorID,
			"due_date":      req.DueDate,
		})

	notify.SendAsync(s.notifier, notify.EmailNotification{
		To:       contractor.Email,
		Subject:  fmt.Sprintf("Work assigned: %s", assessment.DoorLocation),
		Template: notify.TemplateWorkAssignment,
		Data: map[string]interface{}{
			"assessment_id": req.AssessmentID,
			"door_location": assessment.DoorLocation,
			"due_date":      req.DueDate,
		},
	})

	return s.work.GetByID(ctx, assignment.ID.String())
}

func (s *workService) Start(ctx context.Context, assignmentID, actorID string) (*model.WorkAssignment, error) {
	assignment, err := s.work.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if assignment.ContractorID.String() != actorID {
		return nil, fmt.Errorf("only the assigned contractor may start the work: %w", workflow.ErrForbidden)
	}
	if assignment.Status != model.WorkAssigned {
		return nil, fmt.Errorf("assignment is %s, start needs assigned: %w", assignment.Status, workflow.ErrInvalidState)
	}

	assignment.Status = model.WorkInProgress
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.work.Update(txCtx, assignment); err != nil {
			return fmt.Errorf("update assignment: %w", err)
		}
		return s.assessments.UpdateStatus(txCtx, assignment.AssessmentID.String(), model.StatusInProgress)
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *workService) Complete(ctx context.Context, assignmentID, actorID string, req CompleteWorkRequest) (*model.WorkAssignment, error) {
	assignment, err := s.work.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if assignment.ContractorID.String() != actorID {
		return nil, fmt.Errorf("only the assigned contractor may complete the work: %w", workflow.ErrForbidden)
	}
	if assignment.Status == model.WorkCompleted {
		return nil, fmt.Errorf("assignment already completed: %w", workflow.ErrInvalidState)
	}

	now := time.Now()
	assignment.Status = model.WorkCompleted
	assignment.CompletionNotes = &req.CompletionNotes
	assignment.CompletedAt = &now

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.work.Update(txCtx, assignment); err != nil {
			return fmt.Errorf("update assignment: %w", err)
		}
		return s.assessments.UpdateStatus(txCtx, assignment.AssessmentID.String(), model.StatusCompleted)
	})
	if err != nil {
		return nil, err
	}

	if actor, parseErr := uuid.Parse(actorID); parseErr == nil {
		recordAudit(ctx, s.audits, actor, model.ActionCompleteWork,
			assignmentID, assignment.AssessmentID.String(), map[string]interface{}{
				"assessment_id":    assignment.AssessmentID.String(),
				"completion_notes": req.CompletionNotes,
			})
	}

	if assignment.Assigner != nil {
		notify.SendAsync(s.notifier, notify.EmailNotification{
			To:       assignment.Assigner.Email,
			Subject:  "Conservation work completed",
			Template: notify.TemplateWorkCompletion,
			Data: map[string]interface{}{
				"assessment_id":    assignment.AssessmentID.String(),
				"assignment_id":    assignmentID,
				"completion_notes": req.CompletionNotes,
			},
		})
	}

	return assignment, nil
}

func (s *workService) GetByID(ctx context.Context, id string) (*model.WorkAssignment, error) {
	return s.work.GetByID(ctx, id)
}

func (s *workService) List(ctx context.Context, contractorID string) ([]model.WorkAssignment, error) {
	return s.work.List(ctx, contractorID)
}
