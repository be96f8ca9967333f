package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/notify"
	"backend/internal/repository"
	"backend/internal/websocket"
	"backend/internal/workflow"

	"github.com/google/uuid"
)

// SubmitApprovalRequest names the approver for the next stage. The approval
// type is not client-supplied; it is derived from the approver's role.
type SubmitApprovalRequest struct {
	ApproverID string `json:"approver_id" binding:"required,uuid"`
}

// DecisionRequest is one role's terminal decision on a pending approval.
// The assessment id is echoed back so a decision can never be applied
// against the wrong assessment.
type DecisionRequest struct {
	AssessmentID string `json:"assessment_id" binding:"required,uuid"`
	Decision     string `json:"decision" binding:"required,oneof=approved rejected"`
	Comments     string `json:"comments"`
}

// ApprovalService drives the approval chain. It delegates the state changes
// to the workflow engine and layers on the side effects that must not
// influence the outcome: notifications, websocket events and audit entries.
type ApprovalService interface {
	Submit(ctx context.Context, assessmentID, actorID string, req SubmitApprovalRequest) (*model.Approval, error)
	Decide(ctx context.Context, approvalID, actorID string, req DecisionRequest) (*model.Approval, string, error)
	ListPending(ctx context.Context, actorID, actorRole string) ([]workflow.PendingApproval, error)
}

type approvalService struct {
	engine      *workflow.Engine
	users       repository.UserRepository
	assessments repository.AssessmentRepository
	audits      repository.AuditRepository
	notifier    notify.Notifier
	hub         *websocket.Hub
}

// NewApprovalService returns a new instance of ApprovalService
func NewApprovalService(engine *workflow.Engine, users repository.UserRepository, assessments repository.AssessmentRepository, audits repository.AuditRepository, notifier notify.Notifier, hub *websocket.Hub) ApprovalService {
	return &approvalService{
		engine:      engine,
		users:       users,
		assessments: assessments,
		audits:      audits,
		notifier:    notifier,
		hub:         hub,
	}
}

func (s *approvalService) broadcast(event string, payload map[string]interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastEvent(event, payload)
}

func (s *approvalService) Submit(ctx context.Context, assessmentID, actorID string, req SubmitApprovalRequest) (*model.Approval, error) {
	approver, err := s.users.GetByID(ctx, req.ApproverID)
	if err != nil {
		return nil, fmt.Errorf("load approver: %w", err)
	}
	approvalType, ok := workflow.ApprovalTypeForRole(approver.Role)
	if !ok {
		return nil, fmt.Errorf("role %s has no approval responsibilities: %w", approver.Role, workflow.ErrForbidden)
	}

	approval, err := s.engine.SubmitForApproval(ctx, assessmentID, actorID, req.ApproverID, approvalType)
	if err != nil {
		return nil, err
	}

	assessment, loadErr := s.assessments.GetByID(ctx, assessmentID)
	doorLocation := assessmentID
	if loadErr == nil {
		doorLocation = assessment.DoorLocation
	}

	if actor, parseErr := uuid.Parse(actorID); parseErr == nil {
		recordAudit(ctx, s.audits, actor, model.ActionSubmitApproval,
			approval.ID.String(), doorLocation, map[string]interface{}{
				"assessment_id": assessmentID,
				"approver_id":   req.ApproverID,
				"approval_type": approvalType,
			})
	}

	notify.SendAsync(s.notifier, notify.EmailNotification{
		To:       approver.Email,
		Subject:  fmt.Sprintf("Approval requested: %s", doorLocation),
		Template: notify.TemplateApprovalRequest,
		Data: map[string]interface{}{
			"assessment_id": assessmentID,
			"door_location": doorLocation,
			"approval_type": approvalType,
		},
	})

	s.broadcast("approval_requested", map[string]interface{}{
		"assessment_id": assessmentID,
		"approval_id":   approval.ID.String(),
		"approval_type": approvalType,
		"status":        workflow.StageEntryStatus(approvalType),
	})

	return approval, nil
}

func (s *approvalService) Decide(ctx context.Context, approvalID, actorID string, req DecisionRequest) (*model.Approval, string, error) {
	assessmentID := req.AssessmentID
	approval, newStatus, err := s.engine.RecordDecision(ctx, approvalID, assessmentID, actorID, req.Decision, req.Comments)
	if err != nil {
		return nil, "", err
	}

	action := model.ActionApproveStage
	if req.Decision == model.ApprovalRejected {
		action = model.ActionRejectStage
	}
	if actor, parseErr := uuid.Parse(actorID); parseErr == nil {
		recordAudit(ctx, s.audits, actor, action,
			approvalID, assessmentID, map[string]interface{}{
				"assessment_id": assessmentID,
				"decision":      req.Decision,
				"new_status":    newStatus,
				"comments":      req.Comments,
			})
	}

	// The creator hears about every decision on their assessment
	if assessment, loadErr := s.assessments.GetByID(ctx, assessmentID); loadErr == nil && assessment.Creator != nil {
		notify.SendAsync(s.notifier, notify.EmailNotification{
			To:       assessment.Creator.Email,
			Subject:  fmt.Sprintf("Assessment %s: %s stage %s", assessment.DoorLocation, approval.ApprovalType, req.Decision),
			Template: notify.TemplateApprovalDecision,
			Data: map[string]interface{}{
				"assessment_id": assessmentID,
				"door_location": assessment.DoorLocation,
				"decision":      req.Decision,
				"new_status":    newStatus,
				"comments":      req.Comments,
			},
		})
	}

	s.broadcast("approval_decided", map[string]interface{}{
		"assessment_id": assessmentID,
		"approval_id":   approvalID,
		"decision":      req.Decision,
		"status":        newStatus,
	})

	return approval, newStatus, nil
}

func (s *approvalService) ListPending(ctx context.Context, actorID, actorRole string) ([]workflow.PendingApproval, error) {
	approvalType, ok := workflow.ApprovalTypeForRole(actorRole)
	if !ok {
		return []workflow.PendingApproval{}, nil
	}
	return s.engine.ListPendingApprovals(ctx, actorID, approvalType)
}
