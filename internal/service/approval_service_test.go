package service

import (
	"context"
	"errors"
	"testing"

	"backend/internal/model"
	"backend/internal/notify"
	"backend/internal/repository"
	"backend/internal/repository/memory"
	"backend/internal/workflow"
)

type approvalFixture struct {
	svc        ApprovalService
	audits     repository.AuditRepository
	creator    model.User
	surveyor   model.User
	contractor model.User
	assessment model.Assessment
}

func newApprovalFixture(t *testing.T) *approvalFixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	users := memory.NewUserRepository(store)
	sites := memory.NewSiteRepository(store)
	assessments := memory.NewAssessmentRepository(store)
	approvals := memory.NewApprovalRepository(store)
	audits := memory.NewAuditRepository(store)

	f := &approvalFixture{
		audits:     audits,
		creator:    model.User{Email: "creator@example.org", Name: "Creator", Role: model.RoleSurveyor},
		surveyor:   model.User{Email: "surveyor@example.org", Name: "Surveyor", Role: model.RoleSurveyor},
		contractor: model.User{Email: "joiner@example.org", Name: "Joiner", Role: model.RoleContractor},
	}
	for _, u := range []*model.User{&f.creator, &f.surveyor, &f.contractor} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	site := model.Site{Name: "Conwy Castle"}
	if err := sites.Create(ctx, &site); err != nil {
		t.Fatalf("seed site: %v", err)
	}
	f.assessment = model.Assessment{SiteID: site.ID, CreatedBy: f.creator.ID, DoorLocation: "Postern gate"}
	if err := assessments.Create(ctx, &f.assessment); err != nil {
		t.Fatalf("seed assessment: %v", err)
	}

	engine := workflow.NewEngine(assessments, approvals, store.TransactionManager())
	f.svc = NewApprovalService(engine, users, assessments, audits, notify.NewNopNotifier(), nil)
	return f
}

func TestSubmitDerivesApprovalTypeFromRole(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	approval, err := f.svc.Submit(ctx, f.assessment.ID.String(), f.creator.ID.String(), SubmitApprovalRequest{
		ApproverID: f.surveyor.ID.String(),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if approval.ApprovalType != model.ApprovalTypeSurveyor {
		t.Errorf("approval type = %q, want surveyor", approval.ApprovalType)
	}
}

func TestSubmitToNonApproverRole(t *testing.T) {
	f := newApprovalFixture(t)

	_, err := f.svc.Submit(context.Background(), f.assessment.ID.String(), f.creator.ID.String(), SubmitApprovalRequest{
		ApproverID: f.contractor.ID.String(),
	})
	if !errors.Is(err, workflow.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestSubmitWritesAuditEntry(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, f.assessment.ID.String(), f.creator.ID.String(), SubmitApprovalRequest{
		ApproverID: f.surveyor.ID.String(),
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	entries, total, err := f.audits.List(ctx, model.ActionSubmitApproval, 1, 10)
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", total)
	}
	if entries[0].UserID == nil || *entries[0].UserID != f.creator.ID {
		t.Error("audit entry not attributed to the submitter")
	}
}

func TestDecideThroughService(t *testing.T) {
	f := newApprovalFixture(t)
	ctx := context.Background()

	approval, err := f.svc.Submit(ctx, f.assessment.ID.String(), f.creator.ID.String(), SubmitApprovalRequest{
		ApproverID: f.surveyor.ID.String(),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	decided, newStatus, err := f.svc.Decide(ctx, approval.ID.String(), f.surveyor.ID.String(), DecisionRequest{
		AssessmentID: f.assessment.ID.String(),
		Decision:     model.ApprovalRejected,
		Comments:     "needs more photos",
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if newStatus != model.StatusRejected {
		t.Errorf("new status = %q, want rejected", newStatus)
	}
	if decided.Comments == nil || *decided.Comments != "needs more photos" {
		t.Errorf("comments = %v", decided.Comments)
	}

	entries, total, err := f.audits.List(ctx, model.ActionRejectStage, 1, 10)
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("reject audit entries = %d, want 1", total)
	}
}

func TestListPendingForNonApproverRoleIsEmpty(t *testing.T) {
	f := newApprovalFixture(t)

	pending, err := f.svc.ListPending(context.Background(), f.contractor.ID.String(), model.RoleContractor)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %d, want 0 for a role with no approval duties", len(pending))
	}
}
