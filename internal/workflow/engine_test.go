package workflow

import (
	"context"
	"errors"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/repository/memory"

	"github.com/google/uuid"
)

type engineFixture struct {
	engine      *Engine
	assessments repository.AssessmentRepository
	approvals   repository.ApprovalRepository
	creator     model.User
	surveyor    model.User
	officer     model.User
	budget      model.User
	assessment  model.Assessment
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	store := memory.NewStore()
	assessments := memory.NewAssessmentRepository(store)
	approvals := memory.NewApprovalRepository(store)
	users := memory.NewUserRepository(store)
	sites := memory.NewSiteRepository(store)

	ctx := context.Background()
	f := &engineFixture{
		engine:      NewEngine(assessments, approvals, store.TransactionManager()),
		assessments: assessments,
		approvals:   approvals,
		creator:     model.User{Email: "creator@example.org", Name: "Creator", Role: model.RoleSurveyor},
		surveyor:    model.User{Email: "surveyor@example.org", Name: "Surveyor", Role: model.RoleSurveyor},
		officer:     model.User{Email: "officer@example.org", Name: "Officer", Role: model.RoleConservationOfficer},
		budget:      model.User{Email: "budget@example.org", Name: "Budget", Role: model.RoleBudgetHolder},
	}
	for _, u := range []*model.User{&f.creator, &f.surveyor, &f.officer, &f.budget} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	site := model.Site{Name: "Conwy Castle", Location: "Conwy"}
	if err := sites.Create(ctx, &site); err != nil {
		t.Fatalf("seed site: %v", err)
	}
	f.assessment = model.Assessment{
		SiteID:       site.ID,
		CreatedBy:    f.creator.ID,
		DoorLocation: "Great Hall, north entrance",
		Status:       model.StatusDraft,
	}
	if err := assessments.Create(ctx, &f.assessment); err != nil {
		t.Fatalf("seed assessment: %v", err)
	}
	return f
}

func (f *engineFixture) status(t *testing.T) string {
	t.Helper()
	a, err := f.assessments.GetByID(context.Background(), f.assessment.ID.String())
	if err != nil {
		t.Fatalf("reload assessment: %v", err)
	}
	return a.Status
}

func TestSubmitDraftByCreator(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	approval, err := f.engine.SubmitForApproval(ctx, f.assessment.ID.String(), f.creator.ID.String(), f.surveyor.ID.String(), model.ApprovalTypeSurveyor)
	if err != nil {
		t.Fatalf("SubmitForApproval: %v", err)
	}
	if approval.Status != model.ApprovalPending {
		t.Errorf("approval status = %q, want pending", approval.Status)
	}
	if got := f.status(t); got != model.StatusPendingSurveyor {
		t.Errorf("assessment status = %q, want pending_surveyor", got)
	}
}

func TestSubmitDraftByNonCreatorForbidden(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.engine.SubmitForApproval(ctx, f.assessment.ID.String(), f.officer.ID.String(), f.surveyor.ID.String(), model.ApprovalTypeSurveyor)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if got := f.status(t); got != model.StatusDraft {
		t.Errorf("assessment status = %q, want draft untouched", got)
	}
	pending, err := f.approvals.ListPending(ctx, f.surveyor.ID.String(), model.ApprovalTypeSurveyor)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending approvals = %d, want none", len(pending))
	}
}

func TestApprovalChainToApproved(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	assessmentID := f.assessment.ID.String()

	stages := []struct {
		approver     model.User
		approvalType string
		wantStatus   string
	}{
		{f.surveyor, model.ApprovalTypeSurveyor, model.StatusPendingConservation},
		{f.officer, model.ApprovalTypeConservation, model.StatusPendingBudget},
		{f.budget, model.ApprovalTypeBudget, model.StatusApproved},
	}
	actor := f.creator.ID.String()
	for _, stage := range stages {
		approval, err := f.engine.SubmitForApproval(ctx, assessmentID, actor, stage.approver.ID.String(), stage.approvalType)
		if err != nil {
			t.Fatalf("submit %s stage: %v", stage.approvalType, err)
		}
		_, newStatus, err := f.engine.RecordDecision(ctx, approval.ID.String(), assessmentID, stage.approver.ID.String(), model.ApprovalApproved, "")
		if err != nil {
			t.Fatalf("decide %s stage: %v", stage.approvalType, err)
		}
		if newStatus != stage.wantStatus {
			t.Errorf("%s stage advanced to %q, want %q", stage.approvalType, newStatus, stage.wantStatus)
		}
	}
	if got := f.status(t); got != model.StatusApproved {
		t.Errorf("final status = %q, want approved", got)
	}
}

func TestRejectionWithComments(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	assessmentID := f.assessment.ID.String()

	approval, err := f.engine.SubmitForApproval(ctx, assessmentID, f.creator.ID.String(), f.officer.ID.String(), model.ApprovalTypeConservation)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decided, newStatus, err := f.engine.RecordDecision(ctx, approval.ID.String(), assessmentID, f.officer.ID.String(), model.ApprovalRejected, "needs more photos")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if newStatus != model.StatusRejected {
		t.Errorf("new status = %q, want rejected", newStatus)
	}
	if decided.Comments == nil || *decided.Comments != "needs more photos" {
		t.Errorf("comments = %v, want %q", decided.Comments, "needs more photos")
	}
	if got := f.status(t); got != model.StatusRejected {
		t.Errorf("assessment status = %q, want rejected", got)
	}
}

func TestDoubleDecisionLoses(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	assessmentID := f.assessment.ID.String()

	approval, err := f.engine.SubmitForApproval(ctx, assessmentID, f.creator.ID.String(), f.surveyor.ID.String(), model.ApprovalTypeSurveyor)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, _, err := f.engine.RecordDecision(ctx, approval.ID.String(), assessmentID, f.surveyor.ID.String(), model.ApprovalApproved, ""); err != nil {
		t.Fatalf("first decision: %v", err)
	}

	_, _, err = f.engine.RecordDecision(ctx, approval.ID.String(), assessmentID, f.surveyor.ID.String(), model.ApprovalRejected, "second thoughts")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second decision err = %v, want ErrInvalidState", err)
	}
	// The first transition stands; the loser changed nothing
	if got := f.status(t); got != model.StatusPendingConservation {
		t.Errorf("assessment status = %q, want pending_conservation", got)
	}
}

func TestActorMismatchForbidden(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	assessmentID := f.assessment.ID.String()

	approval, err := f.engine.SubmitForApproval(ctx, assessmentID, f.creator.ID.String(), f.surveyor.ID.String(), model.ApprovalTypeSurveyor)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, _, err = f.engine.RecordDecision(ctx, approval.ID.String(), assessmentID, f.officer.ID.String(), model.ApprovalApproved, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

// failing stubs for the compensation paths

type failingAssessments struct {
	repository.AssessmentRepository
}

func (f *failingAssessments) UpdateStatus(ctx context.Context, id, status string) error {
	return errors.New("status write refused")
}

type stuckApprovals struct {
	repository.ApprovalRepository
	failReopen bool
	failDelete bool
}

func (s *stuckApprovals) Reopen(ctx context.Context, id string) error {
	if s.failReopen {
		return errors.New("reopen refused")
	}
	return s.ApprovalRepository.Reopen(ctx, id)
}

func (s *stuckApprovals) Delete(ctx context.Context, id string) error {
	if s.failDelete {
		return errors.New("delete refused")
	}
	return s.ApprovalRepository.Delete(ctx, id)
}

func TestSubmitCompensatesFailedStatusWrite(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	engine := NewEngine(&failingAssessments{f.assessments}, f.approvals, noopTx{})

	_, err := engine.SubmitForApproval(ctx, f.assessment.ID.String(), f.creator.ID.String(), f.surveyor.ID.String(), model.ApprovalTypeSurveyor)
	if err == nil {
		t.Fatal("expected error from failed status write")
	}
	if errors.Is(err, ErrInconsistent) {
		t.Fatalf("compensation succeeded, err should not be ErrInconsistent: %v", err)
	}
	pending, listErr := f.approvals.ListPending(ctx, f.surveyor.ID.String(), model.ApprovalTypeSurveyor)
	if listErr != nil {
		t.Fatalf("ListPending: %v", listErr)
	}
	if len(pending) != 0 {
		t.Errorf("orphan approval survived compensation: %d pending", len(pending))
	}
}

func TestDecisionInconsistencyWhenCompensationFails(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	assessmentID := f.assessment.ID.String()

	approval, err := f.engine.SubmitForApproval(ctx, assessmentID, f.creator.ID.String(), f.surveyor.ID.String(), model.ApprovalTypeSurveyor)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	engine := NewEngine(
		&failingAssessments{f.assessments},
		&stuckApprovals{ApprovalRepository: f.approvals, failReopen: true},
		noopTx{},
	)
	_, _, err = engine.RecordDecision(ctx, approval.ID.String(), assessmentID, f.surveyor.ID.String(), model.ApprovalApproved, "")
	if !errors.Is(err, ErrInconsistent) {
		t.Fatalf("err = %v, want ErrInconsistent", err)
	}
}

// noopTx runs the unit without transactional guarantees, exposing the
// engine's compensation behavior.
type noopTx struct{}

func (noopTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func TestListPendingApprovalsJoinsAssessments(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	if _, err := f.engine.SubmitForApproval(ctx, f.assessment.ID.String(), f.creator.ID.String(), f.surveyor.ID.String(), model.ApprovalTypeSurveyor); err != nil {
		t.Fatalf("submit: %v", err)
	}

	pending, err := f.engine.ListPendingApprovals(ctx, f.surveyor.ID.String(), model.ApprovalTypeSurveyor)
	if err != nil {
		t.Fatalf("ListPendingApprovals: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if pending[0].Assessment.ID != f.assessment.ID {
		t.Errorf("joined assessment %s, want %s", pending[0].Assessment.ID, f.assessment.ID)
	}
	if pending[0].Assessment.DoorLocation != f.assessment.DoorLocation {
		t.Errorf("joined door location %q, want %q", pending[0].Assessment.DoorLocation, f.assessment.DoorLocation)
	}

	// Other approvers see nothing
	other, err := f.engine.ListPendingApprovals(ctx, f.officer.ID.String(), model.ApprovalTypeConservation)
	if err != nil {
		t.Fatalf("ListPendingApprovals: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("other approver sees %d approvals, want 0", len(other))
	}
}

func TestSubmitUnknownAssessment(t *testing.T) {
	f := newEngineFixture(t)
	_, err := f.engine.SubmitForApproval(context.Background(), uuid.NewString(), f.creator.ID.String(), f.surveyor.ID.String(), model.ApprovalTypeSurveyor)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
