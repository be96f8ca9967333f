package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

func TestDecideIsCompareAndSet(t *testing.T) {
	store := NewStore()
	approvals := NewApprovalRepository(store)
	ctx := context.Background()

	approval := model.Approval{
		AssessmentID: uuid.New(),
		ApproverID:   uuid.New(),
		ApprovalType: model.ApprovalTypeSurveyor,
	}
	if err := approvals.Create(ctx, &approval); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := approvals.Decide(ctx, approval.ID.String(), model.ApprovalApproved, nil); err != nil {
		t.Fatalf("first decide: %v", err)
	}
	err := approvals.Decide(ctx, approval.ID.String(), model.ApprovalRejected, nil)
	if !errors.Is(err, repository.ErrNotPending) {
		t.Fatalf("second decide err = %v, want ErrNotPending", err)
	}

	stored, err := approvals.GetByID(ctx, approval.ID.String())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != model.ApprovalApproved {
		t.Errorf("status = %q, the first decision must stand", stored.Status)
	}
}

func TestDecideRaceHasOneWinner(t *testing.T) {
	store := NewStore()
	approvals := NewApprovalRepository(store)
	ctx := context.Background()

	approval := model.Approval{
		AssessmentID: uuid.New(),
		ApproverID:   uuid.New(),
		ApprovalType: model.ApprovalTypeBudget,
	}
	if err := approvals.Create(ctx, &approval); err != nil {
		t.Fatalf("create: %v", err)
	}

	const racers = 16
	var wg sync.WaitGroup
	wins := make(chan string, racers)
	for i := 0; i < racers; i++ {
		decision := model.ApprovalApproved
		if i%2 == 1 {
			decision = model.ApprovalRejected
		}
		wg.Add(1)
		go func(d string) {
			defer wg.Done()
			if err := approvals.Decide(ctx, approval.ID.String(), d, nil); err == nil {
				wins <- d
			}
		}(decision)
	}
	wg.Wait()
	close(wins)

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	if len(winners) != 1 {
		t.Fatalf("winners = %d, want exactly 1", len(winners))
	}

	stored, err := approvals.GetByID(ctx, approval.ID.String())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != winners[0] {
		t.Errorf("status = %q, want the winning decision %q", stored.Status, winners[0])
	}
}

func TestListPendingPreservesInsertionOrder(t *testing.T) {
	store := NewStore()
	approvals := NewApprovalRepository(store)
	ctx := context.Background()
	approver := uuid.New()

	var created []uuid.UUID
	for i := 0; i < 3; i++ {
		a := model.Approval{
			AssessmentID: uuid.New(),
			ApproverID:   approver,
			ApprovalType: model.ApprovalTypeConservation,
		}
		if err := approvals.Create(ctx, &a); err != nil {
			t.Fatalf("create: %v", err)
		}
		created = append(created, a.ID)
	}

	pending, err := approvals.ListPending(ctx, approver.String(), model.ApprovalTypeConservation)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("pending = %d, want 3", len(pending))
	}
	for i, a := range pending {
		if a.ID != created[i] {
			t.Errorf("position %d: got %s, want %s", i, a.ID, created[i])
		}
	}
}

func TestSeedDemoData(t *testing.T) {
	store := NewStore()
	if err := store.Seed(); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	ctx := context.Background()

	users := NewUserRepository(store)
	byRole := map[string]int{}
	all, _, err := users.List(ctx, 1, 100)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	for _, u := range all {
		byRole[u.Role]++
	}
	for _, role := range []string{model.RoleSurveyor, model.RoleConservationOfficer, model.RoleBudgetHolder, model.RoleContractor, model.RoleAdmin} {
		if byRole[role] == 0 {
			t.Errorf("no seeded user with role %s", role)
		}
	}

	sites, err := NewSiteRepository(store).List(ctx)
	if err != nil {
		t.Fatalf("list sites: %v", err)
	}
	if len(sites) == 0 {
		t.Error("no seeded sites")
	}

	materials, err := NewMaterialRepository(store).List(ctx, "")
	if err != nil {
		t.Fatalf("list materials: %v", err)
	}
	if len(materials) == 0 {
		t.Error("no seeded materials")
	}
}
