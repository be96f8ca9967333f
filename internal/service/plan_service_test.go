package service

import (
	"context"
	"errors"
	"testing"

	"backend/internal/model"
	"backend/internal/repository/memory"
	"backend/internal/workflow"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestComputeTotalCost(t *testing.T) {
	tests := []struct {
		name  string
		lines [][2]string // quantity, unit price
		want  string
	}{
		{
			name:  "empty plan",
			lines: nil,
			want:  "0",
		},
		{
			name: "fractional quantity of high-value material",
			lines: [][2]string{
				{"0.15", "2500.00"}, // gold leaf, 0.15 sheets
				{"2", "180.00"},     // oak boards
			},
			want: "735",
		},
		{
			name: "sub-cent amounts survive until the final rounding",
			lines: [][2]string{
				{"0.333", "0.10"},
				{"0.333", "0.10"},
				{"0.333", "0.10"},
			},
			want: "0.1",
		},
		{
			name: "single line",
			lines: [][2]string{
				{"3", "45.50"},
			},
			want: "136.5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var materials []model.MaterialRequirement
			for _, line := range tt.lines {
				q := mustDecimal(t, line[0])
				p := mustDecimal(t, line[1])
				materials = append(materials, model.MaterialRequirement{
					Quantity:  q,
					UnitPrice: p,
				})
			}
			got := ComputeTotalCost(materials)
			if !got.Equal(mustDecimal(t, tt.want)) {
				t.Errorf("ComputeTotalCost = %s, want %s", got, tt.want)
			}
		})
	}
}

func newPlanFixture(t *testing.T) (PlanService, string) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	users := memory.NewUserRepository(store)
	sites := memory.NewSiteRepository(store)
	assessments := memory.NewAssessmentRepository(store)

	officer := model.User{Email: "officer@example.org", Name: "Officer", Role: model.RoleConservationOfficer}
	if err := users.Create(ctx, &officer); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	site := model.Site{Name: "Caernarfon Castle"}
	if err := sites.Create(ctx, &site); err != nil {
		t.Fatalf("seed site: %v", err)
	}
	assessment := model.Assessment{SiteID: site.ID, CreatedBy: officer.ID, DoorLocation: "King's Gate"}
	if err := assessments.Create(ctx, &assessment); err != nil {
		t.Fatalf("seed assessment: %v", err)
	}

	svc := NewPlanService(memory.NewPlanRepository(store), assessments, memory.NewAuditRepository(store))
	return svc, assessment.ID.String()
}

func validPlanRequest(t *testing.T) CreatePlanRequest {
	t.Helper()
	return CreatePlanRequest{
		WorkDescription: "Consolidate frame, replace rotten stile section",
		Materials: []PlanMaterialInput{
			{
				MaterialID:   "oak-board",
				MaterialName: "Seasoned oak board",
				Quantity:     mustDecimal(t, "2"),
				Unit:         "board",
				UnitPrice:    mustDecimal(t, "180.00"),
			},
			{
				MaterialID:   "gold-leaf",
				MaterialName: "23.75ct gold leaf",
				Quantity:     mustDecimal(t, "0.15"),
				Unit:         "book",
				UnitPrice:    mustDecimal(t, "2500.00"),
			},
		},
		EffortHours: 24,
		EffortLevel: model.EffortHigh,
	}
}

func TestCreatePlanTotalsAndLines(t *testing.T) {
	svc, assessmentID := newPlanFixture(t)
	ctx := context.Background()

	plan, err := svc.CreatePlan(ctx, assessmentID, "", validPlanRequest(t))
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if !plan.TotalCost.Equal(mustDecimal(t, "735")) {
		t.Errorf("TotalCost = %s, want 735", plan.TotalCost)
	}
	if len(plan.Materials) != 2 {
		t.Fatalf("materials = %d, want 2", len(plan.Materials))
	}
	if !plan.Materials[1].TotalPrice.Equal(mustDecimal(t, "375")) {
		t.Errorf("line total = %s, want 375", plan.Materials[1].TotalPrice)
	}
}

func TestCreatePlanRejectsSecondPlan(t *testing.T) {
	svc, assessmentID := newPlanFixture(t)
	ctx := context.Background()

	if _, err := svc.CreatePlan(ctx, assessmentID, "", validPlanRequest(t)); err != nil {
		t.Fatalf("first plan: %v", err)
	}
	_, err := svc.CreatePlan(ctx, assessmentID, "", validPlanRequest(t))
	if !errors.Is(err, workflow.ErrInvalidState) {
		t.Fatalf("second plan err = %v, want ErrInvalidState", err)
	}
}

func TestCreatePlanRejectsUnknownEffortLevel(t *testing.T) {
	svc, assessmentID := newPlanFixture(t)
	req := validPlanRequest(t)
	req.EffortLevel = "heroic"

	if _, err := svc.CreatePlan(context.Background(), assessmentID, "", req); err == nil {
		t.Fatal("expected error for unknown effort level")
	}
}
