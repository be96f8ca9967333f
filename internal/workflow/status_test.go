package workflow

import (
	"testing"

	"backend/internal/model"
)

func TestAdvanceStatusApprove(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{model.StatusPendingSurveyor, model.StatusPendingConservation},
		{model.StatusPendingConservation, model.StatusPendingBudget},
		{model.StatusPendingBudget, model.StatusApproved},
		// Approval outside the chain leaves the status untouched
		{model.StatusDraft, model.StatusDraft},
		{model.StatusApproved, model.StatusApproved},
		{model.StatusRejected, model.StatusRejected},
		{model.StatusInProgress, model.StatusInProgress},
		{model.StatusCompleted, model.StatusCompleted},
	}
	for _, tt := range tests {
		if got := AdvanceStatus(tt.current, model.ApprovalApproved); got != tt.want {
			t.Errorf("AdvanceStatus(%q, approved) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestAdvanceStatusRejectIsUnconditional(t *testing.T) {
	statuses := []string{
		model.StatusDraft,
		model.StatusPendingSurveyor,
		model.StatusPendingConservation,
		model.StatusPendingBudget,
		model.StatusApproved,
		model.StatusRejected,
		model.StatusInProgress,
		model.StatusCompleted,
	}
	for _, s := range statuses {
		if got := AdvanceStatus(s, model.ApprovalRejected); got != model.StatusRejected {
			t.Errorf("AdvanceStatus(%q, rejected) = %q, want rejected", s, got)
		}
	}
}

func TestStageEntryStatus(t *testing.T) {
	tests := []struct {
		approvalType string
		want         string
	}{
		{model.ApprovalTypeSurveyor, model.StatusPendingSurveyor},
		{model.ApprovalTypeConservation, model.StatusPendingConservation},
		{model.ApprovalTypeBudget, model.StatusPendingBudget},
		{"bogus", model.StatusPendingSurveyor},
	}
	for _, tt := range tests {
		if got := StageEntryStatus(tt.approvalType); got != tt.want {
			t.Errorf("StageEntryStatus(%q) = %q, want %q", tt.approvalType, got, tt.want)
		}
	}
}

func TestApprovalTypeForRole(t *testing.T) {
	tests := []struct {
		role   string
		want   string
		wantOK bool
	}{
		{model.RoleSurveyor, model.ApprovalTypeSurveyor, true},
		{model.RoleConservationOfficer, model.ApprovalTypeConservation, true},
		{model.RoleBudgetHolder, model.ApprovalTypeBudget, true},
		{model.RoleContractor, "", false},
		{model.RoleAdmin, "", false},
		{"visitor", "", false},
	}
	for _, tt := range tests {
		got, ok := ApprovalTypeForRole(tt.role)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ApprovalTypeForRole(%q) = (%q, %v), want (%q, %v)", tt.role, got, ok, tt.want, tt.wantOK)
		}
	}
}
