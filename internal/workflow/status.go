// Package workflow implements the assessment lifecycle: the status state
// machine and the role-gated approval engine that drives it.
package workflow

import "backend/internal/model"

// approveTransitions maps each pending status to its successor on approval.
// Statuses absent from the table are unchanged by an approval.
var approveTransitions = map[string]string{
	model.StatusPendingSurveyor:     model.StatusPendingConservation,
	model.StatusPendingConservation: model.StatusPendingBudget,
	model.StatusPendingBudget:       model.StatusApproved,
}

// AdvanceStatus computes the next assessment status for a decision. A
// rejection is unconditional: every status maps to rejected. An approval
// outside the three pending statuses is a no-op returning the current
// status unchanged.
func AdvanceStatus(current, decision string) string {
	if decision == model.ApprovalRejected {
		return model.StatusRejected
	}
	if next, ok := approveTransitions[current]; ok {
		return next
	}
	return current
}

// stageEntry maps an approval type to the pending status that opens its stage
var stageEntry = map[string]string{
	model.ApprovalTypeSurveyor:     model.StatusPendingSurveyor,
	model.ApprovalTypeConservation: model.StatusPendingConservation,
	model.ApprovalTypeBudget:       model.StatusPendingBudget,
}

// StageEntryStatus returns the pending status matching an approval type.
// Unrecognized types default to pending_surveyor.
func StageEntryStatus(approvalType string) string {
	if s, ok := stageEntry[approvalType]; ok {
		return s
	}
	return model.StatusPendingSurveyor
}

// roleApprovalTypes is the fixed role → approval-type table. Roles absent
// from it have no approval responsibilities.
var roleApprovalTypes = map[string]string{
	model.RoleSurveyor:            model.ApprovalTypeSurveyor,
	model.RoleConservationOfficer: model.ApprovalTypeConservation,
	model.RoleBudgetHolder:        model.ApprovalTypeBudget,
}

// ApprovalTypeForRole returns the approval type a role decides, and false
// for roles with no decision surface.
func ApprovalTypeForRole(role string) (string, bool) {
	t, ok := roleApprovalTypes[role]
	return t, ok
}
