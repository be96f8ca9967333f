package model

// DashboardStats aggregates the home-screen counters
type DashboardStats struct {
	TotalAssessments   int64 `json:"total_assessments"`
	PendingApprovals   int64 `json:"pending_approvals"`
	ActiveProjects     int64 `json:"active_projects"`
	CompletedThisMonth int64 `json:"completed_this_month"`
}
