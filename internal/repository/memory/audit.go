package memory

import (
	"context"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

type auditRepository struct {
	store *Store
}

// NewAuditRepository returns the in-memory AuditRepository
func NewAuditRepository(store *Store) repository.AuditRepository {
	return &auditRepository{store: store}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	r.store.audits = append(r.store.audits, *entry)
	return nil
}

func (r *auditRepository) List(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	// Newest first
	var matched []model.AuditLog
	for i := len(r.store.audits) - 1; i >= 0; i-- {
		if action == "" || r.store.audits[i].Action == action {
			matched = append(matched, r.store.audits[i])
		}
	}

	total := int64(len(matched))
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []model.AuditLog{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type statisticsRepository struct {
	store *Store
}

// NewStatisticsRepository returns the in-memory StatisticsRepository
func NewStatisticsRepository(store *Store) repository.StatisticsRepository {
	return &statisticsRepository{store: store}
}

func (r *statisticsRepository) Dashboard(ctx context.Context, now time.Time) (model.DashboardStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var stats model.DashboardStats
	stats.TotalAssessments = int64(len(r.store.assessments))
	for i := range r.store.approvals {
		if r.store.approvals[i].Status == model.ApprovalPending {
			stats.PendingApprovals++
		}
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := range r.store.assessments {
		switch r.store.assessments[i].Status {
		case model.StatusInProgress:
			stats.ActiveProjects++
		case model.StatusCompleted:
			if !r.store.assessments[i].UpdatedAt.Before(monthStart) {
				stats.CompletedThisMonth++
			}
		}
	}
	return stats, nil
}
