package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"gorm.io/gorm"
)

// StatisticsRepository computes the dashboard counters
type StatisticsRepository interface {
	Dashboard(ctx context.Context, now time.Time) (model.DashboardStats, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository returns the GORM-backed StatisticsRepository
func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) Dashboard(ctx context.Context, now time.Time) (model.DashboardStats, error) {
	var stats model.DashboardStats
	db := GetDB(ctx, r.db)

	if err := db.Model(&model.Assessment{}).Count(&stats.TotalAssessments).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.Approval{}).
		Where("status = ?", model.ApprovalPending).
		Count(&stats.PendingApprovals).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.Assessment{}).
		Where("status = ?", model.StatusInProgress).
		Count(&stats.ActiveProjects).Error; err != nil {
		return stats, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := db.Model(&model.Assessment{}).
		Where("status = ? AND updated_at >= ?", model.StatusCompleted, monthStart).
		Count(&stats.CompletedThisMonth).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
