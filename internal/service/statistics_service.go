package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	statsCacheKey = "heritage:stats:dashboard"
	statsCacheTTL = 30 * time.Second
)

// StatisticsService computes the dashboard counters, cached briefly in
// Redis when a client is configured. The cache is read-through and a Redis
// failure degrades silently to a direct query.
type StatisticsService interface {
	Dashboard(ctx context.Context) (model.DashboardStats, error)
}

type statisticsService struct {
	repo  repository.StatisticsRepository
	cache *redis.Client // nil disables caching
}

// NewStatisticsService returns a new instance of StatisticsService
func NewStatisticsService(repo repository.StatisticsRepository, cache *redis.Client) StatisticsService {
	return &statisticsService{repo: repo, cache: cache}
}

func (s *statisticsService) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var cached model.DashboardStats
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	stats, err := s.repo.Dashboard(ctx, time.Now())
	if err != nil {
		return stats, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
				log.Printf("stats cache write failed: %v", err)
			}
		}
	}

	return stats, nil
}
