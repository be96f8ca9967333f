package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
)

// CreateSiteRequest carries the heritage site form
type CreateSiteRequest struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description"`
}

// SiteService manages heritage sites
type SiteService interface {
	Create(ctx context.Context, req CreateSiteRequest) (*model.Site, error)
	GetByID(ctx context.Context, id string) (*model.Site, error)
	List(ctx context.Context) ([]model.Site, error)
}

type siteService struct {
	repo repository.SiteRepository
}

// NewSiteService returns a new instance of SiteService
func NewSiteService(repo repository.SiteRepository) SiteService {
	return &siteService{repo: repo}
}

func (s *siteService) Create(ctx context.Context, req CreateSiteRequest) (*model.Site, error) {
	site := &model.Site{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *siteService) GetByID(ctx context.Context, id string) (*model.Site, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *siteService) List(ctx context.Context) ([]model.Site, error) {
	return s.repo.List(ctx)
}
