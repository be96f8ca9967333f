package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"gorm.io/gorm"
)

// SiteRepository defines the interface for data access of Site entities
type SiteRepository interface {
	Create(ctx context.Context, site *model.Site) error
	GetByID(ctx context.Context, id string) (*model.Site, error)
	List(ctx context.Context) ([]model.Site, error)
}

type siteRepository struct {
	db *gorm.DB
}

// NewSiteRepository returns a new instance of SiteRepository
func NewSiteRepository(db *gorm.DB) SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) Create(ctx context.Context, site *model.Site) error {
	return GetDB(ctx, r.db).Create(site).Error
}

func (r *siteRepository) GetByID(ctx context.Context, id string) (*model.Site, error) {
	var site model.Site
	if err := GetDB(ctx, r.db).First(&site, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &site, nil
}

func (r *siteRepository) List(ctx context.Context) ([]model.Site, error) {
	var sites []model.Site
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}
