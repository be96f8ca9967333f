package repository

import (
	"context"
	"errors"

	"backend/internal/model"

	"gorm.io/gorm"
)

// MaterialRepository defines the interface for data access of the
// conservation material catalog
type MaterialRepository interface {
	Create(ctx context.Context, item *model.MaterialCatalogItem) error
	GetByID(ctx context.Context, id string) (*model.MaterialCatalogItem, error)
	List(ctx context.Context, category string) ([]model.MaterialCatalogItem, error)
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository returns a new instance of MaterialRepository
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, item *model.MaterialCatalogItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *materialRepository) GetByID(ctx context.Context, id string) (*model.MaterialCatalogItem, error) {
	var item model.MaterialCatalogItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *materialRepository) List(ctx context.Context, category string) ([]model.MaterialCatalogItem, error) {
	query := GetDB(ctx, r.db).Order("category ASC, name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var items []model.MaterialCatalogItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
