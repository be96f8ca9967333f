package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest carries a new catalog entry
type CreateMaterialRequest struct {
	Name          string          `json:"name" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	Unit          string          `json:"unit" binding:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	Supplier      string          `json:"supplier"`
	HeritageGrade string          `json:"heritage_grade"`
}

// MaterialService manages the conservation material catalog
type MaterialService interface {
	Create(ctx context.Context, req CreateMaterialRequest) (*model.MaterialCatalogItem, error)
	List(ctx context.Context, category string) ([]model.MaterialCatalogItem, error)
}

type materialService struct {
	repo repository.MaterialRepository
}

// NewMaterialService returns a new instance of MaterialService
func NewMaterialService(repo repository.MaterialRepository) MaterialService {
	return &materialService{repo: repo}
}

func (s *materialService) Create(ctx context.Context, req CreateMaterialRequest) (*model.MaterialCatalogItem, error) {
	item := &model.MaterialCatalogItem{
		Name:          req.Name,
		Category:      req.Category,
		Unit:          req.Unit,
		UnitPrice:     req.UnitPrice,
		Supplier:      req.Supplier,
		HeritageGrade: req.HeritageGrade,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *materialService) List(ctx context.Context, category string) ([]model.MaterialCatalogItem, error) {
	return s.repo.List(ctx, category)
}
