package service

import (
	"context"

	"github.com/rookgm/gopherstore/internal/models"
)

// CatalogRepository is interface for catalog reads
type CatalogRepository interface {
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetProductsByCategoryID(ctx context.Context, categoryID string) ([]models.Product, error)
}

// CatalogService implements CatalogService interface
type CatalogService struct {
	repo CatalogRepository
}

// NewCatalogService creates new CatalogService instance
func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// GetProduct returns product by id
func (cs *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return cs.repo.GetProductByID(ctx, id)
}

// ListCategoryProducts returns category and its products
func (cs *CatalogService) ListCategoryProducts(ctx context.Context, slug string) (*models.Category, []models.Product, error) {
	category, err := cs.repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	products, err := cs.repo.GetProductsByCategoryID(ctx, category.ID)
	if err != nil {
		return nil, nil, err
	}

	return category, products, nil
}
