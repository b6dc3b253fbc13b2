package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rookgm/gopherstore/internal/models"
)

type CatalogService interface {
	// GetProduct returns product by id
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	// ListCategoryProducts returns category and its products
	ListCategoryProducts(ctx context.Context, slug string) (*models.Category, []models.Product, error)
}

// CatalogHandler represents HTTP handler for catalog reads
type CatalogHandler struct {
	svc CatalogService
}

// NewCatalogHandler creates new CatalogHandler instance
func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type productEnvelope struct {
	Success bool             `json:"success"`
	Product *productResponse `json:"product"`
}

type categoryProductsEnvelope struct {
	Success  bool               `json:"success"`
	Category categoryResponse   `json:"category"`
	Products []*productResponse `json:"products"`
}

// GetProduct returns single product
// 200 — product;
// 404 — product not found.
func (ch *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := ch.svc.GetProduct(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, productEnvelope{Success: true, Product: newProductResponse(product)})
	}
}

// ListCategoryProducts returns products of category
// 200 — category with products;
// 404 — category not found.
func (ch *CatalogHandler) ListCategoryProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, products, err := ch.svc.ListCategoryProducts(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := categoryProductsEnvelope{
			Success:  true,
			Category: categoryResponse{ID: category.ID, Name: category.Name, Slug: category.Slug},
			Products: make([]*productResponse, 0, len(products)),
		}
		for i := range products {
			resp.Products = append(resp.Products, newProductResponse(&products[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
