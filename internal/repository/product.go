package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rookgm/gopherstore/internal/models"
	"github.com/rookgm/gopherstore/internal/repository/postgres"
	"github.com/shopspring/decimal"
)

const (
	productColumns = `p.id, p.name, p.slug, p.description, p.price::text, p.quantity, p.shipping,
						p.created_at, p.updated_at, c.id, c.name, c.slug`

	selectProducts = `
						SELECT ` + productColumns + ` FROM products p
						JOIN categories c ON c.id = p.category_id
`
	selectProductsByIDsQuery    = selectProducts + ` WHERE p.id = ANY($1)`
	selectProductByIDQuery      = selectProducts + ` WHERE p.id = $1`
	selectProductsByCategoryQry = selectProducts + ` WHERE p.category_id = $1 ORDER BY p.created_at DESC`

	selectCategoryBySlugQuery = `
						SELECT id, name, slug FROM categories WHERE slug = $1
`
)

// ProductRepository is read side of catalog
type ProductRepository struct {
	db *postgres.DB
}

// NewProductRepository creates new ProductRepository instance
func NewProductRepository(db *postgres.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByIDs returns products with given ids, unknown ids are skipped
func (pr *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	return pr.list(ctx, selectProductsByIDsQuery, ids)
}

// GetProductByID returns product by id
func (pr *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	products, err := pr.list(ctx, selectProductByIDQuery, id)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return nil, models.ErrDataNotFound
	}

	return &products[0], nil
}

// GetCategoryBySlug returns category by slug
func (pr *ProductRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category := models.Category{}
	err := pr.db.QueryRow(ctx, selectCategoryBySlugQuery, slug).Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &category, nil
}

// GetProductsByCategoryID returns products of category, newest first
func (pr *ProductRepository) GetProductsByCategoryID(ctx context.Context, categoryID string) ([]models.Product, error) {
	return pr.list(ctx, selectProductsByCategoryQry, categoryID)
}

func (pr *ProductRepository) list(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := pr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		product, dest := productScanDest()
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if err := product.finish(); err != nil {
			return nil, err
		}
		products = append(products, product.Product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// scannedProduct holds product while numeric columns are scanned as text
type scannedProduct struct {
	models.Product
	price string
}

func (sp *scannedProduct) finish() error {
	price, err := decimal.NewFromString(sp.price)
	if err != nil {
		return err
	}
	sp.Price = price
	return nil
}

// productScanDest returns scan destinations matching productColumns
func productScanDest() (*scannedProduct, []any) {
	sp := &scannedProduct{}
	return sp, []any{
		&sp.ID, &sp.Name, &sp.Slug, &sp.Description, &sp.price, &sp.Quantity, &sp.Shipping,
		&sp.CreatedAt, &sp.UpdatedAt, &sp.Category.ID, &sp.Category.Name, &sp.Category.Slug,
	}
}
