package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hugohenrick/commerce-assistant/internal/domain/catalog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository implements catalog.Repository over PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository instance
func NewCatalogRepository(db *pgxpool.Pool) catalog.Repository {
	return &CatalogRepository{
		db: db,
	}
}

// GetPromotedItem implements catalog.Repository.GetPromotedItem
func (r *CatalogRepository) GetPromotedItem(ctx context.Context) (*catalog.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, description, category, currency, price, promoted, variants
		 FROM products
		 WHERE promoted = TRUE
		 ORDER BY updated_at DESC
		 LIMIT 1`)

	product, err := scanProduct(row)
	if err == pgx.ErrNoRows {
		return nil, catalog.ErrNoPromotedItem
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load promoted item: %w", err)
	}

	return product, nil
}

// ListCategories implements catalog.Repository.ListCategories
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to read category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	return categories, nil
}

// ListByCategory implements catalog.Repository.ListByCategory
func (r *CatalogRepository) ListByCategory(ctx context.Context, category string, limit, offset int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, category, currency, price, promoted, variants
		 FROM products
		 WHERE LOWER(category) = LOWER($1)
		 ORDER BY name
		 LIMIT $2 OFFSET $3`,
		category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}

// GetProduct implements catalog.Repository.GetProduct
func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, description, category, currency, price, promoted, variants
		 FROM products
		 WHERE id = $1`,
		id)

	product, err := scanProduct(row)
	if err == pgx.ErrNoRows {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	return product, nil
}

// scanProduct reads one product row, decoding the variants JSON column
func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	var variants []byte

	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Currency, &p.Price, &p.Promoted, &variants)
	if err != nil {
		return nil, err
	}

	if len(variants) > 0 {
		if err := json.Unmarshal(variants, &p.Variants); err != nil {
			return nil, fmt.Errorf("failed to decode product variants: %w", err)
		}
	}

	return &p, nil
}
