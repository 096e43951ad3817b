package catalog

import (
	"context"
	"errors"
)

// Repository errors
var (
	// ErrProductNotFound occurs when a product id does not exist
	ErrProductNotFound = errors.New("product not found")

	// ErrNoPromotedItem occurs when the catalog has no promoted product
	ErrNoPromotedItem = errors.New("no promoted item available")
)

// Repository defines the read-only catalog contract consumed by the dialogs
// and the checkout flow
type Repository interface {
	// GetPromotedItem returns the product currently promoted for checkout
	GetPromotedItem(ctx context.Context) (*Product, error)

	// ListCategories returns the distinct catalog categories
	ListCategories(ctx context.Context) ([]string, error)

	// ListByCategory returns the products of a category, paged
	ListByCategory(ctx context.Context, category string, limit, offset int) ([]Product, error)

	// GetProduct returns a product by id
	GetProduct(ctx context.Context, id string) (*Product, error)
}
