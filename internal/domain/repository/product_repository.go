package repository

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
)

// ProductRepository persists catalog entries.
type ProductRepository interface {
	// Create stores a new product and returns it with its assigned ID.
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)

	// FindByID returns the product with the given ID, or ErrProductNotFound.
	FindByID(ctx context.Context, id string) (*entity.Product, error)

	// List returns products matching the filter, newest first.
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	// Update applies the given field changes to an existing product.
	Update(ctx context.Context, id string, changes map[string]any) error

	// Delete removes a product from the catalog.
	Delete(ctx context.Context, id string) error
}
