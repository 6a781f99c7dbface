package usecase

import (
	"context"
	"io"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
)

// CreateProductInput defines the data required to add a catalog entry.
type CreateProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Available   *bool   `json:"available"`
}

// UpdateProductInput carries partial changes to a catalog entry. Nil
// fields are left untouched.
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	Available   *bool    `json:"available"`
}

// ListProductsInput narrows a catalog listing. StartAfter is the ID of
// the last product of the previous page.
type ListProductsInput struct {
	Category           string
	SellerID           string
	IncludeUnavailable bool
	Limit              int
	StartAfter         string
}

// UploadImageInput defines a product image upload.
type UploadImageInput struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// CatalogUsecase defines the interface for product catalog operations.
type CatalogUsecase interface {
	// CreateProduct adds a product owned by the actor. Employee or above.
	CreateProduct(ctx context.Context, actor *entity.UserProfile, input CreateProductInput) (*entity.Product, error)

	// GetProduct returns a single catalog entry. Unavailable products
	// are hidden from clients unless they own them.
	GetProduct(ctx context.Context, actor *entity.UserProfile, id string) (*entity.Product, error)

	// ListProducts returns catalog entries visible to the actor.
	ListProducts(ctx context.Context, actor *entity.UserProfile, input ListProductsInput) ([]*entity.Product, error)

	// UpdateProduct applies partial changes. Sellers may edit their own
	// products; admins may edit any.
	UpdateProduct(ctx context.Context, actor *entity.UserProfile, id string, input UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a catalog entry under the same ownership
	// rules as UpdateProduct.
	DeleteProduct(ctx context.Context, actor *entity.UserProfile, id string) error

	// UploadImage stores a product image and returns its public URL.
	// Employee or above.
	UploadImage(ctx context.Context, actor *entity.UserProfile, input UploadImageInput) (string, error)
}
