package usecase

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
)

// AddToCartInput defines a cart addition.
type AddToCartInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemInput replaces a line's quantity. Zero removes the line.
type UpdateCartItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// CheckoutOutput returns the issued invoice and its QR code.
type CheckoutOutput struct {
	Invoice *entity.Invoice
	QRCode  []byte
}

// CartUsecase defines the interface for cart and checkout operations.
type CartUsecase interface {
	// GetCart returns the actor's cart, creating an empty one on first
	// access.
	GetCart(ctx context.Context, actor *entity.UserProfile) (*entity.Cart, error)

	// AddToCart snapshots the product into the actor's cart.
	AddToCart(ctx context.Context, actor *entity.UserProfile, input AddToCartInput) (*entity.Cart, error)

	// UpdateCartItem changes a line's quantity, removing it at zero.
	UpdateCartItem(ctx context.Context, actor *entity.UserProfile, input UpdateCartItemInput) (*entity.Cart, error)

	// ClearCart empties the actor's cart.
	ClearCart(ctx context.Context, actor *entity.UserProfile) error

	// Checkout issues and persists an invoice from the cart, then
	// deducts the invoiced quantities. Items added during checkout
	// survive.
	Checkout(ctx context.Context, actor *entity.UserProfile) (*CheckoutOutput, error)

	// GetInvoice returns an issued invoice. Customers see their own;
	// admins see any.
	GetInvoice(ctx context.Context, actor *entity.UserProfile, id string) (*entity.Invoice, error)

	// ListInvoices returns a customer's invoices, newest first. An
	// empty customerID means the actor's own; other customers require
	// admin.
	ListInvoices(ctx context.Context, actor *entity.UserProfile, customerID string) ([]*entity.Invoice, error)
}
