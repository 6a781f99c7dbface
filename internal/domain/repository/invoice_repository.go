package repository

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
)

// InvoiceRepository persists issued invoices.
type InvoiceRepository interface {
	// Save stores an invoice with its lines.
	Save(ctx context.Context, invoice *entity.Invoice) error

	// FindByID returns the invoice with the given ID, or ErrInvoiceNotFound.
	FindByID(ctx context.Context, id string) (*entity.Invoice, error)

	// ListByCustomer returns every invoice issued to a customer, newest
	// first.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Invoice, error)
}
