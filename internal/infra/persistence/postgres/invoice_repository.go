package postgres

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/repository"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/persistence/postgres/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates an InvoiceRepository backed by PostgreSQL.
func NewInvoiceRepository(db *gorm.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Save stores an invoice with its lines in one transaction.
func (r *invoiceRepository) Save(ctx context.Context, invoice *entity.Invoice) error {
	record := toModel(invoice)

	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	}); err != nil {
		return errors.Wrap(err, "insert invoice")
	}

	return nil
}

// FindByID returns the invoice with its lines.
func (r *invoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var record model.Invoice

	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrInvoiceNotFound
		}

		return nil, errors.Wrap(err, "select invoice")
	}

	return toEntity(&record), nil
}

// ListByCustomer returns every invoice issued to a customer, newest first.
func (r *invoiceRepository) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Invoice, error) {
	var records []model.Invoice

	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("customer_id = ?", customerID).
		Order("issued_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(err, "select invoices")
	}

	invoices := make([]*entity.Invoice, 0, len(records))
	for i := range records {
		invoices = append(invoices, toEntity(&records[i]))
	}

	return invoices, nil
}

func toModel(invoice *entity.Invoice) *model.Invoice {
	record := &model.Invoice{
		ID:            invoice.ID,
		Number:        invoice.Number,
		CustomerID:    invoice.CustomerID,
		CustomerName:  invoice.CustomerName,
		CustomerEmail: invoice.CustomerEmail,
		Subtotal:      invoice.Subtotal,
		Tax:           invoice.Tax,
		Total:         invoice.Total,
		IssuedAt:      invoice.IssuedAt,
	}
	for _, line := range invoice.Lines {
		record.Lines = append(record.Lines, model.InvoiceLine{
			InvoiceID: invoice.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
		})
	}

	return record
}

func toEntity(record *model.Invoice) *entity.Invoice {
	invoice := &entity.Invoice{
		ID:            record.ID,
		Number:        record.Number,
		CustomerID:    record.CustomerID,
		CustomerName:  record.CustomerName,
		CustomerEmail: record.CustomerEmail,
		Subtotal:      record.Subtotal,
		Tax:           record.Tax,
		Total:         record.Total,
		IssuedAt:      record.IssuedAt,
	}
	for _, line := range record.Lines {
		invoice.Lines = append(invoice.Lines, entity.InvoiceLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
		})
	}

	return invoice
}
