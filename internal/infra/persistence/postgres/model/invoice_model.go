// Package model defines the relational schema for issued invoices.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices table.
type Invoice struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	Number        string          `gorm:"uniqueIndex;not null"`
	CustomerID    string          `gorm:"index;not null"`
	CustomerName  string          `gorm:"not null"`
	CustomerEmail string          `gorm:"not null"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IssuedAt      time.Time       `gorm:"index;not null"`
	Lines         []InvoiceLine   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceLine is the invoice_lines table.
type InvoiceLine struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	InvoiceID string          `gorm:"index;type:uuid;not null"`
	ProductID string          `gorm:"not null"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}
