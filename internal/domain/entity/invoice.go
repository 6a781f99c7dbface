package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is the VAT rate applied to every invoice subtotal.
var TaxRate = decimal.RequireFromString("0.12")

// InvoiceLine is one purchased product on an invoice.
type InvoiceLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Invoice is the durable record of a completed checkout.
type Invoice struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Lines         []InvoiceLine   `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	IssuedAt      time.Time       `json:"issuedAt"`
}

// ComputeTotals fills LineTotal for every line, then Subtotal, Tax and
// Total. Amounts are rounded to cents.
func (inv *Invoice) ComputeTotals() {
	subtotal := decimal.Zero
	for i := range inv.Lines {
		line := &inv.Lines[i]
		line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		subtotal = subtotal.Add(line.LineTotal)
	}

	inv.Subtotal = subtotal.Round(2)
	inv.Tax = inv.Subtotal.Mul(TaxRate).Round(2)
	inv.Total = inv.Subtotal.Add(inv.Tax).Round(2)
}
