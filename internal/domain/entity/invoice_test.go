package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceComputeTotals(t *testing.T) {
	t.Parallel()

	inv := &Invoice{
		Lines: []InvoiceLine{
			{ProductID: "p1", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 3},
			{ProductID: "p2", UnitPrice: decimal.RequireFromString("0.10"), Quantity: 2},
		},
	}

	inv.ComputeTotals()

	assert.True(t, inv.Lines[0].LineTotal.Equal(decimal.RequireFromString("7.50")))
	assert.True(t, inv.Lines[1].LineTotal.Equal(decimal.RequireFromString("0.20")))
	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("7.70")))
	// 12% VAT on 7.70 is 0.924, rounded to cents.
	assert.True(t, inv.Tax.Equal(decimal.RequireFromString("0.92")), "got %s", inv.Tax)
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("8.62")), "got %s", inv.Total)
}

func TestInvoiceComputeTotalsEmpty(t *testing.T) {
	t.Parallel()

	inv := &Invoice{}
	inv.ComputeTotals()

	assert.True(t, inv.Subtotal.IsZero())
	assert.True(t, inv.Tax.IsZero())
	assert.True(t, inv.Total.IsZero())
}
