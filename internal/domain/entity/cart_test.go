package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartAddMergesExistingLine(t *testing.T) {
	t.Parallel()

	cart := NewCart("user-1")
	cart.Add(CartItem{ProductID: "p1", Name: "Queso", Price: 4.50, Quantity: 2})
	cart.Add(CartItem{ProductID: "p1", Name: "Queso", Price: 4.50, Quantity: 3})

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartAddDefaultsQuantityToOne(t *testing.T) {
	t.Parallel()

	cart := NewCart("user-1")
	cart.Add(CartItem{ProductID: "p1", Quantity: 0})

	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartSetQuantity(t *testing.T) {
	t.Parallel()

	cart := NewCart("user-1")
	cart.Add(CartItem{ProductID: "p1", Quantity: 2})
	cart.Add(CartItem{ProductID: "p2", Quantity: 1})

	assert.True(t, cart.SetQuantity("p1", 7))
	assert.Equal(t, 7, cart.Items[0].Quantity)

	// Zero removes the line instead of keeping an empty one.
	assert.True(t, cart.SetQuantity("p1", 0))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)

	assert.False(t, cart.SetQuantity("missing", 3))
}

func TestCartDeduct(t *testing.T) {
	t.Parallel()

	cart := NewCart("user-1")
	cart.Add(CartItem{ProductID: "p1", Quantity: 5})
	cart.Add(CartItem{ProductID: "p2", Quantity: 2})

	cart.Deduct("p1", 3)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Deducting the full quantity drops the line.
	cart.Deduct("p2", 2)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ProductID)

	// Unknown products are a no-op.
	cart.Deduct("missing", 1)
	assert.Len(t, cart.Items, 1)
}

func TestCartClearAndEmpty(t *testing.T) {
	t.Parallel()

	cart := NewCart("user-1")
	assert.True(t, cart.IsEmpty())

	cart.Add(CartItem{ProductID: "p1", Quantity: 1})
	assert.False(t, cart.IsEmpty())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
}

func TestCartSubtotal(t *testing.T) {
	t.Parallel()

	cart := NewCart("user-1")
	cart.Add(CartItem{ProductID: "p1", Price: 2.50, Quantity: 3})
	cart.Add(CartItem{ProductID: "p2", Price: 0.10, Quantity: 2})

	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("7.70")),
		"got %s", cart.Subtotal())
	assert.Equal(t, 5, cart.TotalQuantity())
}
