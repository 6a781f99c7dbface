package entity

import "github.com/shopspring/decimal"

// CartItem is a product snapshot plus quantity. The snapshot keeps the
// cart stable while the catalog entry changes underneath it.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// Cart is the pending order of a single user. Items keep insertion
// order.
type Cart struct {
	OwnerID string     `json:"ownerId"`
	Items   []CartItem `json:"items"`
}

// NewCart returns an empty cart for owner.
func NewCart(ownerID string) *Cart {
	return &Cart{OwnerID: ownerID, Items: []CartItem{}}
}

// Add puts a product in the cart. Adding a product already present
// merges into the existing line by summing quantities.
func (c *Cart) Add(item CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity

			return
		}
	}

	c.Items = append(c.Items, item)
}

// SetQuantity replaces the quantity of a line. A quantity of zero or
// less removes the line. Returns false when the product is not in the
// cart.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}

		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}

		return true
	}

	return false
}

// Remove deletes a line from the cart. Returns false when absent.
func (c *Cart) Remove(productID string) bool {
	return c.SetQuantity(productID, 0)
}

// Deduct subtracts quantity from a line, removing it when the line
// drops to zero or below. Lines for other products are untouched.
func (c *Cart) Deduct(productID string, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}

		remaining := c.Items[i].Quantity - quantity
		if remaining <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = remaining
		}

		return
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity sums the quantities of every line.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}

	return total
}

// Subtotal sums price times quantity across every line.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	return subtotal
}
