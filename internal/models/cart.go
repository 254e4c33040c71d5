package models

import "github.com/shopspring/decimal"

// CartLine represents one product's presence in a cart.
type CartLine struct {
	// ProductID identifies the product this line belongs to.
	// A cart holds at most one line per product ID.
	ProductID int64

	// Name is a snapshot of the product name at add time.
	Name string

	// Price is a snapshot of the unit price at add time.
	Price decimal.Decimal

	// Quantity is always >= 1. A line whose quantity would reach 0 is removed.
	Quantity int
}

// Cart is an ordered sequence of cart lines in insertion order.
// The first product added stays first regardless of later quantity changes.
type Cart []CartLine

// Index returns the position of the line for productID, or -1.
func (c Cart) Index(productID int64) int {
	for i, line := range c {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the cart that shares no memory with c.
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
