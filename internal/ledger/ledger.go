// Package ledger implements the cart state transitions: adding a product,
// removing one unit of a product and computing the running total.
//
// Every function is pure. The cart passed in is never modified; callers get a
// new cart back and may keep the old one as a snapshot.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/storefront/internal/models"
)

// ErrLineNotFound is returned by Remove when the cart has no line for the product.
var ErrLineNotFound = errors.New("cart line not found")

// displayPlaces is the number of decimal places shown to users.
const displayPlaces = 2

// Add returns a cart with one more unit of product.
//
// An existing line keeps its position and has its quantity incremented.
// Otherwise a new line with quantity 1 is appended, snapshotting the product
// name and price.
func Add(cart models.Cart, product models.Product) models.Cart {
	if i := cart.Index(product.ID); i >= 0 {
		out := cart.Clone()
		out[i].Quantity++
		return out
	}

	out := make(models.Cart, len(cart), len(cart)+1)
	copy(out, cart)
	return append(out, models.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	})
}

// Remove returns a cart with one unit of productID taken out.
//
// A line with quantity > 1 keeps its position and is decremented. A line
// with quantity 1 is deleted. If there is no line for productID the input
// cart is returned as is, together with an error wrapping ErrLineNotFound.
func Remove(cart models.Cart, productID int64) (models.Cart, error) {
	i := cart.Index(productID)
	if i < 0 {
		return cart, fmt.Errorf("%w: product %d", ErrLineNotFound, productID)
	}

	if cart[i].Quantity > 1 {
		out := cart.Clone()
		out[i].Quantity--
		return out, nil
	}

	out := make(models.Cart, 0, len(cart)-1)
	out = append(out, cart[:i]...)
	return append(out, cart[i+1:]...), nil
}

// Total returns the sum of quantity x price over all lines, unrounded.
// An empty cart totals zero.
func Total(cart models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, line := range cart {
		total = total.Add(LineTotal(line))
	}
	return total
}

// LineTotal returns quantity x price for one line.
func LineTotal(line models.CartLine) decimal.Decimal {
	return line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// Count returns the number of units in the cart.
func Count(cart models.Cart) int {
	n := 0
	for _, line := range cart {
		n += line.Quantity
	}
	return n
}

// Display formats an amount for users, rounded to two decimal places.
func Display(amount decimal.Decimal) string {
	return amount.StringFixed(displayPlaces)
}
