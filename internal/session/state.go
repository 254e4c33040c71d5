// Package session owns the per-user state: the category selection, the
// products visible under it and the cart.
//
// State transitions are pure: Apply takes a State and an Action and returns the
// next State without touching its input. Session wraps a State so that actions
// are applied one at a time and keeps prior carts for undo.
package session

import (
	"errors"
	"fmt"

	"github.com/mmynk/storefront/internal/catalog"
	"github.com/mmynk/storefront/internal/ledger"
	"github.com/mmynk/storefront/internal/models"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrSessionNotFound = errors.New("session not found")
)

// State is a snapshot of one session.
type State struct {
	Selection string
	Visible   []models.Product
	Cart      models.Cart
}

// Action is a user action applied to a State.
type Action interface {
	apply(cat *catalog.Catalog, s State) (State, error)
}

// SelectCategory changes the category filter.
type SelectCategory struct {
	Category string
}

// AddToCart adds one unit of a catalog product.
type AddToCart struct {
	ProductID int64
}

// RemoveFromCart removes one unit of a product already in the cart.
type RemoveFromCart struct {
	ProductID int64
}

// Initial returns the state of a new session: everything visible, empty cart.
func Initial(cat *catalog.Catalog) State {
	return recompute(cat, State{Selection: catalog.All, Cart: models.Cart{}})
}

// Apply returns the state after action. On error the returned state equals s.
func Apply(cat *catalog.Catalog, s State, action Action) (State, error) {
	next, err := action.apply(cat, s)
	if err != nil {
		return s, err
	}
	return recompute(cat, next), nil
}

// DisplayTotal returns the cart total rounded for display.
func (s State) DisplayTotal() string {
	return ledger.Display(ledger.Total(s.Cart))
}

func (a SelectCategory) apply(cat *catalog.Catalog, s State) (State, error) {
	if !cat.HasCategory(a.Category) {
		return s, fmt.Errorf("%w: %q", ErrUnknownCategory, a.Category)
	}
	s.Selection = a.Category
	return s, nil
}

func (a AddToCart) apply(cat *catalog.Catalog, s State) (State, error) {
	product, ok := cat.Lookup(a.ProductID)
	if !ok {
		return s, fmt.Errorf("%w: %d", ErrUnknownProduct, a.ProductID)
	}
	s.Cart = ledger.Add(s.Cart, product)
	return s, nil
}

func (a RemoveFromCart) apply(_ *catalog.Catalog, s State) (State, error) {
	cart, err := ledger.Remove(s.Cart, a.ProductID)
	if err != nil {
		return s, err
	}
	s.Cart = cart
	return s, nil
}

// recompute derives the visible products from the selection. It runs after
// every action; nothing is cached between calls.
func recompute(cat *catalog.Catalog, s State) State {
	s.Visible = cat.Visible(s.Selection)
	return s
}
