// Package catalog holds the immutable product catalog and the category filter
// derived from it.
package catalog

import (
	"errors"
	"fmt"

	"github.com/mmynk/storefront/internal/models"
)

var (
	ErrDuplicateID   = errors.New("duplicate product id")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrMissingField  = errors.New("product name and category are required")
)

// Catalog is an ordered, read-only set of products.
// It is built once at startup and shared by every session.
type Catalog struct {
	products   []models.Product
	byID       map[int64]int
	categories []string
}

// New validates products and returns a catalog preserving their order.
func New(products []models.Product) (*Catalog, error) {
	byID := make(map[int64]int, len(products))
	for i, p := range products {
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: %w", p.ID, ErrNegativePrice)
		}
		if p.Name == "" || p.Category == "" {
			return nil, fmt.Errorf("product %d: %w", p.ID, ErrMissingField)
		}
		byID[p.ID] = i
	}

	owned := make([]models.Product, len(products))
	copy(owned, products)

	return &Catalog{
		products:   owned,
		byID:       byID,
		categories: Categories(owned),
	}, nil
}

// Products returns a copy of the catalog in its original order.
func (c *Catalog) Products() []models.Product {
	return Visible(c.products, All)
}

// Categories returns All followed by the catalog's categories in first-occurrence order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Visible filters the catalog by selection. See the package-level Visible.
func (c *Catalog) Visible(selection string) []models.Product {
	return Visible(c.products, selection)
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id int64) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

// HasCategory reports whether selection is All or a category of the catalog.
func (c *Catalog) HasCategory(selection string) bool {
	for _, category := range c.categories {
		if category == selection {
			return true
		}
	}
	return false
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
