// Package storage provides the catalog source the storefront loads at startup.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/storefront/internal/models"
)

// ErrProductNotFound is returned when a product ID does not exist.
var ErrProductNotFound = errors.New("product not found")

// CatalogStore defines the interface for catalog storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type CatalogStore interface {
	// ListProducts returns every product in catalog order.
	ListProducts(ctx context.Context) ([]models.Product, error)

	// GetProduct retrieves a product by its ID.
	// Returns an error wrapping ErrProductNotFound if it does not exist.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)

	// UpsertProducts inserts or replaces products. Products keep their
	// catalog position when replaced; new ones are appended in the given order.
	UpsertProducts(ctx context.Context, products []models.Product) error

	// Close releases any resources held by the store.
	Close() error
}
