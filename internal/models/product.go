package models

import "github.com/shopspring/decimal"

// Product represents a purchasable catalog entry.
type Product struct {
	// ID is the unique, immutable identifier of the product.
	ID int64

	// Name is the display name (e.g., "Laptop").
	Name string

	// Category groups products for filtering (e.g., "Electronics").
	// Comparison is case-sensitive.
	Category string

	// Price is the non-negative unit price.
	Price decimal.Decimal
}
