// Package models defines the core domain models for the storefront.
//
// # Models
//
//   - Product: an entry of the catalog, loaded once at startup
//   - CartLine: one product's quantity entry within a cart
//   - Cart: the ordered sequence of cart lines owned by a session
//
// # Design Principles
//
// 1. **Immutable catalog**: products are never mutated after they are loaded
// 2. **Value carts**: a Cart is a plain slice of CartLine values, so a copy of
//    the slice is a complete snapshot of the cart
// 3. **Snapshots, not references**: a CartLine copies the product name and
//    price at the moment the product is added
// 4. **Exact money**: prices use decimal.Decimal, never float64
package models
