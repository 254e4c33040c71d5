package catalog

import "github.com/mmynk/storefront/internal/models"

// All is the selection that matches every product.
const All = "All"

// Categories returns All followed by each distinct category of products
// in the order it first appears.
func Categories(products []models.Product) []string {
	seen := map[string]bool{All: true}
	categories := []string{All}
	for _, p := range products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// Visible returns the products matching selection, in catalog order.
//
// All returns every product. Any other value is compared to the product
// category exactly; a selection no product carries yields an empty slice.
func Visible(products []models.Product, selection string) []models.Product {
	if selection == All {
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == selection {
			out = append(out, p)
		}
	}
	return out
}
