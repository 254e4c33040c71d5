package storage

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/storefront/internal/models"
)

// catalogFile is the on-disk layout of an importable catalog.
// JSON files are accepted as well, since JSON is valid YAML.
type catalogFile struct {
	Products []struct {
		ID       int64  `yaml:"id"`
		Name     string `yaml:"name"`
		Category string `yaml:"category"`
		Price    string `yaml:"price"`
	} `yaml:"products"`
}

// ReadCatalogFile parses a catalog file into products, preserving file order.
func ReadCatalogFile(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses YAML or JSON catalog data.
func ParseCatalog(data []byte) ([]models.Product, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	products := make([]models.Product, 0, len(file.Products))
	for i, entry := range file.Products {
		price, err := decimal.NewFromString(entry.Price)
		if err != nil {
			return nil, fmt.Errorf("product #%d (id %d): invalid price %q: %w", i+1, entry.ID, entry.Price, err)
		}
		products = append(products, models.Product{
			ID:       entry.ID,
			Name:     entry.Name,
			Category: entry.Category,
			Price:    price,
		})
	}
	return products, nil
}
