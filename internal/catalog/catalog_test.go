package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/storefront/internal/models"
)

func product(id int64, name, category string, price int64) models.Product {
	return models.Product{ID: id, Name: name, Category: category, Price: decimal.NewFromInt(price)}
}

func demoProducts() []models.Product {
	return []models.Product{
		product(1, "Laptop", "Electronics", 1200),
		product(2, "T-Shirt", "Clothing", 25),
		product(3, "The Great Gatsby", "Books", 15),
		product(4, "Smartphone", "Electronics", 800),
		product(5, "Jeans", "Clothing", 50),
		product(6, "Sapiens", "Books", 20),
	}
}

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestCategories(t *testing.T) {
	tests := []struct {
		name     string
		products []models.Product
		want     []string
	}{
		{
			name:     "first-occurrence order, not sorted",
			products: demoProducts(),
			want:     []string{"All", "Electronics", "Clothing", "Books"},
		},
		{
			name:     "empty catalog",
			products: nil,
			want:     []string{"All"},
		},
		{
			name: "case-sensitive distinctness",
			products: []models.Product{
				product(1, "a", "books", 1),
				product(2, "b", "Books", 1),
				product(3, "c", "books", 1),
			},
			want: []string{"All", "books", "Books"},
		},
		{
			name:     "category named All is not repeated",
			products: []models.Product{product(1, "a", "All", 1), product(2, "b", "Misc", 1)},
			want:     []string{"All", "Misc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categories(tt.products))
		})
	}
}

func TestVisible(t *testing.T) {
	products := demoProducts()

	tests := []struct {
		name      string
		selection string
		want      []int64
	}{
		{name: "All returns the catalog", selection: All, want: []int64{1, 2, 3, 4, 5, 6}},
		{name: "Electronics keeps catalog order", selection: "Electronics", want: []int64{1, 4}},
		{name: "Clothing", selection: "Clothing", want: []int64{2, 5}},
		{name: "Books", selection: "Books", want: []int64{3, 6}},
		{name: "unknown category is empty", selection: "Garden", want: []int64{}},
		{name: "comparison is case-sensitive", selection: "books", want: []int64{}},
		{name: "empty selection is not All", selection: "", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(products, tt.selection)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
			for _, p := range got {
				if tt.selection != All {
					assert.Equal(t, tt.selection, p.Category)
				}
			}
		})
	}
}

func TestVisible_ReturnsCopy(t *testing.T) {
	products := demoProducts()

	got := Visible(products, All)
	got[0].Name = "changed"

	assert.Equal(t, "Laptop", products[0].Name)
}

func TestNew(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		c, err := New(demoProducts())
		require.NoError(t, err)

		assert.Equal(t, 6, c.Len())
		assert.Equal(t, []string{"All", "Electronics", "Clothing", "Books"}, c.Categories())
		assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids(c.Products()))
		assert.Equal(t, []int64{2, 5}, ids(c.Visible("Clothing")))
	})

	t.Run("duplicate id", func(t *testing.T) {
		products := append(demoProducts(), product(1, "Tablet", "Electronics", 300))
		_, err := New(products)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := New([]models.Product{product(1, "Refund", "Misc", -5)})
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		_, err := New([]models.Product{product(1, "Sticker", "Misc", 0)})
		assert.NoError(t, err)
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := New([]models.Product{product(1, "Thing", "", 5)})
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("input slice is not retained", func(t *testing.T) {
		products := demoProducts()
		c, err := New(products)
		require.NoError(t, err)

		products[0].Name = "changed"

		p, ok := c.Lookup(1)
		require.True(t, ok)
		assert.Equal(t, "Laptop", p.Name)
	})
}

func TestCatalog_Lookup(t *testing.T) {
	c, err := New(demoProducts())
	require.NoError(t, err)

	p, ok := c.Lookup(4)
	require.True(t, ok)
	assert.Equal(t, "Smartphone", p.Name)

	_, ok = c.Lookup(99)
	assert.False(t, ok)
}

func TestCatalog_HasCategory(t *testing.T) {
	c, err := New(demoProducts())
	require.NoError(t, err)

	assert.True(t, c.HasCategory(All))
	assert.True(t, c.HasCategory("Books"))
	assert.False(t, c.HasCategory("books"))
	assert.False(t, c.HasCategory("Garden"))
}
