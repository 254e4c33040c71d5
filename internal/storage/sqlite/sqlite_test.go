package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/storefront/internal/models"
	"github.com/mmynk/storefront/internal/storage"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "storefront-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, dbPath
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSQLiteStore(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("migrations seed the demo catalog in order", func(t *testing.T) {
		products, err := store.ListProducts(ctx)
		if err != nil {
			t.Fatalf("ListProducts failed: %v", err)
		}

		want := []string{"Laptop", "T-Shirt", "The Great Gatsby", "Smartphone", "Jeans", "Sapiens"}
		if got := names(products); !equalStrings(got, want) {
			t.Errorf("products = %v, want %v", got, want)
		}
		if !products[0].Price.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("Laptop price = %s, want 1200", products[0].Price)
		}
	})

	t.Run("GetProduct retrieves a product", func(t *testing.T) {
		p, err := store.GetProduct(ctx, 4)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if p.Name != "Smartphone" || p.Category != "Electronics" {
			t.Errorf("unexpected product: %+v", p)
		}
	})

	t.Run("GetProduct returns error for nonexistent product", func(t *testing.T) {
		_, err := store.GetProduct(ctx, 999)
		if !errors.Is(err, storage.ErrProductNotFound) {
			t.Errorf("Expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("UpsertProducts replaces in place and appends new products", func(t *testing.T) {
		err := store.UpsertProducts(ctx, []models.Product{
			{ID: 7, Name: "Headphones", Category: "Electronics", Price: decimal.RequireFromString("99.90")},
			{ID: 2, Name: "T-Shirt", Category: "Clothing", Price: decimal.RequireFromString("19.99")},
			{ID: 8, Name: "Mug", Category: "Kitchen", Price: decimal.NewFromInt(8)},
		})
		if err != nil {
			t.Fatalf("UpsertProducts failed: %v", err)
		}

		products, err := store.ListProducts(ctx)
		if err != nil {
			t.Fatalf("ListProducts failed: %v", err)
		}

		want := []string{"Laptop", "T-Shirt", "The Great Gatsby", "Smartphone", "Jeans", "Sapiens", "Headphones", "Mug"}
		if got := names(products); !equalStrings(got, want) {
			t.Errorf("products = %v, want %v", got, want)
		}

		tshirt, err := store.GetProduct(ctx, 2)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if tshirt.Price.String() != "19.99" {
			t.Errorf("T-Shirt price = %s, want 19.99", tshirt.Price)
		}

		headphones, err := store.GetProduct(ctx, 7)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if !headphones.Price.Equal(decimal.RequireFromString("99.9")) {
			t.Errorf("Headphones price = %s, want 99.9", headphones.Price)
		}
	})
}

func TestNew_Reopen(t *testing.T) {
	store, dbPath := newTestStore(t)
	ctx := context.Background()

	if err := store.UpsertProducts(ctx, []models.Product{
		{ID: 20, Name: "Lamp", Category: "Home", Price: decimal.NewFromInt(30)},
	}); err != nil {
		t.Fatalf("UpsertProducts failed: %v", err)
	}
	store.Close()

	// Migrations are already applied; reopening must not fail or reseed
	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	products, err := reopened.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 7 {
		t.Errorf("Expected 7 products after reopen, got %d", len(products))
	}
}
