package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/storefront/internal/models"
	"github.com/mmynk/storefront/internal/storage"
)

// ListProducts returns all products ordered by catalog position.
func (s *SQLiteStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category, price FROM products ORDER BY position, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a product by ID.
func (s *SQLiteStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, category, price FROM products WHERE id = ?",
		id,
	)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", storage.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertProducts inserts new products at the end of the catalog and replaces
// the name, category and price of existing ones in place.
func (s *SQLiteStore) UpsertProducts(ctx context.Context, products []models.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range products {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (id, name, category, price, position)
			VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM products))
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				category = excluded.category,
				price = excluded.price
		`,
			p.ID, p.Name, p.Category, p.Price.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*models.Product, error) {
	var (
		p     models.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	amount, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("product %d has invalid price %q: %w", p.ID, price, err)
	}
	p.Price = amount
	return &p, nil
}
