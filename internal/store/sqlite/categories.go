package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flarehq/flare/internal/domain"
)

const categoryColumns = "id, name, type, is_pinned, order_id, created_at, updated_at"

func scanCategory(row interface{ Scan(...any) error }) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Type, &c.IsPinned, &c.OrderID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context, typ domain.CategoryType) ([]*domain.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories"
	args := []any{}
	if typ != "" {
		query += " WHERE type = ?"
		args = append(args, string(typ))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)

	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting category %d: %w", id, err)
	}
	return c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, type, is_pinned, order_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, string(c.Type), c.IsPinned, c.OrderID, now, now)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading category id: %w", err)
	}
	return s.GetCategory(ctx, id)
}

func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories
		 SET name = ?, type = ?, is_pinned = ?, order_id = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, string(c.Type), c.IsPinned, c.OrderID, time.Now(), c.ID)
	if err != nil {
		return nil, fmt.Errorf("updating category %d: %w", c.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return s.GetCategory(ctx, c.ID)
}

// DeleteCategory removes the category and re-homes its Apps/Bookmarks
// to the reserved default category. The default category itself cannot
// be deleted.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	if id == domain.DefaultCategoryID {
		return fmt.Errorf("the default category cannot be deleted")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now()
		if _, err := tx.ExecContext(ctx,
			"UPDATE apps SET category_id = ?, updated_at = ? WHERE category_id = ?",
			domain.DefaultCategoryID, now, id); err != nil {
			return fmt.Errorf("re-homing apps: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE bookmarks SET category_id = ?, updated_at = ? WHERE category_id = ?",
			domain.DefaultCategoryID, now, id); err != nil {
			return fmt.Errorf("re-homing bookmarks: %w", err)
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting category %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
