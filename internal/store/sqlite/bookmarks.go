package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flarehq/flare/internal/domain"
)

const bookmarkColumns = "id, name, url, icon, category_id, is_pinned, order_id, created_at, updated_at"

func scanBookmark(row interface{ Scan(...any) error }) (*domain.Bookmark, error) {
	var b domain.Bookmark
	err := row.Scan(&b.ID, &b.Name, &b.URL, &b.Icon, &b.CategoryID,
		&b.IsPinned, &b.OrderID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) ListBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+bookmarkColumns+" FROM bookmarks")
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	var out []*domain.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) GetBookmark(ctx context.Context, id int64) (*domain.Bookmark, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bookmarkColumns+" FROM bookmarks WHERE id = ?", id)

	b, err := scanBookmark(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting bookmark %d: %w", id, err)
	}
	return b, nil
}

func (s *Store) CreateBookmark(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO bookmarks (name, url, icon, category_id, is_pinned, order_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Name, b.URL, b.Icon, b.CategoryID, b.IsPinned, b.OrderID, now, now)
	if err != nil {
		return nil, fmt.Errorf("creating bookmark: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading bookmark id: %w", err)
	}
	return s.GetBookmark(ctx, id)
}

func (s *Store) UpdateBookmark(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bookmarks
		 SET name = ?, url = ?, icon = ?, category_id = ?, is_pinned = ?, order_id = ?, updated_at = ?
		 WHERE id = ?`,
		b.Name, b.URL, b.Icon, b.CategoryID, b.IsPinned, b.OrderID, time.Now(), b.ID)
	if err != nil {
		return nil, fmt.Errorf("updating bookmark %d: %w", b.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return s.GetBookmark(ctx, b.ID)
}

func (s *Store) DeleteBookmark(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting bookmark %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
