package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flarehq/flare/internal/domain"
)

const appColumns = "id, name, url, icon, category_id, is_pinned, order_id, created_at, updated_at"

func scanApp(row interface{ Scan(...any) error }) (*domain.App, error) {
	var a domain.App
	err := row.Scan(&a.ID, &a.Name, &a.URL, &a.Icon, &a.CategoryID,
		&a.IsPinned, &a.OrderID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) ListApps(ctx context.Context) ([]*domain.App, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+appColumns+" FROM apps")
	if err != nil {
		return nil, fmt.Errorf("listing apps: %w", err)
	}
	defer rows.Close()

	var out []*domain.App
	for rows.Next() {
		a, err := scanApp(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning app: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetApp(ctx context.Context, id int64) (*domain.App, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+appColumns+" FROM apps WHERE id = ?", id)

	a, err := scanApp(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting app %d: %w", id, err)
	}
	return a, nil
}

func (s *Store) CreateApp(ctx context.Context, a *domain.App) (*domain.App, error) {
	id, err := insertApp(ctx, s.db, a)
	if err != nil {
		return nil, err
	}
	return s.GetApp(ctx, id)
}

// execer covers both *sql.DB and *sql.Tx so inserts and updates can be
// shared with the transactional bulk path.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertApp(ctx context.Context, db execer, a *domain.App) (int64, error) {
	now := time.Now()
	res, err := db.ExecContext(ctx,
		`INSERT INTO apps (name, url, icon, category_id, is_pinned, order_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.URL, a.Icon, a.CategoryID, a.IsPinned, a.OrderID, now, now)
	if err != nil {
		return 0, fmt.Errorf("creating app: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading app id: %w", err)
	}
	return id, nil
}

func updateApp(ctx context.Context, db execer, a *domain.App) error {
	res, err := db.ExecContext(ctx,
		`UPDATE apps
		 SET name = ?, url = ?, icon = ?, category_id = ?, is_pinned = ?, order_id = ?, updated_at = ?
		 WHERE id = ?`,
		a.Name, a.URL, a.Icon, a.CategoryID, a.IsPinned, a.OrderID, time.Now(), a.ID)
	if err != nil {
		return fmt.Errorf("updating app %d: %w", a.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateApp(ctx context.Context, a *domain.App) (*domain.App, error) {
	if err := updateApp(ctx, s.db, a); err != nil {
		return nil, err
	}
	return s.GetApp(ctx, a.ID)
}

func (s *Store) DeleteApp(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM apps WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting app %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
