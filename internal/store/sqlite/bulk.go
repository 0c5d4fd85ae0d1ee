package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/store"
)

// ApplyAppChanges writes one reconciliation cycle's mutations in a
// single transaction. Either the whole change set lands or none of it
// does.
func (s *Store) ApplyAppChanges(ctx context.Context, ch store.AppChanges) error {
	if ch.Empty() {
		return nil
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, u := range ch.Updates {
			if err := updateApp(ctx, tx, u); err != nil {
				return err
			}
		}
		for _, c := range ch.Creates {
			if _, err := insertApp(ctx, tx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetAppOrder assigns order_id = 1-based position for each id, scoped
// to one category. A referenced id missing from the scope means the
// caller raced a concurrent mutation; nothing is written and
// domain.ErrConflict is returned.
func (s *Store) SetAppOrder(ctx context.Context, categoryID int64, ids []int64) error {
	return s.setOrder(ctx, "apps", &categoryID, ids)
}

// SetBookmarkOrder is SetAppOrder for bookmarks.
func (s *Store) SetBookmarkOrder(ctx context.Context, categoryID int64, ids []int64) error {
	return s.setOrder(ctx, "bookmarks", &categoryID, ids)
}

// SetCategoryOrder assigns the global category order.
func (s *Store) SetCategoryOrder(ctx context.Context, ids []int64) error {
	return s.setOrder(ctx, "categories", nil, ids)
}

func (s *Store) setOrder(ctx context.Context, table string, categoryID *int64, ids []int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now()
		for pos, id := range ids {
			query := "UPDATE " + table + " SET order_id = ?, updated_at = ? WHERE id = ?"
			args := []any{pos + 1, now, id}
			if categoryID != nil {
				query += " AND category_id = ?"
				args = append(args, *categoryID)
			}

			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("assigning order for %s %d: %w", table, id, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				// Row vanished or moved scope since the caller read it.
				return domain.ErrConflict
			}
		}
		return nil
	})
}
