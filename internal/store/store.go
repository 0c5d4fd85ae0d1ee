// Package store defines the persistence boundary of the catalog.
//
// Two implementations exist: sqlite (production) and memory (tests,
// dependency-free fallback). Both guarantee that the bulk operations
// (ApplyAppChanges, Set*Order) are atomic with respect to readers: a
// concurrent listing observes either the fully-old or fully-new state,
// never a partial write.
package store

import (
	"context"

	"github.com/flarehq/flare/internal/domain"
)

// AppChanges is the mutation set produced by one reconciliation cycle.
// Updates carry the full record including its preserved ID and OrderID;
// Creates have no ID yet and are assigned one by the store.
type AppChanges struct {
	Creates []*domain.App
	Updates []*domain.App
}

// Empty reports whether applying the change set would be a no-op.
func (c AppChanges) Empty() bool {
	return len(c.Creates) == 0 && len(c.Updates) == 0
}

// Store owns the persisted Categories, Apps, Bookmarks and Settings.
//
// Create methods assign ID and timestamps and return the stored record.
// Lookup methods return domain.ErrNotFound for missing ids. Listing
// methods return records in unspecified order; callers rank them with
// domain.Rank.
type Store interface {
	// Categories. DeleteCategory re-homes the category's Apps or
	// Bookmarks to domain.DefaultCategoryID instead of deleting them.
	ListCategories(ctx context.Context, typ domain.CategoryType) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	// Apps.
	ListApps(ctx context.Context) ([]*domain.App, error)
	GetApp(ctx context.Context, id int64) (*domain.App, error)
	CreateApp(ctx context.Context, a *domain.App) (*domain.App, error)
	UpdateApp(ctx context.Context, a *domain.App) (*domain.App, error)
	DeleteApp(ctx context.Context, id int64) error

	// Bookmarks.
	ListBookmarks(ctx context.Context) ([]*domain.Bookmark, error)
	GetBookmark(ctx context.Context, id int64) (*domain.Bookmark, error)
	CreateBookmark(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error)
	UpdateBookmark(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error)
	DeleteBookmark(ctx context.Context, id int64) error

	// ApplyAppChanges applies one reconciliation's mutations in a
	// single transaction.
	ApplyAppChanges(ctx context.Context, ch AppChanges) error

	// Set*Order assigns OrderID = 1-based position for each listed id,
	// atomically. Every id must currently exist inside the scope (the
	// category's Apps/Bookmarks, or all Categories); a stale list
	// yields domain.ErrConflict and writes nothing. Unreferenced rows
	// are untouched; callers are expected to pass the complete scope.
	SetAppOrder(ctx context.Context, categoryID int64, ids []int64) error
	SetBookmarkOrder(ctx context.Context, categoryID int64, ids []int64) error
	SetCategoryOrder(ctx context.Context, ids []int64) error

	// Settings.
	GetSettings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, s domain.Settings) (domain.Settings, error)

	Close() error
}
