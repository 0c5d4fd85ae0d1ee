// Package memory provides a mutex-guarded in-memory Store. It backs
// tests and mirrors the sqlite implementation's semantics: id
// assignment, order scoping, conflict detection, the seeded default
// category.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/store"
)

type Store struct {
	mu sync.RWMutex

	categories map[int64]*domain.Category
	apps       map[int64]*domain.App
	bookmarks  map[int64]*domain.Bookmark
	settings   domain.Settings

	nextCategoryID int64
	nextAppID      int64
	nextBookmarkID int64
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	s := &Store{
		categories:     make(map[int64]*domain.Category),
		apps:           make(map[int64]*domain.App),
		bookmarks:      make(map[int64]*domain.Bookmark),
		settings:       domain.DefaultSettings(),
		nextCategoryID: 1,
		nextAppID:      1,
		nextBookmarkID: 1,
	}

	// Same reserved row the sqlite migration seeds.
	now := time.Now()
	s.categories[domain.DefaultCategoryID] = &domain.Category{
		ID:        domain.DefaultCategoryID,
		Name:      "Discovered",
		Type:      domain.CategoryApps,
		IsPinned:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s
}

// ─────────────────────────────────────────────────────────────────
// Categories
// ─────────────────────────────────────────────────────────────────

func (s *Store) ListCategories(_ context.Context, typ domain.CategoryType) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if typ == "" || c.Type == typ {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) CreateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cp := *c
	cp.ID = s.nextCategoryID
	s.nextCategoryID++
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.categories[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *Store) UpdateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[c.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	s.categories[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.categories, id)

	// Children survive a category delete; they move to the default
	// category instead.
	for _, a := range s.apps {
		if a.CategoryID == id {
			a.CategoryID = domain.DefaultCategoryID
			a.UpdatedAt = time.Now()
		}
	}
	for _, b := range s.bookmarks {
		if b.CategoryID == id {
			b.CategoryID = domain.DefaultCategoryID
			b.UpdatedAt = time.Now()
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Apps
// ─────────────────────────────────────────────────────────────────

func (s *Store) ListApps(_ context.Context) ([]*domain.App, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.App, 0, len(s.apps))
	for _, a := range s.apps {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) GetApp(_ context.Context, id int64) (*domain.App, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *Store) CreateApp(_ context.Context, a *domain.App) (*domain.App, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAppLocked(a), nil
}

func (s *Store) createAppLocked(a *domain.App) *domain.App {
	now := time.Now()
	cp := *a
	cp.ID = s.nextAppID
	s.nextAppID++
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.apps[cp.ID] = &cp

	out := cp
	return &out
}

func (s *Store) UpdateApp(_ context.Context, a *domain.App) (*domain.App, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.updateAppLocked(a)
	if err != nil {
		return nil, err
	}
	out := *updated
	return &out, nil
}

func (s *Store) updateAppLocked(a *domain.App) (*domain.App, error) {
	existing, ok := s.apps[a.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	s.apps[cp.ID] = &cp
	return &cp, nil
}

func (s *Store) DeleteApp(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apps[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.apps, id)
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Bookmarks
// ─────────────────────────────────────────────────────────────────

func (s *Store) ListBookmarks(_ context.Context) ([]*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) GetBookmark(_ context.Context, id int64) (*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookmarks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) CreateBookmark(_ context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cp := *b
	cp.ID = s.nextBookmarkID
	s.nextBookmarkID++
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.bookmarks[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *Store) UpdateBookmark(_ context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.bookmarks[b.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	s.bookmarks[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *Store) DeleteBookmark(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookmarks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.bookmarks, id)
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Bulk operations
// ─────────────────────────────────────────────────────────────────

func (s *Store) ApplyAppChanges(_ context.Context, ch store.AppChanges) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate updates first so the whole change set applies or none
	// of it does.
	for _, u := range ch.Updates {
		if _, ok := s.apps[u.ID]; !ok {
			return domain.ErrNotFound
		}
	}
	for _, u := range ch.Updates {
		if _, err := s.updateAppLocked(u); err != nil {
			return err
		}
	}
	for _, c := range ch.Creates {
		s.createAppLocked(c)
	}
	return nil
}

func (s *Store) SetAppOrder(_ context.Context, categoryID int64, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		a, ok := s.apps[id]
		if !ok || a.CategoryID != categoryID {
			return domain.ErrConflict
		}
	}
	now := time.Now()
	for i, id := range ids {
		s.apps[id].OrderID = i + 1
		s.apps[id].UpdatedAt = now
	}
	return nil
}

func (s *Store) SetBookmarkOrder(_ context.Context, categoryID int64, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		b, ok := s.bookmarks[id]
		if !ok || b.CategoryID != categoryID {
			return domain.ErrConflict
		}
	}
	now := time.Now()
	for i, id := range ids {
		s.bookmarks[id].OrderID = i + 1
		s.bookmarks[id].UpdatedAt = now
	}
	return nil
}

func (s *Store) SetCategoryOrder(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if _, ok := s.categories[id]; !ok {
			return domain.ErrConflict
		}
	}
	now := time.Now()
	for i, id := range ids {
		s.categories[id].OrderID = i + 1
		s.categories[id].UpdatedAt = now
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Settings
// ─────────────────────────────────────────────────────────────────

func (s *Store) GetSettings(_ context.Context) (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *Store) UpdateSettings(_ context.Context, set domain.Settings) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = set
	return s.settings, nil
}

func (s *Store) Close() error { return nil }
