package catalog

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/flarehq/flare/internal/discovery"
	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/logger"
	"github.com/flarehq/flare/internal/store"
	"github.com/flarehq/flare/internal/store/rediscache"
)

// Service is the catalog surface exposed to the request layer and the
// discovery scheduler. Every listing it returns went through
// domain.Rank under the settings' active policy; handlers never sort.
type Service struct {
	store      store.Store
	cache      *rediscache.Cache // nil when the snapshot cache is disabled
	reconciler *Reconciler
	docker     discovery.Adapter // nil when not configured
	kubernetes discovery.Adapter // nil when not configured
	logger     logger.Logger

	// flight collapses concurrent reconciliation triggers (request
	// driven and timer driven) into one in-flight cycle.
	flight singleflight.Group
}

func NewService(
	st store.Store,
	cache *rediscache.Cache,
	docker, kubernetes discovery.Adapter,
	log logger.Logger,
) *Service {
	return &Service{
		store:      st,
		cache:      cache,
		reconciler: NewReconciler(st, log),
		docker:     docker,
		kubernetes: kubernetes,
		logger:     log,
	}
}

// Settings returns the current runtime settings.
func (s *Service) Settings(ctx context.Context) (domain.Settings, error) {
	return s.store.GetSettings(ctx)
}

// UpdateSettings persists new runtime settings and drops cached
// snapshots, since the active policy may have changed.
func (s *Service) UpdateSettings(ctx context.Context, set domain.Settings) (domain.Settings, error) {
	updated, err := s.store.UpdateSettings(ctx, set)
	if err != nil {
		return domain.Settings{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// ─────────────────────────────────────────────────────────────────
// Catalog reads
// ─────────────────────────────────────────────────────────────────

// GetApps is the catalog read: when a discovery source is enabled it
// runs a reconciliation cycle first, then returns the ranked snapshot.
// Adapter unavailability never fails the read; store failures do.
func (s *Service) GetApps(ctx context.Context) ([]*domain.App, error) {
	set, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if set.UseDockerDiscovery || set.UseKubernetesDiscovery {
		if err := s.refresh(ctx, set); err != nil {
			return nil, err
		}
		apps, err := s.store.ListApps(ctx)
		if err != nil {
			return nil, err
		}
		return domain.Rank(apps, set.UseOrdering), nil
	}

	// Plain ordered read; the snapshot cache only serves this path so
	// discovery-enabled reads always hit the live sources.
	if s.cache != nil {
		cached, err := s.cache.GetApps(ctx, set.UseOrdering)
		if err != nil {
			s.logger.Warn("apps cache read failed", logger.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	apps, err := s.store.ListApps(ctx)
	if err != nil {
		return nil, err
	}
	ranked := domain.Rank(apps, set.UseOrdering)

	if s.cache != nil {
		if err := s.cache.SetApps(ctx, set.UseOrdering, ranked); err != nil {
			s.logger.Warn("apps cache write failed", logger.Error(err))
		}
	}
	return ranked, nil
}

// RefreshCatalog runs one reconciliation cycle if any discovery source
// is enabled. Used by the periodic discovery scheduler.
func (s *Service) RefreshCatalog(ctx context.Context) error {
	set, err := s.store.GetSettings(ctx)
	if err != nil {
		return err
	}
	if !set.UseDockerDiscovery && !set.UseKubernetesDiscovery {
		return nil
	}
	return s.refresh(ctx, set)
}

func (s *Service) refresh(ctx context.Context, set domain.Settings) error {
	_, err, _ := s.flight.Do("reconcile", func() (interface{}, error) {
		return nil, s.reconciler.Reconcile(ctx, s.enabledAdapters(set), set.UnpinStoppedApps)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// enabledAdapters returns the configured, enabled adapters in
// deterministic application order: docker first, kubernetes second.
func (s *Service) enabledAdapters(set domain.Settings) []discovery.Adapter {
	var adapters []discovery.Adapter
	if set.UseDockerDiscovery && s.docker != nil {
		adapters = append(adapters, s.docker)
	}
	if set.UseKubernetesDiscovery && s.kubernetes != nil {
		adapters = append(adapters, s.kubernetes)
	}
	return adapters
}

// GetCategories returns ranked categories, optionally filtered by type.
func (s *Service) GetCategories(ctx context.Context, typ domain.CategoryType) ([]*domain.Category, error) {
	set, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.ListCategories(ctx, typ)
	if err != nil {
		return nil, err
	}
	return domain.Rank(categories, set.UseOrdering), nil
}

// GetBookmarks returns the ranked bookmark list.
func (s *Service) GetBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	set, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.store.ListBookmarks(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Rank(bookmarks, set.UseOrdering), nil
}

// ─────────────────────────────────────────────────────────────────
// Reorder
// ─────────────────────────────────────────────────────────────────

// ReorderApps persists a manual order for one category's apps. Fails
// with domain.ErrPolicyMismatch unless the active policy is orderId,
// and with domain.ErrConflict when the id list is stale.
func (s *Service) ReorderApps(ctx context.Context, categoryID int64, ids []int64) error {
	if err := s.requireManualOrdering(ctx); err != nil {
		return err
	}
	if err := s.store.SetAppOrder(ctx, categoryID, ids); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ReorderBookmarks is ReorderApps for one category's bookmarks.
func (s *Service) ReorderBookmarks(ctx context.Context, categoryID int64, ids []int64) error {
	if err := s.requireManualOrdering(ctx); err != nil {
		return err
	}
	if err := s.store.SetBookmarkOrder(ctx, categoryID, ids); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ReorderCategories persists the global category order.
func (s *Service) ReorderCategories(ctx context.Context, ids []int64) error {
	if err := s.requireManualOrdering(ctx); err != nil {
		return err
	}
	if err := s.store.SetCategoryOrder(ctx, ids); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) requireManualOrdering(ctx context.Context) error {
	set, err := s.store.GetSettings(ctx)
	if err != nil {
		return err
	}
	if set.UseOrdering != domain.OrderByManual {
		return domain.ErrPolicyMismatch
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────
// CRUD passthroughs
// ─────────────────────────────────────────────────────────────────

// CreateApp stores a user-created app, pinning it per settings and
// appending it at the end of its category's manual order.
func (s *Service) CreateApp(ctx context.Context, a *domain.App) (*domain.App, error) {
	set, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	a.IsPinned = set.PinAppsByDefault

	order, err := s.nextAppOrder(ctx, a.CategoryID)
	if err != nil {
		return nil, err
	}
	a.OrderID = order

	created, err := s.store.CreateApp(ctx, a)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) GetApp(ctx context.Context, id int64) (*domain.App, error) {
	return s.store.GetApp(ctx, id)
}

func (s *Service) UpdateApp(ctx context.Context, a *domain.App) (*domain.App, error) {
	updated, err := s.store.UpdateApp(ctx, a)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) DeleteApp(ctx context.Context, id int64) error {
	if err := s.store.DeleteApp(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) CreateBookmark(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	order, err := s.nextBookmarkOrder(ctx, b.CategoryID)
	if err != nil {
		return nil, err
	}
	b.OrderID = order

	created, err := s.store.CreateBookmark(ctx, b)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) GetBookmark(ctx context.Context, id int64) (*domain.Bookmark, error) {
	return s.store.GetBookmark(ctx, id)
}

func (s *Service) UpdateBookmark(ctx context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	updated, err := s.store.UpdateBookmark(ctx, b)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) DeleteBookmark(ctx context.Context, id int64) error {
	if err := s.store.DeleteBookmark(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	set, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	c.IsPinned = set.PinCategoriesByDefault

	categories, err := s.store.ListCategories(ctx, "")
	if err != nil {
		return nil, err
	}
	c.OrderID = maxCategoryOrder(categories) + 1

	created, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.store.GetCategory(ctx, id)
}

func (s *Service) UpdateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	updated, err := s.store.UpdateCategory(ctx, c)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("apps cache invalidation failed", logger.Error(err))
	}
}

func (s *Service) nextAppOrder(ctx context.Context, categoryID int64) (int, error) {
	apps, err := s.store.ListApps(ctx)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, a := range apps {
		if a.CategoryID == categoryID && a.OrderID > max {
			max = a.OrderID
		}
	}
	return max + 1, nil
}

func (s *Service) nextBookmarkOrder(ctx context.Context, categoryID int64) (int, error) {
	bookmarks, err := s.store.ListBookmarks(ctx)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, b := range bookmarks {
		if b.CategoryID == categoryID && b.OrderID > max {
			max = b.OrderID
		}
	}
	return max + 1, nil
}

func maxCategoryOrder(categories []*domain.Category) int {
	max := 0
	for _, c := range categories {
		if c.OrderID > max {
			max = c.OrderID
		}
	}
	return max
}
