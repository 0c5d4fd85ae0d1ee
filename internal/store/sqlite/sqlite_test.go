package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "flare_test.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	})
	return s
}

func TestMigrationSeedsDefaultCategory(t *testing.T) {
	s := newTestStore(t)
	c, err := s.GetCategory(context.Background(), domain.DefaultCategoryID)
	if err != nil {
		t.Fatalf("GetCategory(default) error: %v", err)
	}
	if c.Type != domain.CategoryApps {
		t.Errorf("default category type = %q, want %q", c.Type, domain.CategoryApps)
	}
}

func TestMigrationSeedsDefaultSettings(t *testing.T) {
	s := newTestStore(t)
	set, err := s.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings error: %v", err)
	}
	if set.UseOrdering != domain.OrderByCreated {
		t.Errorf("seeded policy = %q, want %q", set.UseOrdering, domain.OrderByCreated)
	}
	if set.UseDockerDiscovery || set.UseKubernetesDiscovery {
		t.Error("discovery flags should be off by default")
	}
}

func TestAppCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateApp(ctx, &domain.App{
		Name: "Grafana", URL: "http://grafana:3000", Icon: "docker",
		CategoryID: domain.DefaultCategoryID, IsPinned: true, OrderID: 1,
	})
	if err != nil {
		t.Fatalf("CreateApp error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreateApp did not assign an id")
	}

	got, err := s.GetApp(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetApp error: %v", err)
	}
	if got.Name != "Grafana" || got.URL != "http://grafana:3000" || !got.IsPinned {
		t.Errorf("GetApp = %+v", got)
	}

	got.URL = "http://grafana:3001"
	updated, err := s.UpdateApp(ctx, got)
	if err != nil {
		t.Fatalf("UpdateApp error: %v", err)
	}
	if updated.URL != "http://grafana:3001" {
		t.Errorf("UpdateApp url = %q", updated.URL)
	}

	if err := s.DeleteApp(ctx, created.ID); err != nil {
		t.Fatalf("DeleteApp error: %v", err)
	}
	if _, err := s.GetApp(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetApp after delete error = %v, want ErrNotFound", err)
	}
}

func TestDeleteCategoryRehomesApps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat, err := s.CreateCategory(ctx, &domain.Category{Name: "Media", Type: domain.CategoryApps})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	app, err := s.CreateApp(ctx, &domain.App{Name: "a", URL: "http://a", CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("CreateApp error: %v", err)
	}

	if err := s.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteCategory error: %v", err)
	}

	got, err := s.GetApp(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetApp error: %v", err)
	}
	if got.CategoryID != domain.DefaultCategoryID {
		t.Errorf("app categoryId = %d, want %d", got.CategoryID, domain.DefaultCategoryID)
	}
}

func TestDeleteDefaultCategoryRefused(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteCategory(context.Background(), domain.DefaultCategoryID); err == nil {
		t.Error("DeleteCategory(default) should fail")
	}
}

func TestListCategoriesFiltersByType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateCategory(ctx, &domain.Category{Name: "Reading", Type: domain.CategoryBookmarks}); err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	bookmarks, err := s.ListCategories(ctx, domain.CategoryBookmarks)
	if err != nil {
		t.Fatalf("ListCategories error: %v", err)
	}
	if len(bookmarks) != 1 || bookmarks[0].Name != "Reading" {
		t.Errorf("ListCategories(bookmarks) = %+v", bookmarks)
	}

	all, err := s.ListCategories(ctx, "")
	if err != nil {
		t.Fatalf("ListCategories error: %v", err)
	}
	if len(all) != 2 { // seeded default + Reading
		t.Errorf("ListCategories(all) returned %d categories, want 2", len(all))
	}
}

func TestApplyAppChanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	existing, err := s.CreateApp(ctx, &domain.App{
		Name: "Grafana", URL: "http://old:3000", CategoryID: domain.DefaultCategoryID, OrderID: 1,
	})
	if err != nil {
		t.Fatalf("CreateApp error: %v", err)
	}

	existing.URL = "http://grafana:3000"
	existing.IsPinned = true
	err = s.ApplyAppChanges(ctx, store.AppChanges{
		Updates: []*domain.App{existing},
		Creates: []*domain.App{{
			Name: "Jellyfin", URL: "http://jellyfin:8096", Icon: "docker",
			CategoryID: domain.DefaultCategoryID, IsPinned: true, OrderID: 2,
		}},
	})
	if err != nil {
		t.Fatalf("ApplyAppChanges error: %v", err)
	}

	apps, err := s.ListApps(ctx)
	if err != nil {
		t.Fatalf("ListApps error: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("ListApps returned %d apps, want 2", len(apps))
	}
	got, _ := s.GetApp(ctx, existing.ID)
	if got.URL != "http://grafana:3000" || !got.IsPinned {
		t.Errorf("updated app = %+v", got)
	}
}

func TestSetAppOrderScopedToCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat, _ := s.CreateCategory(ctx, &domain.Category{Name: "Media", Type: domain.CategoryApps})
	a, _ := s.CreateApp(ctx, &domain.App{Name: "a", URL: "http://a", CategoryID: domain.DefaultCategoryID, OrderID: 1})
	b, _ := s.CreateApp(ctx, &domain.App{Name: "b", URL: "http://b", CategoryID: domain.DefaultCategoryID, OrderID: 2})
	other, _ := s.CreateApp(ctx, &domain.App{Name: "c", URL: "http://c", CategoryID: cat.ID, OrderID: 5})

	if err := s.SetAppOrder(ctx, domain.DefaultCategoryID, []int64{b.ID, a.ID}); err != nil {
		t.Fatalf("SetAppOrder error: %v", err)
	}

	got, _ := s.GetApp(ctx, b.ID)
	if got.OrderID != 1 {
		t.Errorf("app b orderId = %d, want 1", got.OrderID)
	}
	got, _ = s.GetApp(ctx, a.ID)
	if got.OrderID != 2 {
		t.Errorf("app a orderId = %d, want 2", got.OrderID)
	}
	got, _ = s.GetApp(ctx, other.ID)
	if got.OrderID != 5 {
		t.Errorf("out-of-scope app orderId = %d, want 5", got.OrderID)
	}
}

func TestSetAppOrderConflictRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.CreateApp(ctx, &domain.App{Name: "a", URL: "http://a", CategoryID: domain.DefaultCategoryID, OrderID: 1})

	err := s.SetAppOrder(ctx, domain.DefaultCategoryID, []int64{a.ID, 999})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("SetAppOrder error = %v, want ErrConflict", err)
	}

	got, _ := s.GetApp(ctx, a.ID)
	if got.OrderID != 1 {
		t.Errorf("conflicting SetAppOrder wrote orderId = %d, want 1", got.OrderID)
	}
}

func TestBookmarkCRUDAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat, _ := s.CreateCategory(ctx, &domain.Category{Name: "Reading", Type: domain.CategoryBookmarks})
	a, err := s.CreateBookmark(ctx, &domain.Bookmark{Name: "a", URL: "http://a", CategoryID: cat.ID, OrderID: 1})
	if err != nil {
		t.Fatalf("CreateBookmark error: %v", err)
	}
	b, _ := s.CreateBookmark(ctx, &domain.Bookmark{Name: "b", URL: "http://b", CategoryID: cat.ID, OrderID: 2})

	if err := s.SetBookmarkOrder(ctx, cat.ID, []int64{b.ID, a.ID}); err != nil {
		t.Fatalf("SetBookmarkOrder error: %v", err)
	}
	got, _ := s.GetBookmark(ctx, b.ID)
	if got.OrderID != 1 {
		t.Errorf("bookmark b orderId = %d, want 1", got.OrderID)
	}

	if err := s.DeleteBookmark(ctx, a.ID); err != nil {
		t.Fatalf("DeleteBookmark error: %v", err)
	}
	if _, err := s.GetBookmark(ctx, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetBookmark after delete error = %v, want ErrNotFound", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	set, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings error: %v", err)
	}
	set.UseOrdering = domain.OrderByManual
	set.UnpinStoppedApps = true

	updated, err := s.UpdateSettings(ctx, set)
	if err != nil {
		t.Fatalf("UpdateSettings error: %v", err)
	}
	if updated.UseOrdering != domain.OrderByManual || !updated.UnpinStoppedApps {
		t.Errorf("UpdateSettings = %+v", updated)
	}

	// Survives a fresh read.
	again, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings error: %v", err)
	}
	if again.UseOrdering != domain.OrderByManual {
		t.Errorf("persisted policy = %q, want %q", again.UseOrdering, domain.OrderByManual)
	}
}

func TestUpdateSettingsRejectsUnknownPolicy(t *testing.T) {
	s := newTestStore(t)
	set := domain.DefaultSettings()
	set.UseOrdering = "alphabetical"
	if _, err := s.UpdateSettings(context.Background(), set); err == nil {
		t.Error("UpdateSettings should reject an unknown policy")
	}
}
