package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/store"
)

func TestSeedsDefaultCategory(t *testing.T) {
	s := New()
	c, err := s.GetCategory(context.Background(), domain.DefaultCategoryID)
	if err != nil {
		t.Fatalf("GetCategory(default) error: %v", err)
	}
	if c.Type != domain.CategoryApps {
		t.Errorf("default category type = %q, want %q", c.Type, domain.CategoryApps)
	}
}

func TestGetAppNotFound(t *testing.T) {
	s := New()
	if _, err := s.GetApp(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetApp(42) error = %v, want ErrNotFound", err)
	}
}

func TestCreateAppAssignsIDAndTimestamps(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateApp(ctx, &domain.App{Name: "a", URL: "http://a", CategoryID: domain.DefaultCategoryID})
	if err != nil {
		t.Fatalf("CreateApp error: %v", err)
	}
	if created.ID == 0 {
		t.Error("CreateApp did not assign an id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("CreateApp did not assign timestamps")
	}
}

func TestUpdateAppPreservesCreatedAt(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateApp(ctx, &domain.App{Name: "a", URL: "http://a", CategoryID: domain.DefaultCategoryID})
	if err != nil {
		t.Fatalf("CreateApp error: %v", err)
	}

	created.URL = "http://b"
	updated, err := s.UpdateApp(ctx, created)
	if err != nil {
		t.Fatalf("UpdateApp error: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("UpdateApp changed createdAt: %v != %v", updated.CreatedAt, created.CreatedAt)
	}
	if updated.URL != "http://b" {
		t.Errorf("UpdateApp url = %q, want %q", updated.URL, "http://b")
	}
}

func TestListAppsReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateApp(ctx, &domain.App{Name: "a", URL: "http://a", CategoryID: domain.DefaultCategoryID}); err != nil {
		t.Fatalf("CreateApp error: %v", err)
	}

	apps, _ := s.ListApps(ctx)
	apps[0].Name = "mutated"

	again, _ := s.ListApps(ctx)
	if again[0].Name != "a" {
		t.Error("ListApps exposed internal state to callers")
	}
}

func TestDeleteCategoryRehomesChildren(t *testing.T) {
	s := New()
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

func TestSetAppOrderConflictLeavesStateUntouched(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, _ := s.CreateApp(ctx, &domain.App{Name: "a", URL: "http://a", CategoryID: domain.DefaultCategoryID, OrderID: 1})
	b, _ := s.CreateApp(ctx, &domain.App{Name: "b", URL: "http://b", CategoryID: domain.DefaultCategoryID, OrderID: 2})

	err := s.SetAppOrder(ctx, domain.DefaultCategoryID, []int64{b.ID, a.ID, 999})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("SetAppOrder error = %v, want ErrConflict", err)
	}

	got, _ := s.GetApp(ctx, a.ID)
	if got.OrderID != 1 {
		t.Errorf("conflicting SetAppOrder wrote orderId = %d, want 1", got.OrderID)
	}
}

func TestSetAppOrderRejectsWrongCategory(t *testing.T) {
	s := New()
	ctx := context.Background()

	cat, _ := s.CreateCategory(ctx, &domain.Category{Name: "Media", Type: domain.CategoryApps})
	a, _ := s.CreateApp(ctx, &domain.App{Name: "a", URL: "http://a", CategoryID: cat.ID})

	err := s.SetAppOrder(ctx, domain.DefaultCategoryID, []int64{a.ID})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("SetAppOrder across categories error = %v, want ErrConflict", err)
	}
}

func TestApplyAppChangesAtomicity(t *testing.T) {
	s := New()
	ctx := context.Background()

	existing, _ := s.CreateApp(ctx, &domain.App{Name: "a", URL: "http://a", CategoryID: domain.DefaultCategoryID})

	bogus := *existing
	bogus.ID = 999
	err := s.ApplyAppChanges(ctx, store.AppChanges{
		Creates: []*domain.App{{Name: "new", URL: "http://new", CategoryID: domain.DefaultCategoryID}},
		Updates: []*domain.App{&bogus},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("ApplyAppChanges error = %v, want ErrNotFound", err)
	}

	apps, _ := s.ListApps(ctx)
	if len(apps) != 1 {
		t.Errorf("failed ApplyAppChanges still created apps: %d apps", len(apps))
	}
}

func TestSetCategoryOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, _ := s.CreateCategory(ctx, &domain.Category{Name: "A", Type: domain.CategoryApps})
	b, _ := s.CreateCategory(ctx, &domain.Category{Name: "B", Type: domain.CategoryBookmarks})

	if err := s.SetCategoryOrder(ctx, []int64{b.ID, a.ID, domain.DefaultCategoryID}); err != nil {
		t.Fatalf("SetCategoryOrder error: %v", err)
	}

	got, _ := s.GetCategory(ctx, b.ID)
	if got.OrderID != 1 {
		t.Errorf("category B orderId = %d, want 1", got.OrderID)
	}
	got, _ = s.GetCategory(ctx, domain.DefaultCategoryID)
	if got.OrderID != 3 {
		t.Errorf("default category orderId = %d, want 3", got.OrderID)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	set, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings error: %v", err)
	}
	if set.UseOrdering != domain.OrderByCreated {
		t.Errorf("default policy = %q, want %q", set.UseOrdering, domain.OrderByCreated)
	}

	set.UseOrdering = domain.OrderByManual
	set.UseDockerDiscovery = true
	updated, err := s.UpdateSettings(ctx, set)
	if err != nil {
		t.Fatalf("UpdateSettings error: %v", err)
	}
	if updated.UseOrdering != domain.OrderByManual || !updated.UseDockerDiscovery {
		t.Errorf("UpdateSettings did not persist: %+v", updated)
	}
}
