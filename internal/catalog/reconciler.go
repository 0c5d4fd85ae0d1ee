// Package catalog implements the reconciliation and ordering engine:
// discovered services are merged into the persisted app catalog without
// losing user customizations, and every collection is ranked under the
// globally selected ordering policy.
package catalog

import (
	"context"
	"strings"

	"github.com/flarehq/flare/internal/discovery"
	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/logger"
	"github.com/flarehq/flare/internal/store"
)

// Reconciler merges discovery adapter output into the catalog. One
// cycle is idempotent: re-running it against an unchanged discovery
// result produces no further mutations.
type Reconciler struct {
	store  store.Store
	logger logger.Logger
}

func NewReconciler(st store.Store, log logger.Logger) *Reconciler {
	return &Reconciler{store: st, logger: log}
}

// Reconcile runs the given adapters and applies the resulting catalog
// mutations in one transaction. Adapter failures are isolated: an
// unavailable source contributes nothing this cycle and does not
// suppress the others. Only store failures are returned.
func (r *Reconciler) Reconcile(ctx context.Context, adapters []discovery.Adapter, unpinStopped bool) error {
	if len(adapters) == 0 {
		return nil
	}

	// Adapters are applied in the order given (docker before
	// kubernetes); on name collisions the later source wins.
	var discovered []domain.DiscoveredService
	succeeded := 0
	for _, a := range adapters {
		svcs, err := a.Discover(ctx)
		if err != nil {
			r.logger.Error("discovery failed, proceeding without this source",
				logger.String("adapter", a.Name()),
				logger.Error(err))
			continue
		}
		succeeded++
		discovered = append(discovered, svcs...)
		r.logger.Info("discovered services",
			logger.String("adapter", a.Name()),
			logger.Int("count", len(svcs)))
	}
	if succeeded == 0 {
		// Nothing usable this cycle; the catalog read proceeds as a
		// plain ordered read.
		return nil
	}

	apps, err := r.store.ListApps(ctx)
	if err != nil {
		return err
	}
	categories, err := r.store.ListCategories(ctx, domain.CategoryApps)
	if err != nil {
		return err
	}

	changes := r.buildChanges(apps, categories, discovered, unpinStopped)
	if changes.Empty() {
		return nil
	}

	r.logger.Info("applying reconciliation changes",
		logger.Int("creates", len(changes.Creates)),
		logger.Int("updates", len(changes.Updates)))
	return r.store.ApplyAppChanges(ctx, changes)
}

// buildChanges is the pure diff step: current catalog in, mutation set
// out. No store access, no side effects beyond logging.
func (r *Reconciler) buildChanges(
	apps []*domain.App,
	categories []*domain.Category,
	discovered []domain.DiscoveredService,
	unpinStopped bool,
) store.AppChanges {
	// Collapse duplicate names: last writer wins, position of first
	// appearance kept so the result is deterministic.
	byName := make(map[string]int, len(discovered))
	services := make([]domain.DiscoveredService, 0, len(discovered))
	for _, svc := range discovered {
		if i, ok := byName[svc.Name]; ok {
			services[i] = svc
			continue
		}
		byName[svc.Name] = len(services)
		services = append(services, svc)
	}

	// Working copies keyed by id so the unpin pass and the merge pass
	// compose into a single update per app.
	working := make(map[int64]*domain.App, len(apps))
	dirty := make(map[int64]bool)
	for _, a := range apps {
		cp := *a
		working[a.ID] = &cp
	}

	// Name matching for unpin is case-sensitive exact match.
	if unpinStopped {
		for _, a := range working {
			if a.IsPinned {
				if _, seen := byName[a.Name]; !seen {
					a.IsPinned = false
					dirty[a.ID] = true
				}
			}
		}
	}

	// Existing app per name; with rename-produced duplicates the
	// lowest id wins, matching first-found semantics deterministically.
	appByName := make(map[string]*domain.App, len(apps))
	for _, a := range working {
		if prev, ok := appByName[a.Name]; !ok || a.ID < prev.ID {
			appByName[a.Name] = a
		}
	}

	// Per-category order bookkeeping for created apps.
	maxOrder := make(map[int64]int)
	usedOrder := make(map[int64]map[int]bool)
	for _, a := range apps {
		if a.OrderID > maxOrder[a.CategoryID] {
			maxOrder[a.CategoryID] = a.OrderID
		}
		if usedOrder[a.CategoryID] == nil {
			usedOrder[a.CategoryID] = make(map[int]bool)
		}
		usedOrder[a.CategoryID][a.OrderID] = true
	}

	var changes store.AppChanges
	for _, svc := range services {
		categoryID := resolveCategory(svc.RequestedCategory, categories)

		if existing, ok := appByName[svc.Name]; ok {
			// Update in place: id and orderId are preserved, pin is
			// forced. Only emit a mutation when something changed so
			// reconciliation stays idempotent.
			if existing.URL != svc.URL || existing.Icon != svc.Icon ||
				existing.CategoryID != categoryID || !existing.IsPinned {
				existing.URL = svc.URL
				existing.Icon = svc.Icon
				existing.CategoryID = categoryID
				existing.IsPinned = true
				dirty[existing.ID] = true
			}
			continue
		}

		order := svc.OrderHint
		if order <= 0 || usedOrder[categoryID][order] {
			// Hint absent or taken: append after the scope's maximum.
			order = maxOrder[categoryID] + 1
		}
		if order > maxOrder[categoryID] {
			maxOrder[categoryID] = order
		}
		if usedOrder[categoryID] == nil {
			usedOrder[categoryID] = make(map[int]bool)
		}
		usedOrder[categoryID][order] = true

		changes.Creates = append(changes.Creates, &domain.App{
			Name:       svc.Name,
			URL:        svc.URL,
			Icon:       svc.Icon,
			CategoryID: categoryID,
			IsPinned:   true,
			OrderID:    order,
		})
	}

	// Emit updates in catalog order so the change set is deterministic.
	for _, a := range apps {
		if dirty[a.ID] {
			changes.Updates = append(changes.Updates, working[a.ID])
		}
	}
	return changes
}

// resolveCategory matches the requested name case-insensitively
// against the apps categories, falling back to the reserved default
// category when no category was requested or the requested one no
// longer exists.
func resolveCategory(requested string, categories []*domain.Category) int64 {
	if requested == "" {
		return domain.DefaultCategoryID
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, requested) {
			return c.ID
		}
	}
	return domain.DefaultCategoryID
}
