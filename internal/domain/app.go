package domain

import "time"

// App represents a single catalog entry pointing at a web application.
//
// It is NOT tied to Docker, Kubernetes or any other discovery source.
// All inputs (user edits, container labels, ingress annotations) are
// merged into this structure.
//
// An App is correlated across discovery cycles by its Name: containers
// and ingresses are ephemeral and come back with fresh internal
// identifiers after every restart, so the display name is the only
// practical correlation key. Renaming a discovered service therefore
// produces a new App rather than a rename of the old one.
type App struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Name is the display name and the correlation key for discovery.
	Name string `json:"name"`

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	// URL is the target of the catalog tile.
	URL string `json:"url"`

	// Icon is an MDI icon name or an uploaded filename.
	Icon string `json:"icon"`

	// CategoryID references a Category of type "apps", or
	// DefaultCategoryID for discovered items pending classification.
	CategoryID int64 `json:"categoryId"`

	// IsPinned marks the App for the home view. Discovery forces it
	// to true for every service seen in the current cycle.
	IsPinned bool `json:"isPinned"`

	// OrderID is the 1-based manual position inside the App's
	// category. Only meaningful while the ordering policy is
	// OrderByManual; stale otherwise.
	OrderID int `json:"orderId"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Orderable implementation.

func (a *App) EntityID() int64        { return a.ID }
func (a *App) DisplayName() string    { return a.Name }
func (a *App) CreatedTime() time.Time { return a.CreatedAt }
func (a *App) Order() int             { return a.OrderID }
