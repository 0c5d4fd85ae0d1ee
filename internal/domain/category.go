package domain

import "time"

// CategoryType discriminates what a Category may contain.
type CategoryType string

const (
	CategoryApps      CategoryType = "apps"
	CategoryBookmarks CategoryType = "bookmarks"
)

// DefaultCategoryID is the reserved category for discovered items that
// requested no category (or one that does not exist). The store seeds
// it at migration time; it must never be deleted.
const DefaultCategoryID int64 = -1

// Category groups Apps or Bookmarks of a matching type. An App or
// Bookmark belongs to exactly one Category.
type Category struct {
	// ID is the store-assigned identifier. DefaultCategoryID is the
	// one reserved, negative exception.
	ID int64 `json:"id"`

	// Name is the display name. Discovery matches requested category
	// names against it case-insensitively.
	Name string `json:"name"`

	// Type constrains what the category owns.
	Type CategoryType `json:"type"`

	// IsPinned marks the category for the home view.
	IsPinned bool `json:"isPinned"`

	// OrderID is the 1-based manual position. Category ordering is
	// global, not scoped.
	OrderID int `json:"orderId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Orderable implementation.

func (c *Category) EntityID() int64        { return c.ID }
func (c *Category) DisplayName() string    { return c.Name }
func (c *Category) CreatedTime() time.Time { return c.CreatedAt }
func (c *Category) Order() int             { return c.OrderID }
