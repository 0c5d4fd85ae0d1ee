package domain

import "time"

// Bookmark represents an external link entry. Bookmarks are never
// produced by discovery; they exist only through explicit user action.
type Bookmark struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// URL is the full external URL.
	URL string `json:"url"`

	// Icon is an MDI icon name or an uploaded filename.
	Icon string `json:"icon"`

	// CategoryID references a Category of type "bookmarks".
	CategoryID int64 `json:"categoryId"`

	// IsPinned marks the bookmark's category block for the home view.
	IsPinned bool `json:"isPinned"`

	// OrderID is the 1-based manual position inside the category.
	OrderID int `json:"orderId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Orderable implementation.

func (b *Bookmark) EntityID() int64        { return b.ID }
func (b *Bookmark) DisplayName() string    { return b.Name }
func (b *Bookmark) CreatedTime() time.Time { return b.CreatedAt }
func (b *Bookmark) Order() int             { return b.OrderID }
