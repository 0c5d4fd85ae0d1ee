package domain

import (
	"sort"
	"strings"
	"time"
)

// OrderingPolicy is the globally selected strategy determining display
// order of every catalog collection. It is read from settings once per
// operation and passed down explicitly.
type OrderingPolicy string

const (
	// OrderByCreated sorts by ascending creation time, ties broken by id.
	OrderByCreated OrderingPolicy = "createdAt"
	// OrderByName sorts case-insensitively by display name.
	OrderByName OrderingPolicy = "name"
	// OrderByManual sorts by the persisted 1-based OrderID.
	OrderByManual OrderingPolicy = "orderId"
)

// Valid reports whether p is one of the three known policies.
func (p OrderingPolicy) Valid() bool {
	switch p {
	case OrderByCreated, OrderByName, OrderByManual:
		return true
	}
	return false
}

// Orderable is implemented by every ranked collection element
// (Category, App, Bookmark).
type Orderable interface {
	EntityID() int64
	DisplayName() string
	CreatedTime() time.Time
	Order() int
}

// Rank returns items sorted under the given policy. It is the single
// comparison implementation for the whole codebase; listing paths must
// never sort locally. The input slice is not modified.
//
// Rank is stable and total: ranking an already-ranked sequence is a
// no-op. Unknown policies fall back to OrderByCreated.
func Rank[T Orderable](items []T, policy OrderingPolicy) []T {
	out := make([]T, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j], policy)
	})
	return out
}

func less(a, b Orderable, policy OrderingPolicy) bool {
	switch policy {
	case OrderByName:
		an := strings.ToLower(a.DisplayName())
		bn := strings.ToLower(b.DisplayName())
		if an != bn {
			return an < bn
		}
	case OrderByManual:
		if a.Order() != b.Order() {
			return a.Order() < b.Order()
		}
	default:
		at, bt := a.CreatedTime(), b.CreatedTime()
		if !at.Equal(bt) {
			return at.Before(bt)
		}
	}
	return a.EntityID() < b.EntityID()
}
