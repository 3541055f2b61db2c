package wishlist

import (
	"time"
)

type WishItem struct {
	ProductUID string
	Name       string
	Slug       string
	ImageRef   string
	UnitPrice  int
	AddedAt    time.Time
}

type Wishlist struct {
	UID          string
	CreatedAt    time.Time
	LastModified *time.Time
	Items        []WishItem
}

// addItem is idempotent: adding a product that is already on the list leaves
// the list unchanged, including the original AddedAt.
func (w *Wishlist) addItem(item WishItem) bool {
	if w.Contains(item.ProductUID) {
		return false
	}
	w.Items = append(w.Items, item)
	return true
}

func (w *Wishlist) removeItem(productUID string) {
	items := make([]WishItem, 0, len(w.Items))
	for _, existing := range w.Items {
		if existing.ProductUID != productUID {
			items = append(items, existing)
		}
	}
	w.Items = items
}

func (w *Wishlist) clear() {
	w.Items = []WishItem{}
}

func (w Wishlist) Contains(productUID string) bool {
	for _, item := range w.Items {
		if item.ProductUID == productUID {
			return true
		}
	}
	return false
}

func (w Wishlist) TotalItems() int {
	return len(w.Items)
}
