package cart

import (
	"time"
)

// LineItem carries a snapshot of the product at the moment it was added.
// StockCeiling is the stock level seen then; quantities are clamped to it so
// a cart can never ask for more than the shop had.
type LineItem struct {
	ProductUID   string
	Name         string
	Slug         string
	ImageRef     string
	UnitPrice    int
	Quantity     int
	StockCeiling int
}

type Cart struct {
	UID          string
	CreatedAt    time.Time
	LastModified *time.Time
	Open         bool
	Items        []LineItem
}

// addItem merges into an existing line when the product is already present,
// clamping the resulting quantity to the stock ceiling. Insertion order of
// distinct products is preserved. Adding marks the cart open, a UI hint.
func (cart *Cart) addItem(item LineItem) {
	cart.Open = true

	for i, existing := range cart.Items {
		if existing.ProductUID == item.ProductUID {
			cart.Items[i].Quantity = clamp(existing.Quantity+item.Quantity, item.StockCeiling)
			cart.Items[i].StockCeiling = item.StockCeiling
			return
		}
	}

	item.Quantity = clamp(item.Quantity, item.StockCeiling)
	cart.Items = append(cart.Items, item)
}

// updateQuantity sets the quantity of a line. Zero or less removes the line,
// anything above the stock ceiling is clamped down to it.
func (cart *Cart) updateQuantity(productUID string, quantity int) {
	if quantity <= 0 {
		cart.removeItem(productUID)
		return
	}

	for i, existing := range cart.Items {
		if existing.ProductUID == productUID {
			cart.Items[i].Quantity = clamp(quantity, existing.StockCeiling)
			return
		}
	}
}

func (cart *Cart) removeItem(productUID string) {
	items := make([]LineItem, 0, len(cart.Items))
	for _, existing := range cart.Items {
		if existing.ProductUID != productUID {
			items = append(items, existing)
		}
	}
	cart.Items = items
}

func (cart *Cart) clear() {
	cart.Items = []LineItem{}
	cart.Open = false
}

func (cart Cart) TotalItems() int {
	total := 0
	for _, item := range cart.Items {
		total += item.Quantity
	}
	return total
}

func (cart Cart) TotalPrice() int {
	total := 0
	for _, item := range cart.Items {
		total += item.UnitPrice * item.Quantity
	}
	return total
}

func (cart Cart) ItemQuantity(productUID string) int {
	for _, item := range cart.Items {
		if item.ProductUID == productUID {
			return item.Quantity
		}
	}
	return 0
}

func clamp(quantity int, ceiling int) int {
	if quantity > ceiling {
		return ceiling
	}
	return quantity
}
