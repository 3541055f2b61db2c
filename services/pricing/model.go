package pricing

import "time"

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFlat       DiscountType = "flat"
)

// Line is one priced cart position. The unit price is whatever the caller
// trusts: cart-cached for display, catalog-fresh for checkout.
type Line struct {
	ProductUID string
	UnitPrice  int
	Quantity   int
}

// Settings is the pricing-relevant subset of the store configuration.
// Amounts are whole currency units.
type Settings struct {
	TaxRatePercent        float64
	ShippingFee           int
	FreeShippingThreshold int
}

type Coupon struct {
	Code          string
	Description   string
	DiscountType  DiscountType
	DiscountValue int
	MinOrderValue int
	MaxUses       int
	UsesSoFar     int
	IsActive      bool
	ExpiresAt     *time.Time
}

// IsApplicable reports whether the coupon may be applied to an order with the
// given subtotal at the given moment.
func (c Coupon) IsApplicable(subtotal int, now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return false
	}
	if c.MaxUses > 0 && c.UsesSoFar >= c.MaxUses {
		return false
	}
	if subtotal < c.MinOrderValue {
		return false
	}

	return true
}

// Breakdown decomposes an order total. It is a derived value: it is never
// stored on its own, only frozen into an order.
type Breakdown struct {
	Subtotal       int
	ShippingFee    int
	TaxAmount      int
	DiscountAmount int
	Total          int
}
