package pricing

import (
	"math"
	"time"
)

// ComputeBreakdown derives the price breakdown for the given lines. It is a
// pure function: same inputs, same breakdown. The caller supplies "now" so
// that coupon-expiry checks stay deterministic.
func ComputeBreakdown(lines []Line, settings Settings, coupon *Coupon, now time.Time) Breakdown {
	subtotal := 0
	for _, line := range lines {
		subtotal += line.UnitPrice * line.Quantity
	}

	shippingFee := settings.ShippingFee
	if subtotal >= settings.FreeShippingThreshold {
		shippingFee = 0
	}

	taxAmount := int(math.Round(float64(subtotal) * settings.TaxRatePercent / 100))

	discountAmount := 0
	if coupon != nil && coupon.IsApplicable(subtotal, now) {
		discountAmount = discount(*coupon, subtotal)
	}

	total := subtotal - discountAmount + shippingFee + taxAmount
	if total < 0 {
		total = 0
	}

	return Breakdown{
		Subtotal:       subtotal,
		ShippingFee:    shippingFee,
		TaxAmount:      taxAmount,
		DiscountAmount: discountAmount,
		Total:          total,
	}
}

func discount(coupon Coupon, subtotal int) int {
	var amount int
	switch coupon.DiscountType {
	case DiscountTypePercentage:
		amount = int(math.Round(float64(subtotal) * float64(coupon.DiscountValue) / 100))
	case DiscountTypeFlat:
		amount = coupon.DiscountValue
	}

	// never negative, never more than the subtotal
	if amount < 0 {
		amount = 0
	}
	if amount > subtotal {
		amount = subtotal
	}

	return amount
}
