package coupon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/services/pricing"
)

var welcome10 = pricing.Coupon{
	Code:          "WELCOME10",
	Description:   "10% off on your first order",
	DiscountType:  pricing.DiscountTypePercentage,
	DiscountValue: 10,
	MinOrderValue: 1000,
	MaxUses:       100,
	IsActive:      true,
}

func TestCoupons(t *testing.T) {
	c := context.TODO()

	t.Run("Create and fetch", func(t *testing.T) {
		sut := newSut(t)

		_, err := sut.createCoupon(c, welcome10)
		assert.NoError(t, err)

		got, found, err := sut.GetCoupon(c, "welcome10")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "WELCOME10", got.Code)
	})

	t.Run("Duplicate code rejected", func(t *testing.T) {
		sut := newSut(t)

		_, err := sut.createCoupon(c, welcome10)
		assert.NoError(t, err)

		_, err = sut.createCoupon(c, welcome10)
		assert.Error(t, err)
	})

	t.Run("Unknown code not found", func(t *testing.T) {
		sut := newSut(t)

		_, found, err := sut.GetCoupon(c, "NOPE")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Redeem bumps usage count", func(t *testing.T) {
		sut := newSut(t)

		_, err := sut.createCoupon(c, welcome10)
		assert.NoError(t, err)

		err = sut.Redeem(c, "WELCOME10")
		assert.NoError(t, err)

		got, _, _ := sut.GetCoupon(c, "WELCOME10")
		assert.Equal(t, 1, got.UsesSoFar)
	})

	t.Run("Redeem of unknown code fails", func(t *testing.T) {
		sut := newSut(t)

		err := sut.Redeem(c, "NOPE")
		assert.Error(t, err)
	})

	t.Run("Invalid discount type rejected", func(t *testing.T) {
		sut := newSut(t)

		bad := welcome10
		bad.DiscountType = "lucky-draw"

		_, err := sut.createCoupon(c, bad)
		assert.Error(t, err)
	})
}

func newSut(t *testing.T) *service {
	store, _, err := mystore.NewInMemoryStore[pricing.Coupon](context.TODO())
	assert.NoError(t, err)

	return NewService(store, mylog.New("coupon"))
}
