package shopsettings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
)

func TestSettings(t *testing.T) {
	c := context.TODO()

	t.Run("Defaults when never configured", func(t *testing.T) {
		sut := newSut(t)

		settings, err := sut.GetSettings(c)

		assert.NoError(t, err)
		assert.Equal(t, DefaultSettings(), settings)
		assert.Equal(t, 99, settings.ShippingFee)
		assert.Equal(t, 5000, settings.FreeShippingThreshold)
		assert.Equal(t, float64(18), settings.TaxRatePercent)
		assert.Equal(t, "INR", settings.CurrencyCode)
	})

	t.Run("Stored settings win over defaults", func(t *testing.T) {
		sut := newSut(t)

		updated := DefaultSettings()
		updated.ShippingFee = 150
		err := sut.updateSettings(c, updated)
		assert.NoError(t, err)

		settings, err := sut.GetSettings(c)
		assert.NoError(t, err)
		assert.Equal(t, 150, settings.ShippingFee)
	})

	t.Run("Negative amounts rejected", func(t *testing.T) {
		sut := newSut(t)

		bad := DefaultSettings()
		bad.ShippingFee = -1

		err := sut.updateSettings(c, bad)
		assert.Error(t, err)
	})

	t.Run("Pricing subset", func(t *testing.T) {
		p := DefaultSettings().Pricing()
		assert.Equal(t, 99, p.ShippingFee)
		assert.Equal(t, 5000, p.FreeShippingThreshold)
		assert.Equal(t, float64(18), p.TaxRatePercent)
	})
}

func newSut(t *testing.T) *service {
	store, _, err := mystore.NewInMemoryStore[Settings](context.TODO())
	assert.NoError(t, err)

	return NewService(store, mylog.New("shopsettings"))
}
