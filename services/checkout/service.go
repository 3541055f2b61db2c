package checkout

import (
	"math/rand"

	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mypublisher"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
	"github.com/sabarishmetals/shopcore/services/cart"
	"github.com/sabarishmetals/shopcore/services/catalog"
	"github.com/sabarishmetals/shopcore/services/coupon"
	"github.com/sabarishmetals/shopcore/services/shopsettings"
)

type service struct {
	orderStore mystore.Store[Order]
	carts      cart.Accessor
	catalog    catalog.Accessor
	settings   shopsettings.Accessor
	coupons    coupon.Accessor
	publisher  mypublisher.Publisher
	nower      mytime.Nower
	uuider     myuuid.UUIDer
	suffixer   func() int
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(orderStore mystore.Store[Order], carts cart.Accessor, cat catalog.Accessor,
	settings shopsettings.Accessor, coupons coupon.Accessor, publisher mypublisher.Publisher,
	nower mytime.Nower, uuider myuuid.UUIDer, suffixer func() int, logger mylog.Logger) *service {
	if suffixer == nil {
		suffixer = func() int { return rand.Intn(suffixSpace) }
	}

	return &service{
		orderStore: orderStore,
		carts:      carts,
		catalog:    cat,
		settings:   settings,
		coupons:    coupons,
		publisher:  publisher,
		nower:      nower,
		uuider:     uuider,
		suffixer:   suffixer,
		logger:     logger,
	}
}
