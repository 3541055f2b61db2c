package cart

import (
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mypubsub"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
	"github.com/sabarishmetals/shopcore/services/catalog"
)

type service struct {
	cartStore mystore.Store[Cart]
	catalog   catalog.Accessor
	pubsub    mypubsub.PubSub
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(cartStore mystore.Store[Cart], cat catalog.Accessor, pubsub mypubsub.PubSub, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		cartStore: cartStore,
		catalog:   cat,
		pubsub:    pubsub,
		nower:     nower,
		uuider:    uuider,
		logger:    logger,
	}
}
