package catalog

import (
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
)

type service struct {
	productStore  mystore.Store[Product]
	categoryStore mystore.Store[Category]
	nower         mytime.Nower
	uuider        myuuid.UUIDer
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(productStore mystore.Store[Product], categoryStore mystore.Store[Category], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		productStore:  productStore,
		categoryStore: categoryStore,
		nower:         nower,
		uuider:        uuider,
		logger:        logger,
	}
}
