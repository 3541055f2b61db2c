package wishlist

import (
	"context"
	"fmt"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
	"github.com/sabarishmetals/shopcore/services/catalog"
)

type service struct {
	wishlistStore mystore.Store[Wishlist]
	catalog       catalog.Accessor
	nower         mytime.Nower
	uuider        myuuid.UUIDer
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(wishlistStore mystore.Store[Wishlist], cat catalog.Accessor, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		wishlistStore: wishlistStore,
		catalog:       cat,
		nower:         nower,
		uuider:        uuider,
		logger:        logger,
	}
}

func (s *service) createNewWishlist(c context.Context) (Wishlist, error) {
	wishlistUID := s.uuider.Create()
	createdAt := s.nower.Now()

	s.logger.Log(c, wishlistUID, mylog.SeverityInfo, "Creating new wishlist with uid %s", wishlistUID)

	wishlist := Wishlist{
		UID:       wishlistUID,
		CreatedAt: createdAt,
		Items:     []WishItem{},
	}

	err := s.wishlistStore.Put(c, wishlistUID, wishlist)
	if err != nil {
		return Wishlist{}, myerrors.NewInternalError(err)
	}

	return wishlist, nil
}

func (s service) getWishlist(c context.Context, wishlistUID string) (Wishlist, error) {
	wishlist, found, err := s.wishlistStore.Get(c, wishlistUID)
	if err != nil {
		return Wishlist{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Wishlist{}, myerrors.NewNotFoundError(fmt.Errorf("wishlist with uid %s not found", wishlistUID))
	}

	return wishlist, nil
}

func (s *service) addItem(c context.Context, wishlistUID string, productUID string) (Wishlist, error) {
	s.logger.Log(c, wishlistUID, mylog.SeverityInfo, "Adding product %s to wishlist %s", productUID, wishlistUID)

	now := s.nower.Now()

	var wishlist Wishlist
	err := s.wishlistStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		wishlist, found, err = s.wishlistStore.Get(c, wishlistUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("wishlist with uid %s not found", wishlistUID))
		}

		product, found, err := s.catalog.GetProduct(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(catalog.UnknownProductError{ProductUID: productUID})
		}

		added := wishlist.addItem(WishItem{
			ProductUID: product.UID,
			Name:       product.Name,
			Slug:       product.Slug,
			ImageRef:   product.ImageRef,
			UnitPrice:  product.Price,
			AddedAt:    now,
		})
		if !added {
			return nil
		}
		wishlist.LastModified = &now

		err = s.wishlistStore.Put(c, wishlistUID, wishlist)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Wishlist{}, err
	}

	return wishlist, nil
}

func (s *service) clearWishlist(c context.Context, wishlistUID string) (Wishlist, error) {
	s.logger.Log(c, wishlistUID, mylog.SeverityInfo, "Clearing wishlist %s", wishlistUID)

	now := s.nower.Now()

	var wishlist Wishlist
	err := s.wishlistStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		wishlist, found, err = s.wishlistStore.Get(c, wishlistUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("wishlist with uid %s not found", wishlistUID))
		}

		wishlist.clear()
		wishlist.LastModified = &now

		err = s.wishlistStore.Put(c, wishlistUID, wishlist)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Wishlist{}, err
	}

	return wishlist, nil
}

func (s *service) removeItem(c context.Context, wishlistUID string, productUID string) (Wishlist, error) {
	s.logger.Log(c, wishlistUID, mylog.SeverityInfo, "Removing product %s from wishlist %s", productUID, wishlistUID)

	now := s.nower.Now()

	var wishlist Wishlist
	err := s.wishlistStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		wishlist, found, err = s.wishlistStore.Get(c, wishlistUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("wishlist with uid %s not found", wishlistUID))
		}

		wishlist.removeItem(productUID)
		wishlist.LastModified = &now

		err = s.wishlistStore.Put(c, wishlistUID, wishlist)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Wishlist{}, err
	}

	return wishlist, nil
}
