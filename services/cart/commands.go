package cart

import (
	"context"
	"fmt"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/services/catalog"
)

func (s *service) createNewCart(c context.Context) (Cart, error) {
	cartUID := s.uuider.Create()
	createdAt := s.nower.Now()

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Creating new cart with uid %s", cartUID)

	cart := Cart{
		UID:       cartUID,
		CreatedAt: createdAt,
		Items:     []LineItem{},
	}

	err := s.cartStore.Put(c, cartUID, cart)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}

	return cart, nil
}

func (s service) getCart(c context.Context, cartUID string) (Cart, error) {
	cart, found, err := s.cartStore.Get(c, cartUID)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Cart{}, myerrors.NewNotFoundError(fmt.Errorf("cart with uid %s not found", cartUID))
	}

	return cart, nil
}

// GetCart is the lookup without the not-found error, for in-process consumers.
func (s service) GetCart(c context.Context, cartUID string) (Cart, bool, error) {
	cart, found, err := s.cartStore.Get(c, cartUID)
	if err != nil {
		return Cart{}, false, myerrors.NewInternalError(err)
	}

	return cart, found, nil
}

func (s *service) addItem(c context.Context, cartUID string, productUID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, myerrors.NewInvalidInputErrorf("quantity must be positive, got %d", quantity)
	}

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Adding %d x product %s to cart %s", quantity, productUID, cartUID)

	now := s.nower.Now()

	var cart Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		cart, found, err = s.cartStore.Get(c, cartUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("cart with uid %s not found", cartUID))
		}

		product, found, err := s.catalog.GetProduct(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(catalog.UnknownProductError{ProductUID: productUID})
		}
		if !product.IsActive {
			return myerrors.NewConflictError(fmt.Errorf("product %s is no longer available", productUID))
		}
		if product.Stock <= 0 {
			return myerrors.NewConflictError(catalog.InsufficientStockError{ProductUID: productUID, Requested: quantity, Available: 0})
		}

		cart.addItem(LineItem{
			ProductUID:   product.UID,
			Name:         product.Name,
			Slug:         product.Slug,
			ImageRef:     product.ImageRef,
			UnitPrice:    product.Price,
			Quantity:     quantity,
			StockCeiling: product.Stock,
		})
		cart.LastModified = &now

		err = s.cartStore.Put(c, cartUID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Cart{}, err
	}

	return cart, nil
}

func (s *service) updateQuantity(c context.Context, cartUID string, productUID string, quantity int) (Cart, error) {
	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Setting quantity of product %s in cart %s to %d", productUID, cartUID, quantity)

	now := s.nower.Now()

	var cart Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		cart, found, err = s.cartStore.Get(c, cartUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("cart with uid %s not found", cartUID))
		}

		cart.updateQuantity(productUID, quantity)
		cart.LastModified = &now

		err = s.cartStore.Put(c, cartUID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Cart{}, err
	}

	return cart, nil
}

func (s *service) removeItem(c context.Context, cartUID string, productUID string) (Cart, error) {
	return s.updateQuantity(c, cartUID, productUID, 0)
}

func (s *service) clearCart(c context.Context, cartUID string) (Cart, error) {
	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Clearing cart %s", cartUID)

	now := s.nower.Now()

	var cart Cart
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		cart, found, err = s.cartStore.Get(c, cartUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("cart with uid %s not found", cartUID))
		}

		cart.clear()
		cart.LastModified = &now

		err = s.cartStore.Put(c, cartUID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Cart{}, err
	}

	return cart, nil
}
