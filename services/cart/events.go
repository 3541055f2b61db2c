package cart

import (
	"context"
	"fmt"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/myhttp"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/services/checkout/orderevents"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.pubsub.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	err = s.pubsub.Subscribe(c, orderevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/cart/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", orderevents.TopicName, err)
	}

	return nil
}

// OnOrderPlaced empties the cart that the order was assembled from.
func (s *service) OnOrderPlaced(c context.Context, topic string, event orderevents.OrderPlaced) error {
	s.logger.Log(c, event.CartUID, mylog.SeverityInfo, "Webhook: order %s placed from cart %s", event.OrderNumber, event.CartUID)

	now := s.nower.Now()

	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent
		cart, found, err := s.cartStore.Get(c, event.CartUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return nil
		}

		if len(cart.Items) == 0 {
			return nil
		}

		cart.clear()
		cart.LastModified = &now

		err = s.cartStore.Put(c, event.CartUID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func (s *service) OnOrderStatusChanged(c context.Context, topic string, event orderevents.OrderStatusChanged) error {
	return nil
}
