package cart

import "context"

// Accessor is the capability checkout consumes: reading the cart an order is
// assembled from.
type Accessor interface {
	GetCart(c context.Context, cartUID string) (Cart, bool, error)
}
