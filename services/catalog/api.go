package catalog

import "context"

// Accessor is the capability other services consume: single-product and
// snapshot reads plus the conditional stock decrement that rides the
// order-persistence transaction.
type Accessor interface {
	GetProduct(c context.Context, productUID string) (Product, bool, error)
	GetProducts(c context.Context, productUIDs []string) ([]ProductSnapshot, error)
	DecrementStock(c context.Context, productUID string, quantity int) error
}
