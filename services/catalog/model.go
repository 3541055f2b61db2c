package catalog

import (
	"fmt"
	"time"
)

type Product struct {
	UID          string
	Name         string
	Slug         string
	SKU          string
	Description  string
	ImageRef     string
	Price        int
	ComparePrice int
	Stock        int
	CategoryUID  string
	IsActive     bool
	IsFeatured   bool
	CreatedAt    time.Time
	LastModified *time.Time
}

type Category struct {
	UID          string
	Name         string
	Slug         string
	Description  string
	ImageRef     string
	IsActive     bool
	CreatedAt    time.Time
	LastModified *time.Time
}

// ProductSnapshot is the view checkout re-validates against: the current
// price, stock and availability of a product, nothing else.
type ProductSnapshot struct {
	ProductUID string
	Price      int
	Stock      int
	IsActive   bool
}

// DuplicateIdentifierError signals a slug or SKU collision.
type DuplicateIdentifierError struct {
	Kind  string
	Value string
}

func (e DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Value)
}

// InsufficientStockError signals a conditional stock decrement that found
// less stock than requested.
type InsufficientStockError struct {
	ProductUID string
	Requested  int
	Available  int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("product %s has %d in stock, %d requested", e.ProductUID, e.Available, e.Requested)
}

// UnknownProductError signals a product uid that does not resolve to an
// existing product.
type UnknownProductError struct {
	ProductUID string
}

func (e UnknownProductError) Error() string {
	return fmt.Sprintf("product %s does not exist", e.ProductUID)
}
