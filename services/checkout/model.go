package checkout

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// validNextStatus encodes the order lifecycle: the happy path moves strictly
// forward, cancellation is allowed from every non-terminal state.
var validNextStatus = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) IsValid() bool {
	_, exists := validNextStatus[s]
	return exists
}

func (s OrderStatus) IsTerminal() bool {
	return len(validNextStatus[s]) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validNextStatus[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderLine is an immutable copy of a cart line at order time. UnitPrice is
// the catalog price seen during checkout, not the cart-cached one.
type OrderLine struct {
	ProductUID string
	Name       string
	Slug       string
	UnitPrice  int
	Quantity   int
}

type Address struct {
	Street     string `form:"street"`
	PostalCode string `form:"postalCode"`
	City       string `form:"city"`
	State      string `form:"state"`
	Country    string `form:"country"`
}

type Customer struct {
	FirstName   string `form:"firstName"`
	LastName    string `form:"lastName"`
	Email       string `form:"email"`
	PhoneNumber string `form:"phone"`
}

// Order is created once at checkout. Its monetary fields are a frozen copy of
// the breakdown computed then and are never recomputed afterwards.
type Order struct {
	UID             string
	OrderNumber     string
	Status          OrderStatus
	CartUID         string
	Customer        Customer
	ShippingAddress Address
	Lines           []OrderLine
	Subtotal        int
	ShippingFee     int
	TaxAmount       int
	DiscountAmount  int
	TotalAmount     int
	CouponCode      string
	CreatedAt       time.Time
	LastModified    *time.Time
}

// OutOfStockError signals a checkout line that asks for more than the catalog
// currently has.
type OutOfStockError struct {
	ProductUID string
	Requested  int
	Available  int
}

func (e OutOfStockError) Error() string {
	return fmt.Sprintf("product %s has %d in stock, %d requested", e.ProductUID, e.Available, e.Requested)
}

// ProductUnavailableError signals a product that was deactivated or removed
// after it was added to the cart.
type ProductUnavailableError struct {
	ProductUID string
}

func (e ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s is no longer available", e.ProductUID)
}
