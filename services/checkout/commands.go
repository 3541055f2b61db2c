package checkout

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/services/cart"
	"github.com/sabarishmetals/shopcore/services/catalog"
	"github.com/sabarishmetals/shopcore/services/checkout/orderevents"
	"github.com/sabarishmetals/shopcore/services/pricing"
)

func (s *service) createTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	return nil
}

// placeOrder assembles an order from the cart identified in the request.
// Everything after validation runs in one transaction: stock decrements, the
// order write, the coupon redemption and the event publication either all
// happen or none do.
func (s *service) placeOrder(c context.Context, req PlaceOrderRequest) (Order, error) {
	err := req.validate()
	if err != nil {
		return Order{}, err
	}

	orderUID := s.uuider.Create()
	now := s.nower.Now()

	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Placing order for cart %s", req.CartUID)

	settings, err := s.settings.GetSettings(c)
	if err != nil {
		return Order{}, myerrors.NewInternalError(err)
	}

	var order Order
	err = s.orderStore.RunInTransaction(c, func(c context.Context) error {
		basket, found, err := s.carts.GetCart(c, req.CartUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("cart with uid %s not found", req.CartUID))
		}
		if len(basket.Items) == 0 {
			return myerrors.NewInvalidInputErrorf("cart %s is empty", req.CartUID)
		}

		// The cart's cached prices and ceilings are advisory only: money and
		// stock decisions are made on what the catalog says right now.
		lines, err := s.freshLines(c, basket.Items)
		if err != nil {
			return err
		}

		appliedCoupon, err := s.resolveCoupon(c, req.CouponCode)
		if err != nil {
			return err
		}

		breakdown := pricing.ComputeBreakdown(toPricingLines(lines), settings.Pricing(), appliedCoupon, now)

		orderNumber, err := s.allocateOrderNumber(c, now)
		if err != nil {
			return err
		}

		for _, line := range lines {
			err = s.catalog.DecrementStock(c, line.ProductUID, line.Quantity)
			if err != nil {
				insufficient := catalog.InsufficientStockError{}
				if errors.As(err, &insufficient) {
					return myerrors.NewConflictError(OutOfStockError{
						ProductUID: insufficient.ProductUID,
						Requested:  insufficient.Requested,
						Available:  insufficient.Available,
					})
				}
				return err
			}
		}

		order = Order{
			UID:             orderUID,
			OrderNumber:     orderNumber,
			Status:          OrderStatusPending,
			CartUID:         req.CartUID,
			Customer:        req.Customer,
			ShippingAddress: req.Address,
			Lines:           lines,
			Subtotal:        breakdown.Subtotal,
			ShippingFee:     breakdown.ShippingFee,
			TaxAmount:       breakdown.TaxAmount,
			DiscountAmount:  breakdown.DiscountAmount,
			TotalAmount:     breakdown.Total,
			CouponCode:      req.CouponCode,
			CreatedAt:       now,
		}

		err = s.orderStore.Put(c, orderUID, order)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		if appliedCoupon != nil && breakdown.DiscountAmount > 0 {
			err = s.coupons.Redeem(c, appliedCoupon.Code)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderPlaced{
			OrderUID:    orderUID,
			OrderNumber: orderNumber,
			CartUID:     req.CartUID,
			TotalAmount: breakdown.Total,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Order %s placed for cart %s: total %d", order.OrderNumber, req.CartUID, order.TotalAmount)

	return order, nil
}

// freshLines re-fetches every cart line from the catalog and freezes the
// current prices into order lines.
func (s *service) freshLines(c context.Context, items []cart.LineItem) ([]OrderLine, error) {
	uids := make([]string, 0, len(items))
	for _, item := range items {
		uids = append(uids, item.ProductUID)
	}

	snapshots, err := s.catalog.GetProducts(c, uids)
	if err != nil {
		unknown := catalog.UnknownProductError{}
		if errors.As(err, &unknown) {
			return nil, myerrors.NewConflictError(ProductUnavailableError{ProductUID: unknown.ProductUID})
		}
		return nil, myerrors.NewInternalError(err)
	}

	byUID := make(map[string]catalog.ProductSnapshot, len(snapshots))
	for _, snapshot := range snapshots {
		byUID[snapshot.ProductUID] = snapshot
	}

	lines := make([]OrderLine, 0, len(items))
	for _, item := range items {
		snapshot, exists := byUID[item.ProductUID]
		if !exists {
			return nil, myerrors.NewConflictError(ProductUnavailableError{ProductUID: item.ProductUID})
		}
		if !snapshot.IsActive {
			return nil, myerrors.NewConflictError(ProductUnavailableError{ProductUID: item.ProductUID})
		}
		if snapshot.Stock < item.Quantity {
			return nil, myerrors.NewConflictError(OutOfStockError{
				ProductUID: item.ProductUID,
				Requested:  item.Quantity,
				Available:  snapshot.Stock,
			})
		}

		lines = append(lines, OrderLine{
			ProductUID: item.ProductUID,
			Name:       item.Name,
			Slug:       item.Slug,
			UnitPrice:  snapshot.Price,
			Quantity:   item.Quantity,
		})
	}

	return lines, nil
}

func (s *service) resolveCoupon(c context.Context, code string) (*pricing.Coupon, error) {
	if code == "" {
		return nil, nil
	}

	appliedCoupon, found, err := s.coupons.GetCoupon(c, code)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	if !found {
		return nil, myerrors.NewInvalidInputErrorf("coupon %s does not exist", code)
	}

	return &appliedCoupon, nil
}

func toPricingLines(lines []OrderLine) []pricing.Line {
	result := make([]pricing.Line, 0, len(lines))
	for _, line := range lines {
		result = append(result, pricing.Line{
			ProductUID: line.ProductUID,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
		})
	}
	return result
}

func (s *service) listOrders(c context.Context) ([]Order, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all orders")

	orders, err := s.orderStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s service) getOrder(c context.Context, orderUID string) (Order, error) {
	order, found, err := s.orderStore.Get(c, orderUID)
	if err != nil {
		return Order{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Order{}, myerrors.NewNotFoundError(fmt.Errorf("order with uid %s not found", orderUID))
	}

	return order, nil
}

// updateStatus moves an order along its lifecycle. Illegal jumps and
// transitions out of a terminal state are rejected.
func (s *service) updateStatus(c context.Context, orderUID string, newStatus OrderStatus) (Order, error) {
	if !newStatus.IsValid() {
		return Order{}, myerrors.NewInvalidInputErrorf("unknown order status %q", newStatus)
	}

	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Setting status of order %s to %s", orderUID, newStatus)

	now := s.nower.Now()

	var order Order
	err := s.orderStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		order, found, err = s.orderStore.Get(c, orderUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("order with uid %s not found", orderUID))
		}

		if !order.Status.CanTransitionTo(newStatus) {
			return myerrors.NewConflictError(fmt.Errorf("order %s cannot go from %s to %s", orderUID, order.Status, newStatus))
		}

		oldStatus := order.Status
		order.Status = newStatus
		order.LastModified = &now

		err = s.orderStore.Put(c, orderUID, order)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderStatusChanged{
			OrderUID:    orderUID,
			OrderNumber: order.OrderNumber,
			OldStatus:   string(oldStatus),
			NewStatus:   string(newStatus),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Order{}, err
	}

	return order, nil
}
