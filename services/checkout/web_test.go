package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sabarishmetals/shopcore/lib/mypublisher"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
	"github.com/sabarishmetals/shopcore/services/cart"
	"github.com/sabarishmetals/shopcore/services/catalog"
	"github.com/sabarishmetals/shopcore/services/checkout/orderevents"
	"github.com/sabarishmetals/shopcore/services/coupon"
	"github.com/sabarishmetals/shopcore/services/pricing"
	"github.com/sabarishmetals/shopcore/services/shopsettings"
)

var filledCart = cart.Cart{
	UID:       "cart-1",
	CreatedAt: mytime.ExampleTime,
	Items: []cart.LineItem{
		// cart-cached price deliberately stale: the catalog says 1500
		{ProductUID: "prod-1", Name: "Copper Rod", Slug: "copper-rod", UnitPrice: 1400, Quantity: 2, StockCeiling: 10},
	},
}

var freshSnapshot = []catalog.ProductSnapshot{
	{ProductUID: "prod-1", Price: 1500, Stock: 10, IsActive: true},
}

func TestPlaceOrder(t *testing.T) {

	t.Run("Happy flow freezes fresh prices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(t, ctrl)

		// given
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)
		deps.uuider.EXPECT().Create().Return("order-1")
		deps.settings.EXPECT().GetSettings(gomock.Any()).Return(shopsettings.DefaultSettings(), nil)
		deps.carts.EXPECT().GetCart(gomock.Any(), "cart-1").Return(filledCart, true, nil)
		deps.catalog.EXPECT().GetProducts(gomock.Any(), []string{"prod-1"}).Return(freshSnapshot, nil)
		deps.catalog.EXPECT().DecrementStock(gomock.Any(), "prod-1", 2).Return(nil)
		deps.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, orderevents.OrderPlaced{
			OrderUID:    "order-1",
			OrderNumber: "SM-202302-00042",
			CartUID:     "cart-1",
			TotalAmount: 3639,
		}).Return(nil)

		// when
		response := httptest.NewRecorder()
		router.ServeHTTP(response, placeOrderRequest(t, "cart-1", ""))

		// then
		assert.Equal(t, 200, response.Code)
		order, exists, _ := deps.orderStore.Get(ctx, "order-1")
		assert.True(t, exists)
		assert.Equal(t, "SM-202302-00042", order.OrderNumber)
		assert.Equal(t, OrderStatusPending, order.Status)
		// money is computed from the catalog price, not the cart-cached 1400
		assert.Equal(t, 3000, order.Subtotal)
		assert.Equal(t, 99, order.ShippingFee)
		assert.Equal(t, 540, order.TaxAmount)
		assert.Equal(t, 0, order.DiscountAmount)
		assert.Equal(t, 3639, order.TotalAmount)
		assert.Equal(t, 1500, order.Lines[0].UnitPrice)
	})

	t.Run("Applicable coupon is applied and redeemed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(t, ctrl)

		// given
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)
		deps.uuider.EXPECT().Create().Return("order-1")
		deps.settings.EXPECT().GetSettings(gomock.Any()).Return(shopsettings.DefaultSettings(), nil)
		deps.carts.EXPECT().GetCart(gomock.Any(), "cart-1").Return(filledCart, true, nil)
		deps.catalog.EXPECT().GetProducts(gomock.Any(), []string{"prod-1"}).Return(freshSnapshot, nil)
		deps.coupons.EXPECT().GetCoupon(gomock.Any(), "WELCOME10").Return(pricing.Coupon{
			Code:          "WELCOME10",
			DiscountType:  pricing.DiscountTypePercentage,
			DiscountValue: 10,
			MinOrderValue: 1000,
			IsActive:      true,
		}, true, nil)
		deps.catalog.EXPECT().DecrementStock(gomock.Any(), "prod-1", 2).Return(nil)
		deps.coupons.EXPECT().Redeem(gomock.Any(), "WELCOME10").Return(nil)
		deps.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil)

		// when
		response := httptest.NewRecorder()
		router.ServeHTTP(response, placeOrderRequest(t, "cart-1", "WELCOME10"))

		// then
		assert.Equal(t, 200, response.Code)
		order, _, _ := deps.orderStore.Get(ctx, "order-1")
		assert.Equal(t, 300, order.DiscountAmount)
		assert.Equal(t, 3339, order.TotalAmount)
		assert.Equal(t, "WELCOME10", order.CouponCode)
	})

	t.Run("Out of stock aborts without writing anything", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(t, ctrl)

		// given
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)
		deps.uuider.EXPECT().Create().Return("order-1")
		deps.settings.EXPECT().GetSettings(gomock.Any()).Return(shopsettings.DefaultSettings(), nil)
		deps.carts.EXPECT().GetCart(gomock.Any(), "cart-1").Return(filledCart, true, nil)
		deps.catalog.EXPECT().GetProducts(gomock.Any(), []string{"prod-1"}).Return([]catalog.ProductSnapshot{
			{ProductUID: "prod-1", Price: 1500, Stock: 1, IsActive: true},
		}, nil)

		// when
		response := httptest.NewRecorder()
		router.ServeHTTP(response, placeOrderRequest(t, "cart-1", ""))

		// then
		assert.Equal(t, 409, response.Code)
		orders, _ := deps.orderStore.List(ctx)
		assert.Empty(t, orders)
	})

	t.Run("Deactivated product aborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(t, ctrl)

		// given
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)
		deps.uuider.EXPECT().Create().Return("order-1")
		deps.settings.EXPECT().GetSettings(gomock.Any()).Return(shopsettings.DefaultSettings(), nil)
		deps.carts.EXPECT().GetCart(gomock.Any(), "cart-1").Return(filledCart, true, nil)
		deps.catalog.EXPECT().GetProducts(gomock.Any(), []string{"prod-1"}).Return([]catalog.ProductSnapshot{
			{ProductUID: "prod-1", Price: 1500, Stock: 10, IsActive: false},
		}, nil)

		// when
		response := httptest.NewRecorder()
		router.ServeHTTP(response, placeOrderRequest(t, "cart-1", ""))

		// then
		assert.Equal(t, 409, response.Code)
		orders, _ := deps.orderStore.List(ctx)
		assert.Empty(t, orders)
	})

	t.Run("Empty cart rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, deps := setup(t, ctrl)

		// given
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)
		deps.uuider.EXPECT().Create().Return("order-1")
		deps.settings.EXPECT().GetSettings(gomock.Any()).Return(shopsettings.DefaultSettings(), nil)
		deps.carts.EXPECT().GetCart(gomock.Any(), "cart-1").Return(cart.Cart{UID: "cart-1"}, true, nil)

		// when
		response := httptest.NewRecorder()
		router.ServeHTTP(response, placeOrderRequest(t, "cart-1", ""))

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Unknown coupon rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(t, ctrl)

		// given
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)
		deps.uuider.EXPECT().Create().Return("order-1")
		deps.settings.EXPECT().GetSettings(gomock.Any()).Return(shopsettings.DefaultSettings(), nil)
		deps.carts.EXPECT().GetCart(gomock.Any(), "cart-1").Return(filledCart, true, nil)
		deps.catalog.EXPECT().GetProducts(gomock.Any(), []string{"prod-1"}).Return(freshSnapshot, nil)
		deps.coupons.EXPECT().GetCoupon(gomock.Any(), "NOPE").Return(pricing.Coupon{}, false, nil)

		// when
		response := httptest.NewRecorder()
		router.ServeHTTP(response, placeOrderRequest(t, "cart-1", "NOPE"))

		// then
		assert.Equal(t, 400, response.Code)
		orders, _ := deps.orderStore.List(ctx)
		assert.Empty(t, orders)
	})

	t.Run("Missing address rejected before any lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _ := setup(t, ctrl)

		// when
		form := url.Values{}
		form.Set("cartUid", "cart-1")
		request, err := http.NewRequest(http.MethodPost, "/checkout", strings.NewReader(form.Encode()))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})
}

func TestUpdateStatus(t *testing.T) {

	t.Run("Happy path transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(t, ctrl)

		// given
		deps.orderStore.Put(ctx, "order-1", Order{UID: "order-1", OrderNumber: "SM-202302-00042", Status: OrderStatusPending})
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)
		deps.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, orderevents.OrderStatusChanged{
			OrderUID:    "order-1",
			OrderNumber: "SM-202302-00042",
			OldStatus:   "pending",
			NewStatus:   "confirmed",
		}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/order/order-1/status/confirmed", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		order, _, _ := deps.orderStore.Get(ctx, "order-1")
		assert.Equal(t, OrderStatusConfirmed, order.Status)
	})

	t.Run("Illegal jump rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, deps := setup(t, ctrl)

		// given
		deps.orderStore.Put(ctx, "order-1", Order{UID: "order-1", Status: OrderStatusPending})
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/order/order-1/status/shipped", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 409, response.Code)
		order, _, _ := deps.orderStore.Get(ctx, "order-1")
		assert.Equal(t, OrderStatusPending, order.Status)
	})

	t.Run("Unknown status rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/order/order-1/status/teleported", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})
}

func TestStatusStateMachine(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusConfirmed, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
}

func TestOrderNumberFormat(t *testing.T) {
	assert.Equal(t, "SM-202302-00042", formatOrderNumber(mytime.ExampleTime, 42))
	assert.Equal(t, "SM-202302-00000", formatOrderNumber(mytime.ExampleTime, 0))
	assert.Equal(t, "SM-202302-99999", formatOrderNumber(mytime.ExampleTime, 99999))
}

func placeOrderRequest(t *testing.T, cartUID string, couponCode string) *http.Request {
	form := url.Values{}
	form.Set("cartUid", cartUID)
	if couponCode != "" {
		form.Set("couponCode", couponCode)
	}
	form.Set("customer.firstName", "Sabarish")
	form.Set("customer.lastName", "Kumar")
	form.Set("customer.email", "sabarish@example.com")
	form.Set("customer.phone", "+919876543210")
	form.Set("address.street", "12 Anna Salai")
	form.Set("address.postalCode", "600002")
	form.Set("address.city", "Chennai")
	form.Set("address.state", "Tamil Nadu")
	form.Set("address.country", "IN")

	request, err := http.NewRequest(http.MethodPost, "/checkout", strings.NewReader(form.Encode()))
	assert.NoError(t, err)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return request
}

type checkoutDeps struct {
	orderStore mystore.Store[Order]
	carts      *cart.MockAccessor
	catalog    *catalog.MockAccessor
	settings   *shopsettings.MockAccessor
	coupons    *coupon.MockAccessor
	publisher  *mypublisher.MockPublisher
	nower      *mytime.MockNower
	uuider     *myuuid.MockUUIDer
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, checkoutDeps) {
	c := context.TODO()
	orderStore, _, err := mystore.NewInMemoryStore[Order](c)
	assert.NoError(t, err)

	deps := checkoutDeps{
		orderStore: orderStore,
		carts:      cart.NewMockAccessor(ctrl),
		catalog:    catalog.NewMockAccessor(ctrl),
		settings:   shopsettings.NewMockAccessor(ctrl),
		coupons:    coupon.NewMockAccessor(ctrl),
		publisher:  mypublisher.NewMockPublisher(ctrl),
		nower:      mytime.NewMockNower(ctrl),
		uuider:     myuuid.NewMockUUIDer(ctrl),
	}

	sut := NewWebService(deps.orderStore, deps.carts, deps.catalog, deps.settings, deps.coupons,
		deps.publisher, deps.nower, deps.uuider, func() int { return 42 })
	router := mux.NewRouter()

	// This is called by the following call to RegisterEndpoints()
	deps.publisher.EXPECT().CreateTopic(c, orderevents.TopicName).Return(nil)

	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, deps
}
