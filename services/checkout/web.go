package checkout

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sabarishmetals/shopcore/lib/mycontext"
	"github.com/sabarishmetals/shopcore/lib/myhttp"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mypublisher"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
	"github.com/sabarishmetals/shopcore/services/cart"
	"github.com/sabarishmetals/shopcore/services/catalog"
	"github.com/sabarishmetals/shopcore/services/coupon"
	"github.com/sabarishmetals/shopcore/services/shopsettings"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewWebService(orderStore mystore.Store[Order], carts cart.Accessor, cat catalog.Accessor,
	settings shopsettings.Accessor, coupons coupon.Accessor, publisher mypublisher.Publisher,
	nower mytime.Nower, uuider myuuid.UUIDer, suffixer func() int) *webService {
	logger := mylog.New("checkout")
	return &webService{
		service: newService(orderStore, carts, cat, settings, coupons, publisher, nower, uuider, suffixer, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/checkout", s.placeOrderPage()).Methods("POST")
	router.HandleFunc("/api/order", s.listOrdersPage()).Methods("GET")
	router.HandleFunc("/api/order/{orderUID}", s.orderDetailsPage()).Methods("GET")
	router.HandleFunc("/api/order/{orderUID}/status/{status}", s.updateStatusPage()).Methods("PUT")

	err := s.service.createTopics(c)
	if err != nil {
		return err
	}

	return nil
}

func (s *webService) placeOrderPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req, err := NewPlaceOrderRequestFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		order, err := s.service.placeOrder(c, req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, order)
	}
}

func (s *webService) listOrdersPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		orders, err := s.service.listOrders(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orders)
	}
}

func (s *webService) orderDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		order, err := s.service.getOrder(c, mux.Vars(r)["orderUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, order)
	}
}

func (s *webService) updateStatusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		vars := mux.Vars(r)
		order, err := s.service.updateStatus(c, vars["orderUID"], OrderStatus(vars["status"]))
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, order)
	}
}
