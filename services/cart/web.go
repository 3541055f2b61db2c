package cart

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sabarishmetals/shopcore/lib/mycontext"
	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/myhttp"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mypubsub"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
	"github.com/sabarishmetals/shopcore/services/catalog"
	"github.com/sabarishmetals/shopcore/services/checkout/orderevents"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewWebService(cartStore mystore.Store[Cart], cat catalog.Accessor, pubsub mypubsub.PubSub, nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("cart")
	return &webService{
		service: newService(cartStore, cat, pubsub, nower, uuider, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/cart", s.createCartPage()).Methods("POST")
	router.HandleFunc("/api/cart/{cartUID}", s.cartDetailsPage()).Methods("GET")
	router.HandleFunc("/api/cart/{cartUID}", s.clearCartPage()).Methods("DELETE")
	router.HandleFunc("/api/cart/{cartUID}/item", s.addItemPage()).Methods("POST")
	router.HandleFunc("/api/cart/{cartUID}/item/{productUID}", s.updateQuantityPage()).Methods("PUT")
	router.HandleFunc("/api/cart/{cartUID}/item/{productUID}", s.removeItemPage()).Methods("DELETE")

	// Async notification about orders
	router.HandleFunc("/api/cart/event", s.handleEventEnvelope()).Methods("POST")

	err := s.service.Subscribe(c)
	if err != nil {
		return err
	}

	return nil
}

// GetCart implements the Accessor capability.
func (s *webService) GetCart(c context.Context, cartUID string) (Cart, bool, error) {
	return s.service.GetCart(c, cartUID)
}

func (s *webService) createCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.createNewCart(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) cartDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.getCart(c, mux.Vars(r)["cartUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

type addItemRequest struct {
	ProductUID string
	Quantity   int
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := addItemRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		cart, err := s.service.addItem(c, mux.Vars(r)["cartUID"], req.ProductUID, req.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

type updateQuantityRequest struct {
	Quantity int
}

func (s *webService) updateQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := updateQuantityRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		vars := mux.Vars(r)
		cart, err := s.service.updateQuantity(c, vars["cartUID"], vars["productUID"], req.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		vars := mux.Vars(r)
		cart, err := s.service.removeItem(c, vars["cartUID"], vars["productUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.clearCart(c, mux.Vars(r)["cartUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) handleEventEnvelope() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := orderevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}
