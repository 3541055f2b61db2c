package wishlist

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sabarishmetals/shopcore/lib/mycontext"
	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/myhttp"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/lib/mytime"
	"github.com/sabarishmetals/shopcore/lib/myuuid"
	"github.com/sabarishmetals/shopcore/services/catalog"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewWebService(wishlistStore mystore.Store[Wishlist], cat catalog.Accessor, nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("wishlist")
	return &webService{
		service: newService(wishlistStore, cat, nower, uuider, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/wishlist", s.createWishlistPage()).Methods("POST")
	router.HandleFunc("/api/wishlist/{wishlistUID}", s.wishlistDetailsPage()).Methods("GET")
	router.HandleFunc("/api/wishlist/{wishlistUID}", s.clearWishlistPage()).Methods("DELETE")
	router.HandleFunc("/api/wishlist/{wishlistUID}/item", s.addItemPage()).Methods("POST")
	router.HandleFunc("/api/wishlist/{wishlistUID}/item/{productUID}", s.removeItemPage()).Methods("DELETE")
}

func (s *webService) createWishlistPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		wishlist, err := s.service.createNewWishlist(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, wishlist)
	}
}

func (s *webService) wishlistDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		wishlist, err := s.service.getWishlist(c, mux.Vars(r)["wishlistUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, wishlist)
	}
}

func (s *webService) clearWishlistPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		wishlist, err := s.service.clearWishlist(c, mux.Vars(r)["wishlistUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, wishlist)
	}
}

type addItemRequest struct {
	ProductUID string
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

		wishlist, err := s.service.addItem(c, mux.Vars(r)["wishlistUID"], req.ProductUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, wishlist)
	}
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		vars := mux.Vars(r)
		wishlist, err := s.service.removeItem(c, vars["wishlistUID"], vars["productUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, wishlist)
	}
}
