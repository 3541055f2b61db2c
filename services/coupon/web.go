package coupon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sabarishmetals/shopcore/lib/mycontext"
	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/myhttp"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/services/pricing"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewWebService(couponStore mystore.Store[pricing.Coupon]) *webService {
	logger := mylog.New("coupon")
	return &webService{
		service: NewService(couponStore, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/coupon", s.createCouponPage()).Methods("POST")
	router.HandleFunc("/api/coupon/{code}", s.couponDetailsPage()).Methods("GET")
}

// GetCoupon implements the Accessor capability.
func (s *webService) GetCoupon(c context.Context, code string) (pricing.Coupon, bool, error) {
	return s.service.GetCoupon(c, code)
}

// Redeem implements the Accessor capability.
func (s *webService) Redeem(c context.Context, code string) error {
	return s.service.Redeem(c, code)
}

func (s *webService) createCouponPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		coupon := pricing.Coupon{}
		err := json.NewDecoder(r.Body).Decode(&coupon)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		created, err := s.service.createCoupon(c, coupon)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, created)
	}
}

func (s *webService) couponDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		code := mux.Vars(r)["code"]
		coupon, found, err := s.service.GetCoupon(c, code)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}
		if !found {
			errorWriter.WriteError(c, w, 2, myerrors.NewNotFoundError(fmt.Errorf("coupon %s not found", code)))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, coupon)
	}
}
