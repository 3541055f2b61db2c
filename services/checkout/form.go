package checkout

import (
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
)

// PlaceOrderRequest is what the storefront posts on checkout submission:
// which cart to assemble, who to ship to and an optional coupon code. The
// cart contents themselves are read server-side.
type PlaceOrderRequest struct {
	CartUID    string   `form:"cartUid"`
	CouponCode string   `form:"couponCode"`
	Customer   Customer `form:"customer"`
	Address    Address  `form:"address"`
}

func NewPlaceOrderRequestFromRequest(r *http.Request) (PlaceOrderRequest, error) {
	err := r.ParseForm()
	if err != nil {
		return PlaceOrderRequest{}, myerrors.NewInvalidInputError(err)
	}
	return newPlaceOrderRequestFromValues(r.Form)
}

func newPlaceOrderRequestFromValues(values url.Values) (PlaceOrderRequest, error) {
	req := PlaceOrderRequest{}
	err := formcodec.NewDecoder().Decode(&req, values)
	if err != nil {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err))
	}

	return req, nil
}

func (r PlaceOrderRequest) validate() error {
	if r.CartUID == "" {
		return myerrors.NewInvalidInputErrorf("cartUid is required")
	}
	if r.Customer.FirstName == "" || r.Customer.LastName == "" {
		return myerrors.NewInvalidInputErrorf("customer name is required")
	}
	if r.Customer.Email == "" {
		return myerrors.NewInvalidInputErrorf("customer email is required")
	}
	if r.Address.Street == "" || r.Address.City == "" || r.Address.PostalCode == "" || r.Address.Country == "" {
		return myerrors.NewInvalidInputErrorf("shipping address is incomplete")
	}

	return nil
}
