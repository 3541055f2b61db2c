package coupon

import (
	"context"
	"fmt"
	"strings"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/mylog"
	"github.com/sabarishmetals/shopcore/lib/mystore"
	"github.com/sabarishmetals/shopcore/services/pricing"
)

// Accessor is the capability checkout consumes: lookup plus the usage-count
// bump that rides the order-persistence transaction.
type Accessor interface {
	GetCoupon(c context.Context, code string) (pricing.Coupon, bool, error)
	Redeem(c context.Context, code string) error
}

type service struct {
	couponStore mystore.Store[pricing.Coupon]
	logger      mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(couponStore mystore.Store[pricing.Coupon], logger mylog.Logger) *service {
	return &service{
		couponStore: couponStore,
		logger:      logger,
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *service) GetCoupon(c context.Context, code string) (pricing.Coupon, bool, error) {
	coupon, found, err := s.couponStore.Get(c, normalizeCode(code))
	if err != nil {
		return pricing.Coupon{}, false, myerrors.NewInternalError(err)
	}

	return coupon, found, nil
}

// Redeem bumps the usage count. Whether the coupon was applicable is the
// pricing engine's call; redeeming an unknown code is an error.
func (s *service) Redeem(c context.Context, code string) error {
	coupon, found, err := s.couponStore.Get(c, normalizeCode(code))
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	if !found {
		return myerrors.NewNotFoundError(fmt.Errorf("coupon %s not found", code))
	}

	coupon.UsesSoFar++

	err = s.couponStore.Put(c, normalizeCode(code), coupon)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}

func (s *service) createCoupon(c context.Context, coupon pricing.Coupon) (pricing.Coupon, error) {
	coupon.Code = normalizeCode(coupon.Code)
	if coupon.Code == "" {
		return pricing.Coupon{}, myerrors.NewInvalidInputErrorf("coupon code is required")
	}
	if coupon.DiscountType != pricing.DiscountTypePercentage && coupon.DiscountType != pricing.DiscountTypeFlat {
		return pricing.Coupon{}, myerrors.NewInvalidInputErrorf("unknown discount type %q", coupon.DiscountType)
	}
	if coupon.DiscountValue <= 0 {
		return pricing.Coupon{}, myerrors.NewInvalidInputErrorf("discount value must be positive")
	}

	s.logger.Log(c, coupon.Code, mylog.SeverityInfo, "Creating coupon %s", coupon.Code)

	err := s.couponStore.RunInTransaction(c, func(c context.Context) error {
		_, exists, err := s.couponStore.Get(c, coupon.Code)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if exists {
			return myerrors.NewConflictError(fmt.Errorf("coupon %s already exists", coupon.Code))
		}

		coupon.UsesSoFar = 0

		return s.couponStore.Put(c, coupon.Code, coupon)
	})
	if err != nil {
		return pricing.Coupon{}, err
	}

	return coupon, nil
}
