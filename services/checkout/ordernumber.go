package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/sabarishmetals/shopcore/lib/myerrors"
	"github.com/sabarishmetals/shopcore/lib/mystore"
)

const (
	orderNumberPrefix = "SM"

	// 100k suffixes per month; the probe loop guards the unlikely collision.
	suffixSpace          = 100000
	maxOrderNumberProbes = 100
)

func formatOrderNumber(now time.Time, suffix int) string {
	return fmt.Sprintf("%s-%04d%02d-%05d", orderNumberPrefix, now.Year(), int(now.Month()), suffix)
}

// allocateOrderNumber picks a random suffix within the current month and
// verifies it against already persisted orders. The store is the source of
// truth: the caller runs this inside the order-persistence transaction.
func (s *service) allocateOrderNumber(c context.Context, now time.Time) (string, error) {
	for i := 0; i < maxOrderNumberProbes; i++ {
		candidate := formatOrderNumber(now, s.suffixer())

		existing, err := s.orderStore.Query(c, []mystore.Filter{{Field: "OrderNumber", Compare: "=", Value: candidate}}, "")
		if err != nil {
			return "", myerrors.NewInternalError(err)
		}
		if len(existing) == 0 {
			return candidate, nil
		}
	}

	return "", myerrors.NewInternalError(fmt.Errorf("could not allocate a unique order number after %d attempts", maxOrderNumberProbes))
}
