package split

import (
	"context"
	"fmt"

	domain "splitpay/internal/domain/paynow"
	appErrors "splitpay/internal/errors"
	"splitpay/internal/utils/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// maxRestaurantInReference leaves room for " split" inside the payload
// reference limit.
const maxRestaurantInReference = 15

// Service splits itemised bills between diners.
type Service interface {
	Split(ctx context.Context, bill Bill, people []Assignment) (*Result, error)
}

type service struct {
	log *logrus.Entry
}

func NewService(logger *logrus.Logger) Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &service{log: logger.WithField("component", "split")}
}

func (s *service) Split(ctx context.Context, bill Bill, people []Assignment) (*Result, error) {
	if err := validateBill(bill); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	charges := Apportion(bill)
	restaurant := bill.Restaurant
	if restaurant == "" {
		restaurant = DefaultRestaurant
	}

	res := &Result{
		ID:         uuid.NewString(),
		Restaurant: restaurant,
		Charges:    charges,
		Shares:     make([]Share, 0, len(people)),
	}
	ref := Reference(restaurant)
	for _, p := range people {
		share, err := shareOf(charges, p)
		if err != nil {
			return nil, err
		}
		share.Reference = ref
		res.Shares = append(res.Shares, share)
	}

	s.log.WithFields(logrus.Fields{
		"split_id": res.ID,
		"items":    len(charges),
		"people":   len(people),
	}).Info("bill split")

	return res, nil
}

// Reference is the payment reference used for every diner of a split.
func Reference(restaurant string) string {
	if restaurant == "" {
		restaurant = DefaultRestaurant
	}
	return domain.TruncateBytes(restaurant, maxRestaurantInReference) + " split"
}

func validateBill(bill Bill) error {
	v := validation.New()
	v.Check(len(bill.Items) > 0, "items", "must not be empty")
	for i, item := range bill.Items {
		v.Check(!item.Price.IsNegative(), "items", fmt.Sprintf("item %d has a negative price", i+1))
	}
	v.Check(!bill.Subtotal.IsNegative(), "subtotal", "must not be negative")
	v.Check(!bill.Tax.IsNegative(), "tax", "must not be negative")
	v.Check(!bill.ServiceCharge.IsNegative(), "service_charge", "must not be negative")
	return v.Err()
}
