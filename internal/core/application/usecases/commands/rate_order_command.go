package commands

import (
	"errors"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand carries the customer's food and delivery scores.
type RateOrderCommand struct {
	orderID   kernel.UUID
	requester access.Principal
	rating    order.Rating

	guard guard.ConstructorGuard
}

// NewRateOrderCommand validates the scores. Each score is optional but at least
// one part of the rating must be present.
func NewRateOrderCommand(orderID kernel.UUID, requester access.Principal, rating order.Rating) (RateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		requester.ID.Validate(),
	); err != nil {
		return RateOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := rating.Validate(); err != nil {
		return RateOrderCommand{}, err
	}

	return RateOrderCommand{
		orderID:   orderID,
		requester: requester,
		rating:    rating,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RateOrderCommand) Requester() access.Principal {
	return c.requester
}

func (c RateOrderCommand) Rating() order.Rating {
	return c.rating
}
