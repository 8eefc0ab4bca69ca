package commands

import (
	"errors"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a delivery partner's claim on a pending order.
type AcceptOrderCommand struct {
	orderID kernel.UUID
	partner access.Principal

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID kernel.UUID, partner access.Principal) (AcceptOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AcceptOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := partner.ID.Validate(); err != nil {
		return AcceptOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("partner", err)
	}

	return AcceptOrderCommand{
		orderID: orderID,
		partner: partner,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AcceptOrderCommand) Partner() access.Principal {
	return c.partner
}
