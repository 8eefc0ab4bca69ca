package commands

import (
	"errors"
	"strings"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order before it has been picked up.
type CancelOrderCommand struct {
	orderID   kernel.UUID
	requester access.Principal
	reason    string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, requester access.Principal, reason string) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := requester.ID.Validate(); err != nil {
		return CancelOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("requester", err)
	}

	return CancelOrderCommand{
		orderID:   orderID,
		requester: requester,
		reason:    strings.TrimSpace(reason),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) Requester() access.Principal {
	return c.requester
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}
