package commands

import (
	"errors"
	"strings"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand moves an order one step along the delivery chain.
type UpdateOrderStatusCommand struct {
	orderID   kernel.UUID
	requester access.Principal
	status    order.Status
	note      string

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	requester access.Principal,
	status order.Status,
	note string,
) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		requester.ID.Validate(),
		status.Validate(),
	); err != nil {
		return UpdateOrderStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("updateStatus", err)
	}

	return UpdateOrderStatusCommand{
		orderID:   orderID,
		requester: requester,
		status:    status,
		note:      strings.TrimSpace(note),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderStatusCommand) Requester() access.Principal {
	return c.requester
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c UpdateOrderStatusCommand) Note() string {
	return c.note
}
