package commands

import (
	"errors"
	"slices"
	"strings"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a customer's checkout: the basket, where to deliver it and
// how it will be paid.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customer, items, address, order.Cash, "ring twice")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	customer            access.Principal
	items               []order.Item
	deliveryAddress     order.Address
	paymentMethod       order.PaymentMethod
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout input. An unknown payment method
// falls back to cash.
func NewCreateOrderCommand(
	customer access.Principal,
	items []order.Item,
	deliveryAddress order.Address,
	paymentMethod order.PaymentMethod,
	specialInstructions string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		paymentMethod:       paymentMethod,
		specialInstructions: strings.TrimSpace(specialInstructions),
		guard:               guard.NewConstructorGuard(),
	}
	if cmd.paymentMethod == order.UnknownPaymentMethod {
		cmd.paymentMethod = order.Cash
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setItems(items),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.paymentMethod.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Customer() access.Principal {
	return c.customer
}

func (c CreateOrderCommand) Items() []order.Item {
	return slices.Clone(c.items)
}

func (c CreateOrderCommand) DeliveryAddress() order.Address {
	return c.deliveryAddress
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c CreateOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

// Placement combines the checkout with the shop the order is picked up from.
func (c CreateOrderCommand) Placement(shop order.Shop) order.Placement {
	return order.Placement{
		CustomerID:          c.customer.ID,
		Items:               c.Items(),
		DeliveryAddress:     c.deliveryAddress,
		Shop:                shop,
		PaymentMethod:       c.paymentMethod,
		SpecialInstructions: c.specialInstructions,
	}
}

func (c *CreateOrderCommand) setCustomer(customer access.Principal) error {
	if err := customer.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = slices.Clone(items)
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.deliveryAddress = address
	return nil
}
