package commands

import (
	"context"
	"errors"
	"time"

	"meatdelivery/internal/core/application/notifications"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/ports"
	"meatdelivery/internal/pkg/errs"
)

// maxOrderNumberAttempts bounds the regenerate-and-retry loop on order number
// collisions reported by the unique index.
const maxOrderNumberAttempts = 3

// CreateOrderCommandHandler prices and stores a new pending order, then announces
// it to every connected delivery partner.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	shop       order.Shop
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	shop order.Shop,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		shop:       shop,
	}
}

// Handle creates the order. Only customers place orders. Each attempt runs in its
// own transaction so a duplicate-number failure never poisons the next one.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.RequireRole(cmd.Customer(), "create_order", access.RoleCustomer); err != nil {
		return nil, err
	}

	var err error
	for range maxOrderNumberAttempts {
		var created *order.Order
		created, err = h.place(ctx, cmd)
		if err == nil {
			h.publisher.Publish(ctx, notifications.NewOrder(created))
			return created, nil
		}
		if !errors.Is(err, errs.ErrObjectAlreadyExists) {
			return nil, err
		}
	}

	return nil, err
}

func (h CreateOrderCommandHandler) place(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	now := time.Now().UTC()
	created, err := order.NewOrder(kernel.NewUUID(), order.NewNumber(now), cmd.Placement(h.shop), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
