package commands

import (
	"context"
	"time"

	"meatdelivery/internal/core/application/notifications"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order for its customer or an operator.
// A partner who already claimed the order keeps the availability flag it had.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	cancelled, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = access.Authorize(cmd.Requester(), cancelled, access.Cancel); err != nil {
		return nil, err
	}

	observed := cancelled.Status()
	if err = cancelled.Cancel(cmd.Reason(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = updateOrder(ctx, orderRepo, cancelled, observed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, notifications.OrderCancelled(cancelled))
	return cancelled, nil
}
