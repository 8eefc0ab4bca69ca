package commands

import (
	"context"
	"time"

	"meatdelivery/internal/core/application/notifications"
	"meatdelivery/internal/core/ports"
)

type RebroadcastPendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

func NewRebroadcastPendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) RebroadcastPendingOrdersCommandHandler {
	return RebroadcastPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle publishes a new-order event for every selected order and returns how many
// were published.
func (h RebroadcastPendingOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd RebroadcastPendingOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	before := time.Now().UTC().Add(-cmd.StaleAfter())
	pending, err := uow.OrderRepository().ListPendingCreatedBefore(ctx, before, cmd.Limit())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, o := range pending {
		h.publisher.Publish(ctx, notifications.NewOrder(o))
	}
	return len(pending), nil
}
