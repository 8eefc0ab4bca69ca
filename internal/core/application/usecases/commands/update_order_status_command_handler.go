package commands

import (
	"context"
	"time"

	"meatdelivery/internal/core/application/notifications"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/services"
	"meatdelivery/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies a status update by the assigned partner
// or an operator. Entering delivered also counts the delivery on the partner's
// profile in the same transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
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

	updated, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = access.Authorize(cmd.Requester(), updated, access.UpdateStatus); err != nil {
		return nil, err
	}

	observed := updated.Status()
	now := time.Now().UTC()

	if cmd.Status() == order.Delivered && updated.DeliveryPartner() != nil {
		partnerRepo := uow.PartnerRepository()
		p, getErr := partnerRepo.Get(ctx, *updated.DeliveryPartner())
		if getErr != nil {
			return nil, getErr
		}
		if err = services.NewOrderDispatcher().CompleteDelivery(updated, p, cmd.Note(), now); err != nil {
			return nil, err
		}
		if err = partnerRepo.RecordDelivery(ctx, p); err != nil {
			return nil, err
		}
	} else if err = updated.AdvanceStatus(cmd.Status(), cmd.Note(), now); err != nil {
		return nil, err
	}

	if err = updateOrder(ctx, orderRepo, updated, observed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, notifications.OrderStatusUpdated(updated))
	return updated, nil
}
