package commands

import (
	"context"
	"errors"
	"time"

	"meatdelivery/internal/core/application/notifications"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/services"
	"meatdelivery/internal/core/ports"
	"meatdelivery/internal/pkg/errs"
)

// AcceptOrderCommandHandler resolves concurrent claims on a pending order. The order
// write is a compare-and-swap on its version, so among any number of concurrent
// callers exactly one commits and every other one receives an AlreadyAssignedError.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(uowFactory, publisher)
//	accepted, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrAlreadyAssigned):
//	    // somebody else was faster
//	case err != nil:
//	    return err
//	}
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewAcceptOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle claims the order for the calling partner and marks the partner unavailable.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.RequireRole(cmd.Partner(), "accept_order", access.RoleDeliveryPartner); err != nil {
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
	partnerRepo := uow.PartnerRepository()

	claimed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	p, err := registeredPartner(ctx, partnerRepo, cmd.Partner())
	if err != nil {
		return nil, err
	}

	if err = services.NewOrderDispatcher().Dispatch(claimed, p, time.Now().UTC()); err != nil {
		return nil, err
	}

	err = orderRepo.Update(ctx, claimed)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return nil, errs.NewAlreadyAssignedError(claimed.Number())
	}
	if err != nil {
		return nil, err
	}

	if err = partnerRepo.SetAvailability(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, notifications.OrderAccepted(claimed, p))
	return claimed, nil
}
