package commands

import (
	"context"
	"time"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/order"
)

// RateOrderCommandHandler records the rating of a delivered order and folds the
// delivery score into the partner's running average.
type RateOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewRateOrderCommandHandler(uowFactory UoWFactory) RateOrderCommandHandler {
	return RateOrderCommandHandler{uowFactory: uowFactory}
}

func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*order.Order, error) {
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

	rated, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = access.Authorize(cmd.Requester(), rated, access.Rate); err != nil {
		return nil, err
	}

	rating := cmd.Rating()
	if err = rated.Rate(rating, time.Now().UTC()); err != nil {
		return nil, err
	}

	if partnerID := rated.DeliveryPartner(); partnerID != nil && rating.Delivery != nil {
		partnerRepo := uow.PartnerRepository()
		p, getErr := partnerRepo.Get(ctx, *partnerID)
		if getErr != nil {
			return nil, getErr
		}
		if err = p.ApplyDeliveryScore(*rating.Delivery); err != nil {
			return nil, err
		}
		if err = partnerRepo.ApplyDeliveryScore(ctx, p, *rating.Delivery); err != nil {
			return nil, err
		}
	}

	if err = updateOrder(ctx, orderRepo, rated, order.Delivered); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return rated, nil
}
