package commands

import (
	"context"

	"meatdelivery/internal/core/application/notifications"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/ports"
)

// UpdatePartnerLocationCommandHandler overwrites the partner's position and fans it
// out to the room of every order the partner is currently delivering.
type UpdatePartnerLocationCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewUpdatePartnerLocationCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) UpdatePartnerLocationCommandHandler {
	return UpdatePartnerLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h UpdatePartnerLocationCommandHandler) Handle(ctx context.Context, cmd UpdatePartnerLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := access.RequireRole(cmd.Partner(), "update_location", access.RoleDeliveryPartner); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerRepo := uow.PartnerRepository()

	p, err := registeredPartner(ctx, partnerRepo, cmd.Partner())
	if err != nil {
		return err
	}
	if err = p.UpdateLocation(cmd.Location()); err != nil {
		return err
	}
	if err = partnerRepo.UpdateLocation(ctx, p); err != nil {
		return err
	}

	active, err := uow.OrderRepository().ListActiveByPartner(ctx, p.ID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, o := range active {
		h.publisher.Publish(ctx, notifications.PartnerLocationUpdate(o, cmd.Location()))
	}
	return nil
}
