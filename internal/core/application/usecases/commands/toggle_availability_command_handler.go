package commands

import (
	"context"

	"meatdelivery/internal/core/domain/model/access"
)

// Availability is the partner's flag after a toggle together with a message for the
// partner's device.
type Availability struct {
	IsAvailable bool
	Message     string
}

type ToggleAvailabilityCommandHandler struct {
	uowFactory PartnerUoWFactory
}

func NewToggleAvailabilityCommandHandler(uowFactory PartnerUoWFactory) ToggleAvailabilityCommandHandler {
	return ToggleAvailabilityCommandHandler{uowFactory: uowFactory}
}

func (h ToggleAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd ToggleAvailabilityCommand,
) (Availability, error) {
	if err := cmd.Validate(); err != nil {
		return Availability{}, err
	}
	if err := access.RequireRole(cmd.Partner(), "toggle_availability", access.RoleDeliveryPartner); err != nil {
		return Availability{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Availability{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerRepo := uow.PartnerRepository()

	p, err := registeredPartner(ctx, partnerRepo, cmd.Partner())
	if err != nil {
		return Availability{}, err
	}

	available := p.ToggleAvailability()
	if err = partnerRepo.SetAvailability(ctx, p); err != nil {
		return Availability{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Availability{}, err
	}

	message := "You are now unavailable for deliveries"
	if available {
		message = "You are now available for deliveries"
	}
	return Availability{IsAvailable: available, Message: message}, nil
}
