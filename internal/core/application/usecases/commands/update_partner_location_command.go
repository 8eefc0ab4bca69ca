package commands

import (
	"errors"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

var ErrUpdatePartnerLocationCommandIsNotConstructed = errors.New(
	"UpdatePartnerLocationCommand must be created via NewUpdatePartnerLocationCommand constructor",
)

// UpdatePartnerLocationCommand is a location ping from a delivery partner's device.
type UpdatePartnerLocationCommand struct {
	partner  access.Principal
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewUpdatePartnerLocationCommand(
	partner access.Principal,
	location kernel.GeoPoint,
) (UpdatePartnerLocationCommand, error) {
	if err := partner.ID.Validate(); err != nil {
		return UpdatePartnerLocationCommand{}, errs.NewValueIsRequiredErrorWithCause("partner", err)
	}
	if err := location.Validate(); err != nil {
		return UpdatePartnerLocationCommand{}, errs.NewValueIsRequiredErrorWithCause("location", err)
	}

	return UpdatePartnerLocationCommand{
		partner:  partner,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePartnerLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePartnerLocationCommandIsNotConstructed)
}

func (c UpdatePartnerLocationCommand) Partner() access.Principal {
	return c.partner
}

func (c UpdatePartnerLocationCommand) Location() kernel.GeoPoint {
	return c.location
}
