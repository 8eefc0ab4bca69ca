package commands

import (
	"errors"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

var ErrToggleAvailabilityCommandIsNotConstructed = errors.New(
	"ToggleAvailabilityCommand must be created via NewToggleAvailabilityCommand constructor",
)

type ToggleAvailabilityCommand struct {
	partner access.Principal

	guard guard.ConstructorGuard
}

func NewToggleAvailabilityCommand(partner access.Principal) (ToggleAvailabilityCommand, error) {
	if err := partner.ID.Validate(); err != nil {
		return ToggleAvailabilityCommand{}, errs.NewValueIsRequiredErrorWithCause("partner", err)
	}
	return ToggleAvailabilityCommand{partner: partner, guard: guard.NewConstructorGuard()}, nil
}

func (c ToggleAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrToggleAvailabilityCommandIsNotConstructed)
}

func (c ToggleAvailabilityCommand) Partner() access.Principal {
	return c.partner
}
