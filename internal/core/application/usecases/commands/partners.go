package commands

import (
	"context"
	"errors"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/partner"
	"meatdelivery/internal/core/ports"
	"meatdelivery/internal/pkg/errs"
)

var errConcurrentModification = errors.New("order was modified concurrently")

// registeredPartner loads the profile of the calling delivery partner, registering
// it on first use. Partner identities are issued externally, so the profile is
// created from the principal's claims.
func registeredPartner(
	ctx context.Context,
	repo ports.PartnerRepository,
	principal access.Principal,
) (*partner.Partner, error) {
	p, err := repo.Get(ctx, principal.ID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	name := principal.Name
	if name == "" {
		name = "Delivery partner"
	}
	p, err = partner.NewPartner(principal.ID, name)
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// updateOrder writes o and reports a lost compare-and-swap as an invalid
// transition out of the status the caller observed.
func updateOrder(ctx context.Context, repo ports.OrderRepository, o *order.Order, observed order.Status) error {
	err := repo.Update(ctx, o)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return errs.NewInvalidTransitionErrorWithCause(observed.String(), o.Status().String(), errConcurrentModification)
	}
	return err
}
