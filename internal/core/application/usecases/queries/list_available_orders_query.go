package queries

import (
	"errors"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/services"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

var ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
	"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
)

// ListAvailableOrdersQuery searches pending orders around a partner's position.
type ListAvailableOrdersQuery struct {
	partner  access.Principal
	location kernel.GeoPoint
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewListAvailableOrdersQuery falls back to services.DefaultSearchRadiusKm when
// radiusKm is zero.
func NewListAvailableOrdersQuery(
	partner access.Principal,
	location kernel.GeoPoint,
	radiusKm float64,
) (ListAvailableOrdersQuery, error) {
	if err := partner.ID.Validate(); err != nil {
		return ListAvailableOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("partner", err)
	}
	if err := location.Validate(); err != nil {
		return ListAvailableOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("location", err)
	}
	if radiusKm == 0 {
		radiusKm = services.DefaultSearchRadiusKm
	}
	if err := services.ValidateRadius(radiusKm); err != nil {
		return ListAvailableOrdersQuery{}, err
	}

	return ListAvailableOrdersQuery{
		partner:  partner,
		location: location,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}

func (q ListAvailableOrdersQuery) Partner() access.Principal {
	return q.partner
}

func (q ListAvailableOrdersQuery) Location() kernel.GeoPoint {
	return q.location
}

func (q ListAvailableOrdersQuery) RadiusKm() float64 {
	return q.radiusKm
}
