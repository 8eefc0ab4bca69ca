package order

import (
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/pkg/errs"
)

// Address is the delivery destination snapshot taken at checkout.
type Address struct {
	Label    string
	Street   string
	City     string
	State    string
	Pincode  string
	Landmark string
	Location kernel.GeoPoint
}

// Validate requires a street, a city and a constructed location.
func (a Address) Validate() error {
	if a.Street == "" {
		return errs.NewValueIsRequiredError("deliveryAddress.street")
	}
	if a.City == "" {
		return errs.NewValueIsRequiredError("deliveryAddress.city")
	}
	if err := a.Location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("deliveryAddress.location", err)
	}
	return nil
}

// Shop is the pickup origin of an order.
type Shop struct {
	Name     string
	Address  string
	Location kernel.GeoPoint
}

func (s Shop) Validate() error {
	if s.Name == "" {
		return errs.NewValueIsRequiredError("shop.name")
	}
	if err := s.Location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shop.location", err)
	}
	return nil
}
