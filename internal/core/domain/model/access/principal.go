package access

import (
	"fmt"
	"strings"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/pkg/errs"
)

// Role is the marketplace role of an authenticated caller.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleDeliveryPartner Role = "delivery_partner"
	RoleOperator        Role = "operator"
)

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleDeliveryPartner, RoleOperator:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

// Principal is the authenticated caller supplied by the identity provider.
type Principal struct {
	ID   kernel.UUID
	Name string
	Role Role
}

// NewPrincipal validates the identity claims of a caller.
func NewPrincipal(id kernel.UUID, name string, role Role) (Principal, error) {
	if err := id.Validate(); err != nil {
		return Principal{}, errs.NewValueIsRequiredErrorWithCause("principal.id", err)
	}
	if err := role.Validate(); err != nil {
		return Principal{}, err
	}
	return Principal{ID: id, Name: strings.TrimSpace(name), Role: role}, nil
}

func (p Principal) IsCustomer() bool {
	return p.Role == RoleCustomer
}

func (p Principal) IsDeliveryPartner() bool {
	return p.Role == RoleDeliveryPartner
}

func (p Principal) IsOperator() bool {
	return p.Role == RoleOperator
}
