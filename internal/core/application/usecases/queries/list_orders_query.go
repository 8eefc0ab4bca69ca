package queries

import (
	"errors"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders visible to requester.
type ListOrdersQuery struct {
	requester access.Principal

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(requester access.Principal) (ListOrdersQuery, error) {
	if err := requester.ID.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("requester", err)
	}
	if err := requester.Role.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Requester() access.Principal {
	return q.requester
}
