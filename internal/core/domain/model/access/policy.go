package access

import (
	"fmt"
	"slices"

	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/pkg/errs"
)

// Operation is an action a principal performs on an existing order.
type Operation string

const (
	Read         Operation = "read"
	Cancel       Operation = "cancel"
	UpdateStatus Operation = "update_status"
	Rate         Operation = "rate"
)

// Authorize is the single role policy for order operations:
//
//	read           customer: own orders; partner: assigned to self or still unclaimed; operator: all
//	cancel         owning customer or operator
//	update_status  assigned partner or operator
//	rate           owning customer only
//
// It returns nil when allowed and a ForbiddenError otherwise.
func Authorize(p Principal, o *order.Order, op Operation) error {
	if allowed(p, o, op) {
		return nil
	}
	return errs.NewForbiddenErrorWithCause(string(op),
		fmt.Errorf("%s %s may not %s order %s", p.Role, p.ID, op, o.Number()))
}

// RequireRole allows the operation only for the listed roles.
func RequireRole(p Principal, op string, roles ...Role) error {
	if slices.Contains(roles, p.Role) {
		return nil
	}
	return errs.NewForbiddenErrorWithCause(op, fmt.Errorf("role %q is not allowed", string(p.Role)))
}

func allowed(p Principal, o *order.Order, op Operation) bool {
	owner := p.IsCustomer() && o.CustomerID().IsEqual(p.ID)
	assignee := p.IsDeliveryPartner() && o.IsAssignedTo(p.ID)

	switch op {
	case Read:
		unclaimed := p.IsDeliveryPartner() && o.DeliveryPartner() == nil && o.Status() == order.Pending
		return p.IsOperator() || owner || assignee || unclaimed
	case Cancel:
		return p.IsOperator() || owner
	case UpdateStatus:
		return p.IsOperator() || assignee
	case Rate:
		return owner
	default:
		return false
	}
}
