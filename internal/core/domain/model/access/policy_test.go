package access_test

import (
	"testing"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/order/ordertest"
	"meatdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principal(t *testing.T, role access.Role) access.Principal {
	t.Helper()
	p, err := access.NewPrincipal(kernel.NewUUID(), "someone", role)
	require.NoError(t, err)
	return p
}

func TestAuthorize(t *testing.T) {
	customer := principal(t, access.RoleCustomer)
	otherCustomer := principal(t, access.RoleCustomer)
	assignee := principal(t, access.RoleDeliveryPartner)
	otherPartner := principal(t, access.RoleDeliveryPartner)
	operator := principal(t, access.RoleOperator)

	pending := ordertest.Pending(t, customer.ID)
	assigned := ordertest.InStatus(t, customer.ID, assignee.ID, order.PickingUp)

	tests := []struct {
		name    string
		who     access.Principal
		order   *order.Order
		op      access.Operation
		allowed bool
	}{
		{"owner reads", customer, assigned, access.Read, true},
		{"other customer reads", otherCustomer, assigned, access.Read, false},
		{"assignee reads", assignee, assigned, access.Read, true},
		{"other partner reads assigned order", otherPartner, assigned, access.Read, false},
		{"partner reads unclaimed order", otherPartner, pending, access.Read, true},
		{"operator reads", operator, assigned, access.Read, true},

		{"owner cancels", customer, pending, access.Cancel, true},
		{"operator cancels", operator, assigned, access.Cancel, true},
		{"assignee cancels", assignee, assigned, access.Cancel, false},
		{"other customer cancels", otherCustomer, pending, access.Cancel, false},

		{"assignee updates status", assignee, assigned, access.UpdateStatus, true},
		{"operator updates status", operator, assigned, access.UpdateStatus, true},
		{"other partner updates status", otherPartner, assigned, access.UpdateStatus, false},
		{"owner updates status", customer, assigned, access.UpdateStatus, false},

		{"owner rates", customer, assigned, access.Rate, true},
		{"operator rates", operator, assigned, access.Rate, false},
		{"assignee rates", assignee, assigned, access.Rate, false},

		{"unknown operation", operator, assigned, access.Operation("delete"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := access.Authorize(tc.who, tc.order, tc.op)
			if tc.allowed {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrForbidden)
		})
	}
}

func TestRequireRole(t *testing.T) {
	customer := principal(t, access.RoleCustomer)

	require.NoError(t, access.RequireRole(customer, "create_order", access.RoleCustomer))
	err := access.RequireRole(customer, "accept_order", access.RoleDeliveryPartner)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Contains(t, err.Error(), "accept_order")
}

func TestNewPrincipal(t *testing.T) {
	_, err := access.NewPrincipal(kernel.NewUUID(), "x", access.Role("admin"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = access.NewPrincipal(kernel.UUID{}, "x", access.RoleCustomer)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
