package queries_test

import (
	"testing"

	"meatdelivery/internal/core/application/usecases/queries"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/order/ordertest"
	"meatdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	_, repo := store(t)
	handler := queries.NewGetOrderQueryHandler(repo)

	owner := principal(access.RoleCustomer)
	assignee := principal(access.RoleDeliveryPartner)
	pending := ordertest.Pending(t, owner.ID)
	claimed := ordertest.InStatus(t, owner.ID, assignee.ID, order.PickedUp)
	save(t, repo, pending, claimed)

	tests := []struct {
		name      string
		order     *order.Order
		requester access.Principal
		wantErr   error
	}{
		{"owner reads own order", pending, owner, nil},
		{"other customer is forbidden", pending, principal(access.RoleCustomer), errs.ErrForbidden},
		{"any partner reads an unclaimed order", pending, principal(access.RoleDeliveryPartner), nil},
		{"assignee reads a claimed order", claimed, assignee, nil},
		{"other partner is forbidden on a claimed order", claimed, principal(access.RoleDeliveryPartner), errs.ErrForbidden},
		{"operator reads everything", claimed, principal(access.RoleOperator), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := queries.NewGetOrderQuery(tt.order.ID(), tt.requester)
			require.NoError(t, err)

			got, err := handler.Handle(t.Context(), query)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.IsEqual(tt.order))
			assert.Equal(t, tt.order.Status(), got.Status())
		})
	}
}

func TestGetOrderQueryHandler_NotFound(t *testing.T) {
	_, repo := store(t)
	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), principal(access.RoleOperator))
	require.NoError(t, err)

	_, err = queries.NewGetOrderQueryHandler(repo).Handle(t.Context(), query)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewGetOrderQuery_Invalid(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{}, principal(access.RoleCustomer))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetOrderQuery(kernel.NewUUID(), access.Principal{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	require.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}
