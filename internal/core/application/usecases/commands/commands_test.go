package commands_test

import (
	"testing"

	"meatdelivery/internal/core/application/usecases/commands"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/order/ordertest"
	"meatdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	placement := ordertest.Placement(t, kernel.NewUUID())

	t.Run("defaults to cash", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(customer(), placement.Items, placement.DeliveryAddress,
			order.UnknownPaymentMethod, "  no ice  ")
		require.NoError(t, err)
		assert.Equal(t, order.Cash, cmd.PaymentMethod())
		assert.Equal(t, "no ice", cmd.SpecialInstructions())
	})

	t.Run("requires items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(customer(), nil, placement.DeliveryAddress, order.Cash, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires an address", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(customer(), placement.Items, order.Address{}, order.Cash, "")
		require.Error(t, err)
	})

	t.Run("requires a customer", func(t *testing.T) {
		p := customer()
		p.ID = kernel.UUID{}
		_, err := commands.NewCreateOrderCommand(p, placement.Items, placement.DeliveryAddress, order.Cash, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCommands_ZeroValueIsNotConstructed(t *testing.T) {
	tests := []struct {
		name    string
		cmd     interface{ Validate() error }
		wantErr error
	}{
		{"accept", commands.AcceptOrderCommand{}, commands.ErrAcceptOrderCommandIsNotConstructed},
		{"status", commands.UpdateOrderStatusCommand{}, commands.ErrUpdateOrderStatusCommandIsNotConstructed},
		{"cancel", commands.CancelOrderCommand{}, commands.ErrCancelOrderCommandIsNotConstructed},
		{"rate", commands.RateOrderCommand{}, commands.ErrRateOrderCommandIsNotConstructed},
		{"location", commands.UpdatePartnerLocationCommand{}, commands.ErrUpdatePartnerLocationCommandIsNotConstructed},
		{"toggle", commands.ToggleAvailabilityCommand{}, commands.ErrToggleAvailabilityCommandIsNotConstructed},
		{"rebroadcast", commands.RebroadcastPendingOrdersCommand{}, commands.ErrRebroadcastPendingOrdersCommandIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.cmd.Validate(), tt.wantErr)
		})
	}
}

func TestNewUpdateOrderStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), deliveryPartner(), order.Unknown, "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
