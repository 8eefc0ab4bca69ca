package services_test

import (
	"testing"
	"time"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/order/ordertest"
	"meatdelivery/internal/core/domain/model/partner"
	"meatdelivery/internal/core/domain/services"
	"meatdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDispatcher_Dispatch(t *testing.T) {
	t.Run("assigns the order and marks the partner busy", func(t *testing.T) {
		o := ordertest.Pending(t, kernel.NewUUID())
		p, _ := partner.NewPartner(kernel.NewUUID(), "Ravi")

		err := services.NewOrderDispatcher().Dispatch(o, p, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.IsAssignedTo(p.ID()))
		assert.False(t, p.IsAvailable())
	})

	t.Run("loser keeps its availability", func(t *testing.T) {
		o := ordertest.Pending(t, kernel.NewUUID())
		winner, _ := partner.NewPartner(kernel.NewUUID(), "Ravi")
		loser, _ := partner.NewPartner(kernel.NewUUID(), "Asha")
		dispatcher := services.NewOrderDispatcher()

		require.NoError(t, dispatcher.Dispatch(o, winner, time.Now()))
		err := dispatcher.Dispatch(o, loser, time.Now())

		require.ErrorIs(t, err, errs.ErrAlreadyAssigned)
		assert.True(t, loser.IsAvailable())
		assert.True(t, o.IsAssignedTo(winner.ID()))
	})

	t.Run("requires a partner", func(t *testing.T) {
		o := ordertest.Pending(t, kernel.NewUUID())
		require.ErrorIs(t, services.NewOrderDispatcher().Dispatch(o, nil, time.Now()), services.ErrPartnerIsRequired)
	})
}

func TestOrderDispatcher_CompleteDelivery(t *testing.T) {
	p, _ := partner.NewPartner(kernel.NewUUID(), "Ravi")
	o := ordertest.InStatus(t, kernel.NewUUID(), p.ID(), order.InTransit)

	require.NoError(t, services.NewOrderDispatcher().CompleteDelivery(o, p, "", time.Now()))

	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, 1, p.TotalDeliveries())

	err := services.NewOrderDispatcher().CompleteDelivery(o, p, "", time.Now())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, 1, p.TotalDeliveries())
}
