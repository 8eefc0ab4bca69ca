package commands_test

import (
	"testing"

	"meatdelivery/internal/core/application/notifications"
	"meatdelivery/internal/core/application/usecases/commands"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/order/ordertest"
	"meatdelivery/internal/core/domain/model/partner"
	"meatdelivery/internal/core/ports"
	"meatdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_Handle_Advance(t *testing.T) {
	ctx := t.Context()
	requester := deliveryPartner()
	assigned := ordertest.InStatus(t, kernel.NewUUID(), requester.ID, order.Assigned)
	cmd, err := commands.NewUpdateOrderStatusCommand(assigned.ID(), requester, order.PartnerAccepted, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := newUoW(ctx, orderRepo, nil)
	factory := new(MockUoWFactory)
	publisher := new(MockPublisher)

	factory.On("Create").Return(uow).Once()
	orderRepo.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once()
	orderRepo.On("Update", ctx, assigned).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.Event) bool {
		data, ok := e.Data.(notifications.OrderStatusUpdatedData)
		return ok && e.Topic == notifications.OrderTopic(assigned.ID()) && data.Status == "partner_accepted"
	})).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PartnerAccepted, updated.Status())
	history := updated.StatusHistory()
	assert.Equal(t, "Order status updated to partner_accepted", history[len(history)-1].Note)
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_Delivered(t *testing.T) {
	ctx := t.Context()
	requester := deliveryPartner()
	inTransit := ordertest.InStatus(t, kernel.NewUUID(), requester.ID, order.InTransit)
	cmd, _ := commands.NewUpdateOrderStatusCommand(inTransit.ID(), requester, order.Delivered, "left at the door")

	assignee, _ := partner.RestorePartner(requester.ID, requester.Name, nil, false, 4, 7, 3)
	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := newUoW(ctx, orderRepo, partnerRepo)
	factory := new(MockUoWFactory)
	publisher := new(MockPublisher)

	factory.On("Create").Return(uow).Once()
	orderRepo.On("Get", ctx, inTransit.ID()).Return(inTransit, nil).Once()
	partnerRepo.On("Get", ctx, requester.ID).Return(assignee, nil).Once()
	partnerRepo.On("RecordDelivery", ctx, assignee).Return(nil).Once()
	orderRepo.On("Update", ctx, inTransit).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, eventNamed(notifications.EventOrderStatusUpdated)).Once()

	updated, err := commands.NewUpdateOrderStatusCommandHandler(factory, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, updated.Status())
	assert.NotNil(t, updated.ActualDeliveryTime())
	assert.Equal(t, order.PaymentPaid, updated.PaymentStatus())
	assert.Equal(t, 8, assignee.TotalDeliveries())
	assert.False(t, assignee.IsAvailable())
	partnerRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_Rejected(t *testing.T) {
	assignee := deliveryPartner()

	tests := []struct {
		name      string
		requester func() access.Principal
		status    order.Status
		wantErr   error
	}{
		{"skipping a step", func() access.Principal { return assignee }, order.PickedUp, errs.ErrInvalidTransition},
		{"assigned is set by accept only", func() access.Principal { return operator() }, order.Assigned, errs.ErrInvalidTransition},
		{"cancelled is set by cancel only", func() access.Principal { return assignee }, order.Cancelled, errs.ErrInvalidTransition},
		{"another partner", deliveryPartner, order.PartnerAccepted, errs.ErrForbidden},
		{"the customer", customer, order.PartnerAccepted, errs.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			assigned := ordertest.InStatus(t, kernel.NewUUID(), assignee.ID, order.Assigned)
			cmd, err := commands.NewUpdateOrderStatusCommand(assigned.ID(), tt.requester(), tt.status, "")
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			uow := newUoW(ctx, orderRepo, nil)
			factory := new(MockUoWFactory)
			publisher := new(MockPublisher)

			factory.On("Create").Return(uow).Once()
			orderRepo.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once()

			_, err = commands.NewUpdateOrderStatusCommandHandler(factory, publisher).Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, order.Assigned, assigned.Status())
			orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateOrderStatusCommandHandler_Handle_ConcurrentModification(t *testing.T) {
	ctx := t.Context()
	requester := deliveryPartner()
	assigned := ordertest.InStatus(t, kernel.NewUUID(), requester.ID, order.Assigned)
	cmd, _ := commands.NewUpdateOrderStatusCommand(assigned.ID(), requester, order.PartnerAccepted, "")

	orderRepo := new(MockOrderRepository)
	uow := newUoW(ctx, orderRepo, nil)
	factory := new(MockUoWFactory)
	publisher := new(MockPublisher)

	factory.On("Create").Return(uow).Once()
	orderRepo.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once()
	orderRepo.On("Update", ctx, assigned).Return(errs.NewVersionIsInvalidError("version")).Once()

	_, err := commands.NewUpdateOrderStatusCommandHandler(factory, publisher).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.ErrorContains(t, err, "order was modified concurrently")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
