package commands_test

import (
	"testing"

	"meatdelivery/internal/core/application/notifications"
	"meatdelivery/internal/core/application/usecases/commands"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/order/ordertest"
	"meatdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_ByOwner(t *testing.T) {
	ctx := t.Context()
	owner := customer()
	pending := ordertest.Pending(t, owner.ID)
	cmd, err := commands.NewCancelOrderCommand(pending.ID(), owner, "ordered by mistake")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := newUoW(ctx, orderRepo, nil)
	factory := new(MockOrderUoWFactory)
	publisher := new(MockPublisher)

	factory.On("Create").Return(uow).Once()
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()
	orderRepo.On("Update", ctx, pending).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, eventNamed(notifications.EventOrderCancelled)).Once()

	cancelled, err := commands.NewCancelOrderCommandHandler(factory, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.Equal(t, "ordered by mistake", cancelled.CancellationReason())
	history := cancelled.StatusHistory()
	assert.Equal(t, "ordered by mistake", history[len(history)-1].Note)
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_ByOperatorAfterClaim(t *testing.T) {
	ctx := t.Context()
	pickingUp := ordertest.InStatus(t, kernel.NewUUID(), kernel.NewUUID(), order.PickingUp)
	cmd, _ := commands.NewCancelOrderCommand(pickingUp.ID(), operator(), "")

	orderRepo := new(MockOrderRepository)
	uow := newUoW(ctx, orderRepo, nil)
	factory := new(MockOrderUoWFactory)
	publisher := new(MockPublisher)

	factory.On("Create").Return(uow).Once()
	orderRepo.On("Get", ctx, pickingUp.ID()).Return(pickingUp, nil).Once()
	orderRepo.On("Update", ctx, pickingUp).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, eventNamed(notifications.EventOrderCancelled)).Once()

	cancelled, err := commands.NewCancelOrderCommandHandler(factory, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	history := cancelled.StatusHistory()
	assert.Equal(t, "Order cancelled", history[len(history)-1].Note)
}

func TestCancelOrderCommandHandler_Handle_Rejected(t *testing.T) {
	owner := customer()

	tests := []struct {
		name    string
		status  order.Status
		byOwner bool
		wantErr error
	}{
		{"after pickup", order.PickedUp, true, errs.ErrInvalidTransition},
		{"delivered", order.Delivered, true, errs.ErrInvalidTransition},
		{"already cancelled", order.Cancelled, true, errs.ErrInvalidTransition},
		{"someone else's order", order.Pending, false, errs.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			o := ordertest.InStatus(t, owner.ID, kernel.NewUUID(), tt.status)
			requester := owner
			if !tt.byOwner {
				requester = customer()
			}
			cmd, _ := commands.NewCancelOrderCommand(o.ID(), requester, "")

			orderRepo := new(MockOrderRepository)
			uow := newUoW(ctx, orderRepo, nil)
			factory := new(MockOrderUoWFactory)
			publisher := new(MockPublisher)

			factory.On("Create").Return(uow).Once()
			orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()

			_, err := commands.NewCancelOrderCommandHandler(factory, publisher).Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}
