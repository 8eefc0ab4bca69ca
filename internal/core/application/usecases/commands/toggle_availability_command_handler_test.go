package commands_test

import (
	"testing"

	"meatdelivery/internal/core/application/usecases/commands"
	"meatdelivery/internal/core/domain/model/partner"
	"meatdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAvailabilityCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name        string
		available   bool
		want        bool
		wantMessage string
	}{
		{"goes offline", true, false, "You are now unavailable for deliveries"},
		{"comes back", false, true, "You are now available for deliveries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			requester := deliveryPartner()
			cmd, err := commands.NewToggleAvailabilityCommand(requester)
			require.NoError(t, err)

			existing, _ := partner.RestorePartner(requester.ID, requester.Name, nil, tt.available, 0, 0, 1)
			partnerRepo := new(MockPartnerRepository)
			uow := newUoW(ctx, nil, partnerRepo)
			factory := new(MockPartnerUoWFactory)

			factory.On("Create").Return(uow).Once()
			partnerRepo.On("Get", ctx, requester.ID).Return(existing, nil).Once()
			partnerRepo.On("SetAvailability", ctx, existing).Return(nil).Once()
			uow.On("Commit", ctx).Return(nil).Once()

			got, err := commands.NewToggleAvailabilityCommandHandler(factory).Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.IsAvailable)
			assert.Equal(t, tt.wantMessage, got.Message)
			partnerRepo.AssertExpectations(t)
			uow.AssertExpectations(t)
		})
	}
}

func TestToggleAvailabilityCommandHandler_Handle_OnlyPartners(t *testing.T) {
	cmd, _ := commands.NewToggleAvailabilityCommand(customer())
	factory := new(MockPartnerUoWFactory)

	_, err := commands.NewToggleAvailabilityCommandHandler(factory).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}
