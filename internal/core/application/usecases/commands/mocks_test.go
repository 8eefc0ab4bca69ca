package commands_test

import (
	"context"
	"time"

	"meatdelivery/internal/core/application/usecases/commands"
	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/partner"
	"meatdelivery/internal/core/domain/services"
	"meatdelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return orders(args)
}

func (m *MockOrderRepository) ListByPartner(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return orders(args)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return orders(args)
}

func (m *MockOrderRepository) ListActiveByPartner(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return orders(args)
}

func (m *MockOrderRepository) ListPendingWithin(
	ctx context.Context,
	field services.GeoField,
	center kernel.GeoPoint,
	radiusKm float64,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, field, center, radiusKm, limit)
	return orders(args)
}

func (m *MockOrderRepository) ListPendingCreatedBefore(
	ctx context.Context,
	before time.Time,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, before, limit)
	return orders(args)
}

func orders(args mock.Arguments) ([]*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) SetAvailability(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) RecordDelivery(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) ApplyDeliveryScore(ctx context.Context, p *partner.Partner, score int) error {
	args := m.Called(ctx, p, score)
	return args.Error(0)
}

func (m *MockPartnerRepository) UpdateLocation(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

// MockUoW satisfies commands.UoW, commands.OrderUoW and commands.PartnerUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPartnerUoWFactory struct{ mock.Mock }

func (m *MockPartnerUoWFactory) Create() commands.PartnerUoW {
	args := m.Called()
	return args.Get(0).(commands.PartnerUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event ports.Event) {
	m.Called(ctx, event)
}

func eventNamed(name string) any {
	return mock.MatchedBy(func(e ports.Event) bool { return e.Name == name })
}

// newUoW wires a MockUoW with permissive transaction expectations and the given
// repositories.
func newUoW(ctx context.Context, orderRepo *MockOrderRepository, partnerRepo *MockPartnerRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	if orderRepo != nil {
		uow.On("OrderRepository").Return(orderRepo)
	}
	if partnerRepo != nil {
		uow.On("PartnerRepository").Return(partnerRepo)
	}
	return uow
}

func customer() access.Principal {
	return access.Principal{ID: kernel.NewUUID(), Name: "Anita", Role: access.RoleCustomer}
}

func deliveryPartner() access.Principal {
	return access.Principal{ID: kernel.NewUUID(), Name: "Ravi", Role: access.RoleDeliveryPartner}
}

func operator() access.Principal {
	return access.Principal{ID: kernel.NewUUID(), Name: "Ops", Role: access.RoleOperator}
}
