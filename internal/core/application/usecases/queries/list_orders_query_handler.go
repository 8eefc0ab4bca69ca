package queries

import (
	"context"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/ports"
)

type ListOrdersQueryHandler struct {
	orders ports.OrderRepository
}

func NewListOrdersQueryHandler(orders ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle returns, newest first, the customer's own orders, the partner's assigned
// orders or every order for an operator.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requester := query.Requester()
	switch requester.Role {
	case access.RoleCustomer:
		return h.orders.ListByCustomer(ctx, requester.ID)
	case access.RoleDeliveryPartner:
		return h.orders.ListByPartner(ctx, requester.ID)
	default:
		return h.orders.ListAll(ctx)
	}
}
