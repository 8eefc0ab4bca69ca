package queries

import (
	"context"

	"meatdelivery/internal/core/domain/model/access"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/services"
	"meatdelivery/internal/core/ports"
)

// candidateLimit bounds the rows fetched by the bounding-box scan. The store returns
// the nearest candidates first, so the page is taken from the closest orders.
const candidateLimit = 100

// ListAvailableOrdersQueryHandler is the read side of the geo-index. The store
// narrows pending orders with a bounding box on the delivery destination, nearest
// first, and the matcher applies the exact radius and ranking.
type ListAvailableOrdersQueryHandler struct {
	orders  ports.OrderRepository
	matcher services.OrderMatcher
}

func NewListAvailableOrdersQueryHandler(orders ports.OrderRepository) ListAvailableOrdersQueryHandler {
	return ListAvailableOrdersQueryHandler{
		orders:  orders,
		matcher: services.NewOrderMatcher(),
	}
}

// Handle returns at most services.PageSize pending orders, nearest first.
func (h ListAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableOrdersQuery,
) ([]services.RankedOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := access.RequireRole(query.Partner(), "list_available_orders", access.RoleDeliveryPartner); err != nil {
		return nil, err
	}

	center := query.Location()
	candidates, err := h.orders.ListPendingWithin(ctx,
		services.DeliveryDestination, center, query.RadiusKm(), candidateLimit)
	if err != nil {
		return nil, err
	}

	return h.matcher.Near(center, query.RadiusKm(), services.DeliveryDestination, candidates,
		func(o *order.Order) bool { return o.Status() == order.Pending })
}
