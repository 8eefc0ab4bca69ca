package ports

import (
	"context"
	"time"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/services"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. A duplicate order number is reported as an
	// ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update is a compare-and-swap on the order version: the write only succeeds
	// when the stored version equals aggregate.Version(), after which the
	// aggregate's version is advanced. A miss is reported as a VersionIsInvalidError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves the complete order with its items and status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByCustomer, ListByPartner and ListAll return orders newest first.
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)
	ListByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)
	ListAll(ctx context.Context) ([]*order.Order, error)

	// ListActiveByPartner returns the partner's orders between assigned and in_transit.
	ListActiveByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)

	// ListPendingWithin returns at most limit pending orders whose selected point lies
	// in the bounding box of the radius around center, nearest first by approximate
	// distance. The exact radius is applied by services.OrderMatcher.
	ListPendingWithin(
		ctx context.Context,
		field services.GeoField,
		center kernel.GeoPoint,
		radiusKm float64,
		limit int,
	) ([]*order.Order, error)

	// ListPendingCreatedBefore returns at most limit pending orders created before
	// the given time, oldest first.
	ListPendingCreatedBefore(ctx context.Context, before time.Time, limit int) ([]*order.Order, error)
}
