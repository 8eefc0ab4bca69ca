package ports

import (
	"context"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partner profiles.
type PartnerRepository interface {
	Add(ctx context.Context, aggregate *partner.Partner) error

	// Each write below touches only its own columns. They never conflict with one
	// another, so a toggle racing a delivery score keeps both changes.

	// UpdateLocation overwrites the current position. Location pings are
	// last-write-wins.
	UpdateLocation(ctx context.Context, aggregate *partner.Partner) error

	// SetAvailability overwrites the availability flag with the aggregate's value.
	SetAvailability(ctx context.Context, aggregate *partner.Partner) error

	// RecordDelivery increments the stored delivery counter by one.
	RecordDelivery(ctx context.Context, aggregate *partner.Partner) error

	// ApplyDeliveryScore folds score into the stored rating against the stored
	// delivery counter.
	ApplyDeliveryScore(ctx context.Context, aggregate *partner.Partner, score int) error

	Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error)
}
