package services

import (
	"slices"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/pkg/errs"
)

const (
	// DefaultSearchRadiusKm is used when a partner does not pass a radius.
	DefaultSearchRadiusKm = 10.0
	// MaxSearchRadiusKm bounds the bounding-box scan.
	MaxSearchRadiusKm = 100.0
	// PageSize caps every proximity result.
	PageSize = 20
)

// GeoField selects which indexed point of an order a search is made against.
type GeoField int

const (
	DeliveryDestination GeoField = iota
	ShopOrigin
)

func (f GeoField) String() string {
	if f == ShopOrigin {
		return "shop_origin"
	}
	return "delivery_destination"
}

// Point returns the selected point of o.
func (f GeoField) Point(o *order.Order) kernel.GeoPoint {
	if f == ShopOrigin {
		return o.Shop().Location
	}
	return o.DeliveryAddress().Location
}

// RankedOrder is an order with its great-circle distance to the search center.
type RankedOrder struct {
	Order      *order.Order
	DistanceKm float64
}

// OrderMatcher ranks candidate orders by distance. Storage narrows the candidates
// with an indexed bounding box; the matcher applies the exact radius.
type OrderMatcher struct{}

func NewOrderMatcher() OrderMatcher {
	return OrderMatcher{}
}

// ValidateRadius rejects non-positive radii and radii above MaxSearchRadiusKm.
func ValidateRadius(radiusKm float64) error {
	if radiusKm <= 0 || radiusKm > MaxSearchRadiusKm {
		return errs.NewValueIsOutOfRangeError("radius", radiusKm, 0, MaxSearchRadiusKm)
	}
	return nil
}

// Near keeps the candidates within radiusKm of center that satisfy keep, sorted by
// ascending distance and capped at PageSize. Ties are broken by creation time so
// the ranking is stable.
func (m OrderMatcher) Near(
	center kernel.GeoPoint,
	radiusKm float64,
	field GeoField,
	candidates []*order.Order,
	keep func(*order.Order) bool,
) ([]RankedOrder, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateRadius(radiusKm); err != nil {
		return nil, err
	}

	ranked := make([]RankedOrder, 0, len(candidates))
	for _, o := range candidates {
		if keep != nil && !keep(o) {
			continue
		}
		d := center.DistanceKm(field.Point(o))
		if d > radiusKm {
			continue
		}
		ranked = append(ranked, RankedOrder{Order: o, DistanceKm: d})
	}

	slices.SortStableFunc(ranked, func(a, b RankedOrder) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return a.Order.CreatedAt().Compare(b.Order.CreatedAt())
		}
	})

	if len(ranked) > PageSize {
		ranked = ranked[:PageSize]
	}
	return ranked, nil
}
