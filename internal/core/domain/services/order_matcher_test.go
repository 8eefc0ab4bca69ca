package services_test

import (
	"testing"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/order/ordertest"
	"meatdelivery/internal/core/domain/services"
	"meatdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kmNorth returns the latitude that lies km kilometers north of lat.
func kmNorth(lat, km float64) float64 {
	return lat + km/111.195
}

func TestOrderMatcher_Near(t *testing.T) {
	center, _ := kernel.NewGeoPoint(77.2090, 28.6139)
	customer := kernel.NewUUID()

	far := ordertest.PendingAt(t, customer, 77.2090, kmNorth(28.6139, 8))
	near := ordertest.PendingAt(t, customer, 77.2090, kmNorth(28.6139, 1))
	mid := ordertest.PendingAt(t, customer, 77.2090, kmNorth(28.6139, 4))
	outside := ordertest.PendingAt(t, customer, 77.2090, kmNorth(28.6139, 12))

	ranked, err := services.NewOrderMatcher().Near(center, 10, services.DeliveryDestination,
		[]*order.Order{far, near, outside, mid}, nil)

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.True(t, ranked[0].Order.IsEqual(near))
	assert.True(t, ranked[1].Order.IsEqual(mid))
	assert.True(t, ranked[2].Order.IsEqual(far))
	assert.InDelta(t, 1.0, ranked[0].DistanceKm, 0.01)
}

func TestOrderMatcher_Near_Predicate(t *testing.T) {
	center, _ := kernel.NewGeoPoint(77.2090, 28.6139)
	pending := ordertest.Pending(t, kernel.NewUUID())
	claimed := ordertest.InStatus(t, kernel.NewUUID(), kernel.NewUUID(), order.Assigned)

	ranked, err := services.NewOrderMatcher().Near(center, 10, services.DeliveryDestination,
		[]*order.Order{claimed, pending},
		func(o *order.Order) bool { return o.Status() == order.Pending })

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.True(t, ranked[0].Order.IsEqual(pending))
}

func TestOrderMatcher_Near_PageSize(t *testing.T) {
	center, _ := kernel.NewGeoPoint(77.2090, 28.6139)

	candidates := make([]*order.Order, 0, 30)
	for i := range 30 {
		candidates = append(candidates, ordertest.PendingAt(t, kernel.NewUUID(), 77.2090, kmNorth(28.6139, float64(i)*0.1)))
	}

	ranked, err := services.NewOrderMatcher().Near(center, 10, services.DeliveryDestination, candidates, nil)

	require.NoError(t, err)
	require.Len(t, ranked, services.PageSize)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].DistanceKm, ranked[i].DistanceKm)
	}
}

func TestOrderMatcher_Near_ShopOrigin(t *testing.T) {
	shop := ordertest.Shop(t).Location
	o := ordertest.PendingAt(t, kernel.NewUUID(), 10, 10)

	ranked, err := services.NewOrderMatcher().Near(shop, 1, services.ShopOrigin, []*order.Order{o}, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	ranked, err = services.NewOrderMatcher().Near(shop, 1, services.DeliveryDestination, []*order.Order{o}, nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestOrderMatcher_Near_InvalidInput(t *testing.T) {
	center, _ := kernel.NewGeoPoint(0, 0)
	m := services.NewOrderMatcher()

	_, err := m.Near(center, 0, services.DeliveryDestination, nil, nil)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = m.Near(center, 150, services.DeliveryDestination, nil, nil)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = m.Near(kernel.GeoPoint{}, 5, services.DeliveryDestination, nil, nil)
	require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
}
