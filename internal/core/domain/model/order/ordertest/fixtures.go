// Package ordertest builds orders in a given lifecycle state for tests.
package ordertest

import (
	"testing"
	"time"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Delhi is the default delivery destination of fixture orders.
var Delhi = struct{ Longitude, Latitude float64 }{77.2090, 28.6139}

// Item returns a 1 kg line priced at price.
func Item(t testing.TB, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(
		"prod-1", "Chicken Breast", "chicken",
		order.Cut{Name: "Boneless", PricePerUnit: decimal.RequireFromString(price), Unit: order.UnitKg},
		decimal.NewFromInt(1), decimal.RequireFromString(price),
	)
	require.NoError(t, err)
	return item
}

// Shop returns the default pickup origin.
func Shop(t testing.TB) order.Shop {
	t.Helper()
	loc, err := kernel.NewGeoPoint(77.1025, 28.7041)
	require.NoError(t, err)
	return order.Shop{Name: "Local Meat Shop", Address: "Main Market", Location: loc}
}

// Address returns a delivery address at the given coordinates.
func Address(t testing.TB, longitude, latitude float64) order.Address {
	t.Helper()
	loc, err := kernel.NewGeoPoint(longitude, latitude)
	require.NoError(t, err)
	return order.Address{Label: "Home", Street: "1 Janpath", City: "New Delhi", Pincode: "110001", Location: loc}
}

// Placement returns a cash placement for customerID with one line per price.
func Placement(t testing.TB, customerID kernel.UUID, prices ...string) order.Placement {
	t.Helper()
	if len(prices) == 0 {
		prices = []string{"200"}
	}
	items := make([]order.Item, 0, len(prices))
	for _, p := range prices {
		items = append(items, Item(t, p))
	}
	return order.Placement{
		CustomerID:      customerID,
		Items:           items,
		DeliveryAddress: Address(t, Delhi.Longitude, Delhi.Latitude),
		Shop:            Shop(t),
		PaymentMethod:   order.Cash,
	}
}

// Pending returns a freshly placed order.
func Pending(t testing.TB, customerID kernel.UUID) *order.Order {
	t.Helper()
	return PendingAt(t, customerID, Delhi.Longitude, Delhi.Latitude)
}

// PendingAt returns a freshly placed order delivering to the given coordinates.
func PendingAt(t testing.TB, customerID kernel.UUID, longitude, latitude float64) *order.Order {
	t.Helper()
	placement := Placement(t, customerID)
	placement.DeliveryAddress = Address(t, longitude, latitude)

	now := time.Now().UTC()
	o, err := order.NewOrder(kernel.NewUUID(), order.NewNumber(now), placement, now)
	require.NoError(t, err)
	return o
}

// InStatus returns an order claimed by partnerID and advanced to status.
// Cancelled orders are cancelled right after the claim.
func InStatus(t testing.TB, customerID, partnerID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	o := Pending(t, customerID)
	if status == order.Pending {
		return o
	}

	now := time.Now().UTC()
	require.NoError(t, o.Assign(partnerID, now))
	if status == order.Cancelled {
		require.NoError(t, o.Cancel("changed my mind", now))
		return o
	}

	for o.Status() != status {
		next, ok := o.Status().Next()
		require.True(t, ok, "status %s is not reachable", status)
		require.NoError(t, o.AdvanceStatus(next, "", now))
	}
	return o
}
