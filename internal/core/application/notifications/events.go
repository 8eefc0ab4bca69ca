// Package notifications builds the real-time events published on order changes.
package notifications

import (
	"time"

	"meatdelivery/internal/core/domain/model/kernel"
	"meatdelivery/internal/core/domain/model/order"
	"meatdelivery/internal/core/domain/model/partner"
	"meatdelivery/internal/core/ports"

	"github.com/shopspring/decimal"
)

// BroadcastTopic reaches every connected delivery partner.
const BroadcastTopic = "delivery-partners"

const (
	EventNewOrder              = "new-order"
	EventOrderAccepted         = "order-accepted"
	EventOrderStatusUpdated    = "order-status-updated"
	EventOrderCancelled        = "order-cancelled"
	EventPartnerLocationUpdate = "partner-location-update"
)

// OrderTopic is the room of the customer and the partner of one order.
func OrderTopic(orderID kernel.UUID) string {
	return "order-" + orderID.String()
}

// Location is the wire form of a point.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func locationOf(p kernel.GeoPoint) Location {
	return Location{Longitude: p.Longitude(), Latitude: p.Latitude()}
}

type NewOrderData struct {
	OrderID     string          `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	Location    Location        `json:"location"`
	ItemsTotal  decimal.Decimal `json:"itemsTotal"`
}

type OrderAcceptedData struct {
	OrderID     string `json:"orderId"`
	PartnerID   string `json:"partnerId"`
	PartnerName string `json:"partnerName"`
}

type OrderStatusUpdatedData struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type OrderCancelledData struct {
	OrderID string `json:"orderId"`
}

type PartnerLocationData struct {
	OrderID  string   `json:"orderId"`
	Location Location `json:"location"`
}

// NewOrder announces a pending order to all partners.
func NewOrder(o *order.Order) ports.Event {
	return ports.Event{
		Topic: BroadcastTopic,
		Name:  EventNewOrder,
		Data: NewOrderData{
			OrderID:     o.ID().String(),
			OrderNumber: o.Number(),
			Location:    locationOf(o.DeliveryAddress().Location),
			ItemsTotal:  o.Pricing().ItemsTotal,
		},
	}
}

func OrderAccepted(o *order.Order, p *partner.Partner) ports.Event {
	return ports.Event{
		Topic: OrderTopic(o.ID()),
		Name:  EventOrderAccepted,
		Data: OrderAcceptedData{
			OrderID:     o.ID().String(),
			PartnerID:   p.ID().String(),
			PartnerName: p.Name(),
		},
	}
}

func OrderStatusUpdated(o *order.Order) ports.Event {
	return ports.Event{
		Topic: OrderTopic(o.ID()),
		Name:  EventOrderStatusUpdated,
		Data: OrderStatusUpdatedData{
			OrderID:   o.ID().String(),
			Status:    o.Status().String(),
			Timestamp: o.UpdatedAt(),
		},
	}
}

func OrderCancelled(o *order.Order) ports.Event {
	return ports.Event{
		Topic: OrderTopic(o.ID()),
		Name:  EventOrderCancelled,
		Data:  OrderCancelledData{OrderID: o.ID().String()},
	}
}

// PartnerLocationUpdate tells the customer of an active order where its partner is.
func PartnerLocationUpdate(o *order.Order, location kernel.GeoPoint) ports.Event {
	return ports.Event{
		Topic: OrderTopic(o.ID()),
		Name:  EventPartnerLocationUpdate,
		Data: PartnerLocationData{
			OrderID:  o.ID().String(),
			Location: locationOf(location),
		},
	}
}
