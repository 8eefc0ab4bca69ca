package ports

import (
	"context"
)

// Event is a real-time notification addressed to a topic: "order-<id>" for the
// parties of one order or "delivery-partners" for every connected partner.
type Event struct {
	Topic string
	Name  string
	Data  any
}

// EventPublisher hands an event to the notification bus. It never blocks the caller
// and never fails: delivery is best effort and problems are logged by the bus.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
