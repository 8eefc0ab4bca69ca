package bus

import (
	"context"
	"log/slog"
	"sync"

	"meatdelivery/internal/core/ports"
)

// DefaultSubscriberBuffer is the number of undelivered events a subscriber may hold
// before it is disconnected.
const DefaultSubscriberBuffer = 64

// Subscription is one connected client. Events arrive on C in publish order per
// topic; C is closed when the subscription ends.
type Subscription struct {
	hub    *Hub
	events chan ports.Event
	done   chan struct{}
	once   sync.Once
}

// C returns the event stream.
func (s *Subscription) C() <-chan ports.Event {
	return s.events
}

// Done is closed when the subscription ends, either by Close or because the hub
// disconnected a slow subscriber.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Join adds a topic. Joining twice is a no-op.
func (s *Subscription) Join(topic string) {
	s.hub.join(s, topic)
}

func (s *Subscription) Leave(topic string) {
	s.hub.leave(s, topic)
}

// Close unsubscribes from every topic.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// Hub routes events to the subscribers of their topic inside one process.
type Hub struct {
	mu      sync.RWMutex
	topics  map[string]map[*Subscription]struct{}
	joined  map[*Subscription]map[string]struct{}
	buffer  int
	logger  *slog.Logger
	metrics *Metrics
}

func NewHub(buffer int, logger *slog.Logger, metrics *Metrics) *Hub {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Hub{
		topics:  make(map[string]map[*Subscription]struct{}),
		joined:  make(map[*Subscription]map[string]struct{}),
		buffer:  buffer,
		logger:  logger.With("component", "NotificationHub"),
		metrics: metrics,
	}
}

// Subscribe connects a new subscriber to the given topics.
func (h *Hub) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		hub:    h,
		events: make(chan ports.Event, h.buffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	h.joined[sub] = make(map[string]struct{})
	h.mu.Unlock()

	for _, topic := range topics {
		sub.Join(topic)
	}
	h.metrics.SetSubscribers(h.Subscribers())
	return sub
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.joined)
}

// Deliver implements Sink. It never blocks: a subscriber whose buffer is full is
// disconnected instead.
func (h *Hub) Deliver(ctx context.Context, event ports.Event) error {
	var slow []*Subscription

	h.mu.RLock()
	for sub := range h.topics[event.Topic] {
		select {
		case sub.events <- event:
			h.metrics.IncDelivered(event.Name)
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.logger.WarnContext(ctx, "disconnecting slow subscriber",
			"topic", event.Topic, "event", event.Name)
		h.metrics.IncDisconnected()
		h.remove(sub)
	}
	return nil
}

func (h *Hub) join(sub *Subscription, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	topics, ok := h.joined[sub]
	if !ok {
		return
	}
	topics[topic] = struct{}{}

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
}

func (h *Hub) leave(sub *Subscription, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topics, ok := h.joined[sub]; ok {
		delete(topics, topic)
	}
	h.unlink(sub, topic)
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	topics, ok := h.joined[sub]
	if ok {
		for topic := range topics {
			h.unlink(sub, topic)
		}
		delete(h.joined, sub)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	sub.once.Do(func() {
		close(sub.done)
		close(sub.events)
	})
	h.metrics.SetSubscribers(h.Subscribers())
}

// unlink must be called with h.mu held.
func (h *Hub) unlink(sub *Subscription, topic string) {
	subs, ok := h.topics[topic]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}
