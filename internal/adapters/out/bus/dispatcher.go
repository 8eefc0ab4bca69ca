package bus

import (
	"context"
	"log/slog"

	"meatdelivery/internal/core/ports"
)

// DefaultQueueSize bounds the dispatcher queue when no size is configured.
const DefaultQueueSize = 1024

// Sink accepts events from the dispatcher worker, one at a time.
type Sink interface {
	Deliver(ctx context.Context, event ports.Event) error
}

// Dispatcher implements ports.EventPublisher with a bounded queue drained by a
// single worker, so events reach the sink in publish order.
//
// Example:
//
//	d := bus.NewDispatcher(hub, cfg.QueueSize, logger, metrics)
//	go d.Run(ctx)
//	d.Publish(ctx, notifications.NewOrder(o)) // returns immediately
type Dispatcher struct {
	queue   chan ports.Event
	sink    Sink
	logger  *slog.Logger
	metrics *Metrics
}

func NewDispatcher(sink Sink, queueSize int, logger *slog.Logger, metrics *Metrics) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		queue:   make(chan ports.Event, queueSize),
		sink:    sink,
		logger:  logger.With("component", "NotificationDispatcher"),
		metrics: metrics,
	}
}

// Publish enqueues the event. When the queue is full the event is dropped and
// logged; the state change it describes has already been committed.
func (d *Dispatcher) Publish(ctx context.Context, event ports.Event) {
	select {
	case d.queue <- event:
		d.metrics.IncPublished(event.Name)
	default:
		d.metrics.IncDropped(event.Name)
		d.logger.WarnContext(ctx, "notification queue is full, event dropped",
			"topic", event.Topic, "event", event.Name)
	}
}

// Run delivers queued events until ctx is cancelled, then flushes what is left.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.InfoContext(ctx, "notification dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.flush()
			d.logger.Info("notification dispatcher stopped")
			return nil
		case event := <-d.queue:
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) flush() {
	ctx := context.Background()
	for {
		select {
		case event := <-d.queue:
			d.deliver(ctx, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event ports.Event) {
	if err := d.sink.Deliver(ctx, event); err != nil {
		d.metrics.IncFailed(event.Name)
		d.logger.ErrorContext(ctx, "failed to deliver notification",
			"topic", event.Topic, "event", event.Name, "error", err)
	}
}
