package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"meatdelivery/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the fanout exchange shared by all processes.
const DefaultExchange = "meatdelivery.notifications"

var errDeliveriesClosed = errors.New("amqp deliveries channel closed")

// Channel is the subset of *amqp.Channel used by the relay.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// AMQPRelay publishes events to a fanout exchange. Each process consumes through its
// own exclusive queue, so every process sees every event.
type AMQPRelay struct {
	ch       Channel
	exchange string
	logger   *slog.Logger
}

// NewAMQPRelay declares the exchange.
func NewAMQPRelay(ch Channel, exchange string, logger *slog.Logger) (*AMQPRelay, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPRelay{
		ch:       ch,
		exchange: exchange,
		logger:   logger.With("component", "AMQPRelay"),
	}, nil
}

// DialAMQP opens a connection and a channel for the relay.
func DialAMQP(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return conn, ch, nil
}

// Deliver implements Sink.
func (r *AMQPRelay) Deliver(ctx context.Context, event ports.Event) error {
	body, err := encodeFrame(event)
	if err != nil {
		return err
	}

	err = r.ch.PublishWithContext(ctx, r.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Type:        event.Name,
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Listen binds a server-named exclusive queue to the exchange and forwards its
// deliveries to local until ctx is cancelled.
func (r *AMQPRelay) Listen(ctx context.Context, local Sink) error {
	q, err := r.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err = r.ch.QueueBind(q.Name, "", r.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	deliveries, err := r.ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume: %w", err)
	}
	r.logger.InfoContext(ctx, "relay consuming", "exchange", r.exchange, "queue", q.Name)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errDeliveriesClosed
			}
			forward(ctx, r.logger, local, d.Body)
		}
	}
}
