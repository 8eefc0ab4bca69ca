package bus

import (
	"context"
	"fmt"
	"log/slog"

	"meatdelivery/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisChannel carries every topic; per-topic order is kept because a Redis
// channel preserves publish order.
const DefaultRedisChannel = "meatdelivery:notifications"

type redisPubSub interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// RedisRelay publishes events on a Redis pub/sub channel and feeds every event seen
// on that channel, including its own, into the local hub.
type RedisRelay struct {
	client  redisPubSub
	channel string
	logger  *slog.Logger
}

func NewRedisRelay(client redisPubSub, channel string, logger *slog.Logger) *RedisRelay {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &RedisRelay{
		client:  client,
		channel: channel,
		logger:  logger.With("component", "RedisRelay"),
	}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Deliver implements Sink.
func (r *RedisRelay) Deliver(ctx context.Context, event ports.Event) error {
	body, err := encodeFrame(event)
	if err != nil {
		return err
	}
	if err = r.client.Publish(ctx, r.channel, body).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Listen forwards the channel to local until ctx is cancelled.
func (r *RedisRelay) Listen(ctx context.Context, local Sink) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}
	r.logger.InfoContext(ctx, "relay subscribed", "channel", r.channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			forward(ctx, r.logger, local, []byte(msg.Payload))
		}
	}
}
