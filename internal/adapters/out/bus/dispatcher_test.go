package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"meatdelivery/internal/core/application/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDispatcher(t *testing.T, d *Dispatcher) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func TestDispatcher_DeliversInPublishOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, 16, discardLogger(), nil)
	stop := runDispatcher(t, d)

	topic := "order-42"
	for _, name := range []string{"order-accepted", "order-status-updated", "order-cancelled"} {
		d.Publish(t.Context(), event(topic, name))
	}

	require.Eventually(t, func() bool { return len(sink.names()) == 3 }, time.Second, 5*time.Millisecond)
	stop()
	assert.Equal(t, []string{"order-accepted", "order-status-updated", "order-cancelled"}, sink.names())
}

func TestDispatcher_DropsWhenQueueIsFull(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, 1, discardLogger(), NewMetrics(nil))

	d.Publish(t.Context(), event("order-1", "first"))
	d.Publish(t.Context(), event("order-1", "second"))

	stop := runDispatcher(t, d)
	stop()

	assert.Equal(t, []string{"first"}, sink.names())
}

func TestDispatcher_FlushesOnShutdown(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, 8, discardLogger(), nil)
	for range 5 {
		d.Publish(t.Context(), event("delivery-partners", "new-order"))
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.NoError(t, d.Run(ctx))

	assert.Len(t, sink.names(), 5)
}

func TestDispatcher_SinkErrorsAreSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}
	d := NewDispatcher(sink, 8, discardLogger(), nil)
	stop := runDispatcher(t, d)

	d.Publish(t.Context(), event("order-1", "first"))
	d.Publish(t.Context(), event("order-1", "second"))

	require.Eventually(t, func() bool { return len(sink.names()) == 2 }, time.Second, 5*time.Millisecond)
	stop()
}

func TestDispatcher_FeedsHub(t *testing.T) {
	hub := NewHub(4, discardLogger(), nil)
	sub := hub.Subscribe(notifications.BroadcastTopic)
	d := NewDispatcher(hub, 4, discardLogger(), nil)
	stop := runDispatcher(t, d)
	defer stop()

	d.Publish(t.Context(), event(notifications.BroadcastTopic, notifications.EventNewOrder))

	select {
	case got := <-sub.C():
		assert.Equal(t, notifications.EventNewOrder, got.Name)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}
