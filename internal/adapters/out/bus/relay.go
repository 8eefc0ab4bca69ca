package bus

import (
	"context"
	"log/slog"
)

// forward hands a relayed frame to the local hub. Malformed frames are logged and
// skipped so one bad publisher cannot stop the relay.
func forward(ctx context.Context, logger *slog.Logger, local Sink, body []byte) {
	event, err := decodeFrame(body)
	if err != nil {
		logger.WarnContext(ctx, "skipping relay frame", "error", err)
		return
	}
	if err = local.Deliver(ctx, event); err != nil {
		logger.ErrorContext(ctx, "failed to deliver relayed notification",
			"topic", event.Topic, "event", event.Name, "error", err)
	}
}
