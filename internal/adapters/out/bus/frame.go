package bus

import (
	"encoding/json"
	"errors"
	"fmt"

	"meatdelivery/internal/core/ports"
)

var errRelayFrameIncomplete = errors.New("relay frame without topic or event")

// frame is the relay wire format shared by every process.
type frame struct {
	Topic string          `json:"topic"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func encodeFrame(event ports.Event) ([]byte, error) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event.Name, err)
	}
	return json.Marshal(frame{Topic: event.Topic, Event: event.Name, Data: data})
}

// decodeFrame keeps the payload as raw JSON; subscribers only re-encode it.
func decodeFrame(body []byte) (ports.Event, error) {
	var f frame
	if err := json.Unmarshal(body, &f); err != nil {
		return ports.Event{}, fmt.Errorf("decode relay frame: %w", err)
	}
	if f.Topic == "" || f.Event == "" {
		return ports.Event{}, errRelayFrameIncomplete
	}
	return ports.Event{Topic: f.Topic, Name: f.Event, Data: f.Data}, nil
}
