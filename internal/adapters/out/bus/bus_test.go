package bus

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"meatdelivery/internal/core/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingSink keeps every delivered event.
type recordingSink struct {
	mu     sync.Mutex
	events []ports.Event
	err    error
}

func (s *recordingSink) Deliver(_ context.Context, event ports.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.events))
	for _, e := range s.events {
		names = append(names, e.Name)
	}
	return names
}
