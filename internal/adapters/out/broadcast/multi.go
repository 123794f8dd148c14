package broadcast

import (
	"context"

	"dispatch/internal/core/ports"
)

// MultiPublisher fans events out to multiple publishers, typically the
// websocket hub plus an AMQP mirror.
type MultiPublisher struct {
	publishers []ports.EventPublisher
}

// NewMultiPublisher creates a MultiPublisher over the provided publishers.
func NewMultiPublisher(publishers ...ports.EventPublisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

// Publish forwards the event to all publishers, returning the first error
// encountered. Later publishers still receive the event after an earlier
// failure.
func (m *MultiPublisher) Publish(ctx context.Context, kind ports.EventKind, payload any) error {
	var firstErr error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, kind, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
