package ports

import "context"

// EventKind names a fleet event on the wire.
type EventKind string

const (
	EventDriversUpdate EventKind = "drivers_update"
	EventOrderCreated  EventKind = "order_created"
	EventOrderFinished EventKind = "order_finished"
	EventRouteUpdate   EventKind = "route_update"
)

// EventPublisher fans fleet events out to interested consumers.
// Delivery is best-effort, at-most-once: a slow or absent consumer never
// blocks the publisher, and implementations may drop events under pressure.
type EventPublisher interface {
	Publish(ctx context.Context, kind EventKind, payload any) error
}
