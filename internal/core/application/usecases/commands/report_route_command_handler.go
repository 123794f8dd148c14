package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// RoutePoint is one vertex of a broadcast route geometry.
type RoutePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteUpdateEvent is the payload broadcast when a courier reports a route.
type RouteUpdateEvent struct {
	DriverID string       `json:"driverId"`
	OrderID  string       `json:"orderId"`
	Type     string       `json:"type"`
	Path     []RoutePoint `json:"path"`
}

// ReportRouteCommandHandler forwards courier route geometries to observers.
// Pure fan-out: no state is read or written.
type ReportRouteCommandHandler struct {
	publisher ports.EventPublisher
}

// NewReportRouteCommandHandler creates a handler for route forwarding.
func NewReportRouteCommandHandler(publisher ports.EventPublisher) ReportRouteCommandHandler {
	return ReportRouteCommandHandler{
		publisher: publisher,
	}
}

// Handle broadcasts the route as a route_update event.
func (h ReportRouteCommandHandler) Handle(ctx context.Context, cmd ReportRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	path := make([]RoutePoint, 0, len(cmd.Path()))
	for _, point := range cmd.Path() {
		path = append(path, RoutePoint{Lat: point.Lat(), Lng: point.Lng()})
	}

	return h.publisher.Publish(ctx, ports.EventRouteUpdate, RouteUpdateEvent{
		DriverID: cmd.CourierID().String(),
		OrderID:  cmd.OrderID().String(),
		Type:     string(cmd.RouteType()),
		Path:     path,
	})
}
