package commands

import (
	"context"

	"dispatch/internal/core/fleet"
	"dispatch/internal/core/ports"
)

// DriverPosition is one entry of the drivers_update broadcast payload.
type DriverPosition struct {
	ID     string  `json:"id"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Status string  `json:"status"`
}

// ReportHeartbeatCommandHandler ingests fleet heartbeats into the geo index
// and the status table, then broadcasts the batch to observers.
//
// Heartbeats overwrite statuses unconditionally: the fleet is the source of
// truth, and a courier reporting IDLE frees itself from a previous
// assignment.
type ReportHeartbeatCommandHandler struct {
	geo       *fleet.GeoIndex
	statuses  *fleet.StatusTable
	publisher ports.EventPublisher
}

// NewReportHeartbeatCommandHandler creates a handler for heartbeat ingestion.
func NewReportHeartbeatCommandHandler(
	geo *fleet.GeoIndex,
	statuses *fleet.StatusTable,
	publisher ports.EventPublisher,
) ReportHeartbeatCommandHandler {
	return ReportHeartbeatCommandHandler{
		geo:       geo,
		statuses:  statuses,
		publisher: publisher,
	}
}

// Handle applies the batch to both fleet stores. Positions are applied
// all-or-nothing; statuses are only written once positions succeeded.
func (h ReportHeartbeatCommandHandler) Handle(ctx context.Context, cmd ReportHeartbeatCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	heartbeats := cmd.Heartbeats()

	if err := h.geo.UpsertBatch(heartbeats); err != nil {
		return err
	}
	h.statuses.SetBatch(heartbeats)

	positions := make([]DriverPosition, 0, len(heartbeats))
	for _, hb := range heartbeats {
		positions = append(positions, DriverPosition{
			ID:     hb.CourierID().String(),
			Lat:    hb.Location().Lat(),
			Lng:    hb.Location().Lng(),
			Status: string(hb.Status()),
		})
	}

	_ = h.publisher.Publish(ctx, ports.EventDriversUpdate, positions)

	return nil
}
