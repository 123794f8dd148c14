package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/fleet"
)

// ErrMissionNotFound is returned when the courier has never been assigned.
var ErrMissionNotFound = errors.New("mission not found")

// GetMissionQueryHandler serves mission briefings from the in-memory
// registry.
type GetMissionQueryHandler struct {
	missions *fleet.MissionRegistry
}

// NewGetMissionQueryHandler creates a handler over the mission registry.
func NewGetMissionQueryHandler(missions *fleet.MissionRegistry) GetMissionQueryHandler {
	return GetMissionQueryHandler{missions: missions}
}

// Handle returns the courier's current mission briefing.
// Returns ErrMissionNotFound if the courier was never assigned.
func (h GetMissionQueryHandler) Handle(
	_ context.Context,
	query GetMissionQuery,
) (GetMissionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMissionQueryResponse{}, err
	}

	mission, ok := h.missions.Get(query.CourierID())
	if !ok {
		return GetMissionQueryResponse{}, ErrMissionNotFound
	}

	stagingPoint := mission.StagingPoint()

	return GetMissionQueryResponse{
		OrderID:  mission.OrderID().String(),
		DriverID: mission.CourierID().String(),
		StagingPoint: GetStagingPointsQueryResponse{
			ID:   stagingPoint.ID(),
			Name: stagingPoint.Name(),
			Lat:  stagingPoint.Location().Lat(),
			Lng:  stagingPoint.Location().Lng(),
		},
		Customer: GetMissionCustomerResponse{
			Lat: mission.CustomerLocation().Lat(),
			Lng: mission.CustomerLocation().Lng(),
		},
	}, nil
}
