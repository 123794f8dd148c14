package queries

import (
	"context"

	"dispatch/internal/core/domain/model/staging"
)

// GetStagingPointsQueryHandler serves the staging point network as a read
// model. No database is involved: the network is in-process configuration.
type GetStagingPointsQueryHandler struct {
	network staging.Network
}

// NewGetStagingPointsQueryHandler creates a handler over the configured
// staging network.
func NewGetStagingPointsQueryHandler(network staging.Network) GetStagingPointsQueryHandler {
	return GetStagingPointsQueryHandler{network: network}
}

// Handle returns all staging points in configuration order.
func (h GetStagingPointsQueryHandler) Handle(
	_ context.Context,
	query GetStagingPointsQuery,
) ([]GetStagingPointsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	points := h.network.Points()
	responses := make([]GetStagingPointsQueryResponse, 0, len(points))
	for _, point := range points {
		responses = append(responses, GetStagingPointsQueryResponse{
			ID:   point.ID(),
			Name: point.Name(),
			Lat:  point.Location().Lat(),
			Lng:  point.Location().Lng(),
		})
	}

	return responses, nil
}
