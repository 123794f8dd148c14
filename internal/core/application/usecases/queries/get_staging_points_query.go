package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetStagingPointsQueryIsNotConstructed = errors.New(
	"GetStagingPointsQuery must be created via NewGetStagingPointsQuery constructor",
)

// GetStagingPointsQuery retrieves the configured staging point network.
// The network is static for the lifetime of the process.
type GetStagingPointsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStagingPointsQuery creates a query for the staging point list.
func NewGetStagingPointsQuery() GetStagingPointsQuery {
	return GetStagingPointsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStagingPointsQuery) Validate() error {
	return q.guard.Validate(ErrGetStagingPointsQueryIsNotConstructed)
}

// GetStagingPointsQueryResponse is the read model for one staging point.
type GetStagingPointsQueryResponse struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}
