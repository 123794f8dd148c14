package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/guard"
)

var ErrGetMissionQueryIsNotConstructed = errors.New(
	"GetMissionQuery must be created via NewGetMissionQuery constructor",
)

// GetMissionQuery retrieves a courier's current mission briefing.
// Couriers poll this after being assigned; the last mission stays visible
// after delivery, so consumers deduplicate by order ID.
type GetMissionQuery struct { //nolint:recvcheck //using for validation
	courierID courier.ID

	guard guard.ConstructorGuard
}

// NewGetMissionQuery creates a query for the given courier's mission.
func NewGetMissionQuery(courierID courier.ID) (GetMissionQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetMissionQuery{}, err
	}

	return GetMissionQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMissionQuery) Validate() error {
	return q.guard.Validate(ErrGetMissionQueryIsNotConstructed)
}

// CourierID returns the courier whose mission is requested.
func (q GetMissionQuery) CourierID() courier.ID {
	return q.courierID
}

// GetMissionQueryResponse is the mission briefing read model.
type GetMissionQueryResponse struct {
	OrderID      string                        `json:"orderId"`
	DriverID     string                        `json:"driverId"`
	StagingPoint GetStagingPointsQueryResponse `json:"warehouse"`
	Customer     GetMissionCustomerResponse    `json:"customer"`
}

// GetMissionCustomerResponse is the customer destination inside a briefing.
type GetMissionCustomerResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
