package fleet

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/staging"
	"dispatch/internal/pkg/guard"
)

// ErrMissionIsNotConstructed is returned when validating a zero-value Mission.
var ErrMissionIsNotConstructed = errors.New("Mission must be created via NewMission constructor")

// Mission is the active assignment of one courier to one order: where to pick
// it up and where to take it. Missions are ephemeral fleet state, keyed by
// courier, and are overwritten when the courier is assigned again.
type Mission struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	courierID        courier.ID
	stagingPoint     staging.Point
	customerLocation kernel.Location

	guard guard.ConstructorGuard
}

// NewMission creates a validated mission record.
func NewMission(
	orderID kernel.UUID,
	courierID courier.ID,
	stagingPoint staging.Point,
	customerLocation kernel.Location,
) (Mission, error) {
	m := Mission{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
		stagingPoint.Validate(),
		customerLocation.Validate(),
	); err != nil {
		return Mission{}, err
	}

	m.orderID = orderID
	m.courierID = courierID
	m.stagingPoint = stagingPoint
	m.customerLocation = customerLocation
	return m, nil
}

// Validate ensures the mission was created through NewMission.
func (m Mission) Validate() error {
	return m.guard.Validate(ErrMissionIsNotConstructed)
}

// OrderID returns the order this mission fulfills.
func (m Mission) OrderID() kernel.UUID {
	return m.orderID
}

// CourierID returns the courier the mission is assigned to.
func (m Mission) CourierID() courier.ID {
	return m.courierID
}

// StagingPoint returns the pickup location.
func (m Mission) StagingPoint() staging.Point {
	return m.stagingPoint
}

// CustomerLocation returns the drop-off location.
func (m Mission) CustomerLocation() kernel.Location {
	return m.customerLocation
}
