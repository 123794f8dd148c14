package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrHeartbeatIsNotConstructed is returned when validating a zero-value Heartbeat.
var ErrHeartbeatIsNotConstructed = errors.New(
	"Heartbeat must be created via NewHeartbeat constructor")

// Heartbeat is one courier's entry in a periodic fleet report: current
// position plus self-reported status. A heartbeat is a snapshot, not a delta;
// applying the same heartbeat twice leaves fleet state unchanged.
type Heartbeat struct { //nolint:recvcheck //using for validation
	courierID ID
	location  kernel.Location
	status    Status

	guard guard.ConstructorGuard
}

// NewHeartbeat creates a validated heartbeat entry. The status is normalized,
// so couriers that have not reported a status yet come through as idle.
func NewHeartbeat(courierID ID, location kernel.Location, status Status) (Heartbeat, error) {
	hb := Heartbeat{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(hb.setCourierID(courierID), hb.setLocation(location)); err != nil {
		return Heartbeat{}, err
	}

	hb.status = status.Normalize()
	return hb, nil
}

// Validate ensures the heartbeat was created through NewHeartbeat.
func (h Heartbeat) Validate() error {
	return h.guard.Validate(ErrHeartbeatIsNotConstructed)
}

// CourierID returns the reporting courier's ID.
func (h Heartbeat) CourierID() ID {
	return h.courierID
}

// Location returns the reported position.
func (h Heartbeat) Location() kernel.Location {
	return h.location
}

// Status returns the normalized self-reported status.
func (h Heartbeat) Status() Status {
	return h.status
}

func (h *Heartbeat) setCourierID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.courierID = id
	return nil
}

func (h *Heartbeat) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	h.location = location
	return nil
}
