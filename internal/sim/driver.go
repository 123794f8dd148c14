// Package sim contains the fleet simulator: a set of virtual couriers that
// drive the dispatch API the way a real courier app would. Each courier runs
// a small state machine, reports its position every tick and completes the
// missions it is assigned.
package sim

import (
	"math"
	"math/rand"
	"time"
)

// Movement tuning, in degrees per tick.
const (
	driveSpeed  = 0.005
	idleJitter  = 0.0005
	pickupDelay = 3 * time.Second
)

// Spawn area around central London.
const (
	spawnLat    = 51.505
	spawnLng    = -0.09
	spawnSpread = 0.05
)

// State is a simulated courier's lifecycle state. The string values are
// reported verbatim in heartbeats.
type State string

const (
	StateIdle       State = "IDLE"
	StateToStaging  State = "TO_STAGING"
	StatePickup     State = "PICKUP"
	StateToCustomer State = "TO_CUSTOMER"
)

// Target is a point a driver steers towards.
type Target struct {
	Lat float64
	Lng float64
}

// Mission is the briefing a driver works through: collect at the staging
// point, deliver to the customer.
type Mission struct {
	OrderID  string
	Staging  Target
	Customer Target
}

// Driver is one simulated courier.
type Driver struct {
	id    string
	lat   float64
	lng   float64
	state State

	mission     Mission
	target      Target
	pickupUntil time.Time

	// lastOrderID guards against re-accepting a finished mission: the
	// backend keeps the last briefing visible after delivery.
	lastOrderID string

	rng *rand.Rand
}

// NewDriver creates an idle driver at a random position in the spawn area.
func NewDriver(id string, rng *rand.Rand) *Driver {
	return &Driver{
		id:    id,
		lat:   spawnLat + (rng.Float64()*2-1)*spawnSpread,
		lng:   spawnLng + (rng.Float64()*2-1)*spawnSpread,
		state: StateIdle,
		rng:   rng,
	}
}

// ID returns the driver identifier.
func (d *Driver) ID() string { return d.id }

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Position returns the current coordinates.
func (d *Driver) Position() (lat, lng float64) { return d.lat, d.lng }

// IsIdle reports whether the driver can accept a mission.
func (d *Driver) IsIdle() bool { return d.state == StateIdle }

// Accept starts a new mission and steers towards the staging point.
// A mission for the order the driver last completed is ignored, since the
// backend keeps the last briefing visible after delivery.
func (d *Driver) Accept(m Mission) bool {
	if !d.IsIdle() || m.OrderID == d.lastOrderID {
		return false
	}

	d.mission = m
	d.target = m.Staging
	d.state = StateToStaging
	return true
}

// Finish is the delivery report a driver emits on arrival at the customer.
type Finish struct {
	OrderID  string
	DriverID string
}

// Tick advances the driver by one simulation step. Returns a non-nil Finish
// when the step completed a delivery.
func (d *Driver) Tick(now time.Time) *Finish {
	switch d.state {
	case StateIdle:
		d.lat += (d.rng.Float64()*2 - 1) * idleJitter
		d.lng += (d.rng.Float64()*2 - 1) * idleJitter

	case StateToStaging:
		if d.moveTowards(d.target) {
			d.state = StatePickup
			d.pickupUntil = now.Add(pickupDelay)
		}

	case StatePickup:
		if now.After(d.pickupUntil) {
			d.state = StateToCustomer
			d.target = d.mission.Customer
		}

	case StateToCustomer:
		if d.moveTowards(d.target) {
			finish := &Finish{OrderID: d.mission.OrderID, DriverID: d.id}
			d.lastOrderID = d.mission.OrderID
			d.state = StateIdle
			d.mission = Mission{}
			return finish
		}
	}

	return nil
}

// moveTowards steps towards the target at driveSpeed, reporting arrival.
func (d *Driver) moveTowards(target Target) bool {
	dLat := target.Lat - d.lat
	dLng := target.Lng - d.lng
	distance := math.Sqrt(dLat*dLat + dLng*dLng)

	if distance < driveSpeed {
		d.lat = target.Lat
		d.lng = target.Lng
		return true
	}

	ratio := driveSpeed / distance
	d.lat += dLat * ratio
	d.lng += dLng * ratio
	return false
}
