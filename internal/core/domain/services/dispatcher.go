package services

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/staging"
	"dispatch/internal/core/fleet"
)

const (
	// CandidateRadiusKm bounds the proximity scan around the staging point.
	CandidateRadiusKm = 50
	// CandidateLimit caps how many nearest couriers are considered per order.
	CandidateLimit = 10
)

// ErrNoCourierAvailable is returned when no idle courier could be locked
// within the candidate radius. The condition is transient: callers may retry
// once the fleet reports idle couriers again.
var ErrNoCourierAvailable = errors.New("no courier available")

// Assignment is the outcome of a successful dispatch: a locked courier and
// the staging point the order will be picked up from.
type Assignment struct {
	CourierID    courier.ID
	StagingPoint staging.Point
	DistanceKm   float64
}

// Dispatcher is the domain service that reserves a courier for an order.
//
// The selection algorithm:
//  1. Pick the staging point nearest to the customer (configured order
//     breaks ties).
//  2. Query the geo index for the nearest couriers around that staging
//     point, bounded by CandidateRadiusKm and CandidateLimit.
//  3. Scan candidates nearest-first and attempt the IDLE→ASSIGNED
//     compare-and-set on each. The first successful swap wins and the scan
//     stops; losing a swap to a concurrent dispatch just advances the scan.
//
// If no candidate locks, the dispatch fails with ErrNoCourierAvailable and
// no state has been touched.
type Dispatcher struct {
	network  staging.Network
	geo      *fleet.GeoIndex
	statuses *fleet.StatusTable
}

// NewDispatcher creates a dispatcher over the given staging network and
// fleet stores.
func NewDispatcher(network staging.Network, geo *fleet.GeoIndex, statuses *fleet.StatusTable) Dispatcher {
	return Dispatcher{
		network:  network,
		geo:      geo,
		statuses: statuses,
	}
}

// Dispatch locks the nearest idle courier for a delivery to customerLocation.
func (d Dispatcher) Dispatch(customerLocation kernel.Location) (Assignment, error) {
	if err := customerLocation.Validate(); err != nil {
		return Assignment{}, err
	}

	stagingPoint, err := d.network.Nearest(customerLocation)
	if err != nil {
		return Assignment{}, err
	}

	candidates, err := d.geo.QueryNearest(stagingPoint.Location(), CandidateRadiusKm, CandidateLimit)
	if err != nil {
		return Assignment{}, err
	}

	for _, c := range candidates {
		if d.statuses.CompareAndSet(c.CourierID, courier.StatusIdle, courier.StatusAssigned) {
			return Assignment{
				CourierID:    c.CourierID,
				StagingPoint: stagingPoint,
				DistanceKm:   c.DistanceKm,
			}, nil
		}
	}

	return Assignment{}, ErrNoCourierAvailable
}

// Release undoes a lock taken by Dispatch, returning the courier to idle.
// Used to roll back when order persistence fails after a successful lock.
// The release is itself a compare-and-set so a heartbeat that already moved
// the courier elsewhere is not clobbered.
func (d Dispatcher) Release(id courier.ID) bool {
	return d.statuses.CompareAndSet(id, courier.StatusAssigned, courier.StatusIdle)
}
