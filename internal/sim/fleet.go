package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// Fleet runs a set of simulated drivers against the dispatch API.
type Fleet struct {
	drivers []*Driver
	client  *Client
	log     zerolog.Logger
}

// NewFleet spawns count drivers with sequential ids (driver_0, driver_1, ...).
func NewFleet(count int, client *Client, rng *rand.Rand, log zerolog.Logger) *Fleet {
	drivers := make([]*Driver, 0, count)
	for i := 0; i < count; i++ {
		drivers = append(drivers, NewDriver(fmt.Sprintf("driver_%d", i), rng))
	}

	return &Fleet{
		drivers: drivers,
		client:  client,
		log:     log.With().Str("component", "fleet").Logger(),
	}
}

// Size returns the number of simulated drivers.
func (f *Fleet) Size() int {
	return len(f.drivers)
}

// Tick runs one simulation step for the whole fleet: broadcast the heartbeat
// batch, poll missions for idle drivers, advance every state machine and
// report completed deliveries.
//
// Mirrors a real courier app: the heartbeat goes out first so the backend
// sees the fleet's state before the next dispatch decision.
func (f *Fleet) Tick(ctx context.Context, now time.Time) {
	if err := f.client.ReportLocations(ctx, f.snapshot()); err != nil {
		f.log.Warn().Err(err).Msg("heartbeat failed")
	}

	for _, d := range f.drivers {
		if d.IsIdle() {
			f.pollMission(ctx, d)
		}

		if finish := d.Tick(now); finish != nil {
			f.log.Info().Str("driver", finish.DriverID).Str("order", finish.OrderID).
				Msg("delivery complete")
			if err := f.client.FinishOrder(ctx, finish.OrderID, finish.DriverID); err != nil {
				f.log.Warn().Err(err).Str("order", finish.OrderID).Msg("finish report failed")
			}
		}
	}
}

func (f *Fleet) pollMission(ctx context.Context, d *Driver) {
	mission, ok, err := f.client.GetMission(ctx, d.ID())
	if err != nil {
		f.log.Warn().Err(err).Str("driver", d.ID()).Msg("mission poll failed")
		return
	}
	if !ok || !d.Accept(mission) {
		return
	}

	f.log.Info().Str("driver", d.ID()).Str("order", mission.OrderID).Msg("mission accepted")

	lat, lng := d.Position()
	err = f.client.ReportRoute(ctx, d.ID(), mission.OrderID, "to_staging",
		[]Target{{Lat: lat, Lng: lng}, mission.Staging})
	if err != nil {
		f.log.Warn().Err(err).Str("driver", d.ID()).Msg("route report failed")
	}
}

func (f *Fleet) snapshot() []DriverState {
	states := make([]DriverState, 0, len(f.drivers))
	for _, d := range f.drivers {
		lat, lng := d.Position()
		states = append(states, DriverState{
			ID:     d.ID(),
			Lat:    lat,
			Lng:    lng,
			Status: string(d.State()),
		})
	}
	return states
}
