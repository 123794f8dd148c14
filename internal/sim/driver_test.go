package sim_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/sim"
)

func newDriver(t *testing.T) *sim.Driver {
	t.Helper()
	return sim.NewDriver("driver_1", rand.New(rand.NewSource(1)))
}

func testMission(orderID string) sim.Mission {
	return sim.Mission{
		OrderID:  orderID,
		Staging:  sim.Target{Lat: 51.508, Lng: -0.165},
		Customer: sim.Target{Lat: 51.506, Lng: -0.10},
	}
}

func TestDriver_Accept(t *testing.T) {
	t.Run("idle_driver_accepts", func(t *testing.T) {
		d := newDriver(t)

		require.True(t, d.Accept(testMission("order_1")))
		assert.Equal(t, sim.StateToStaging, d.State())
	})

	t.Run("busy_driver_rejects", func(t *testing.T) {
		d := newDriver(t)
		require.True(t, d.Accept(testMission("order_1")))

		assert.False(t, d.Accept(testMission("order_2")))
	})

	t.Run("completed_mission_is_not_reaccepted", func(t *testing.T) {
		d := newDriver(t)
		driveToCompletion(t, d, "order_1")

		// The backend keeps the last briefing visible after delivery;
		// the driver must not pick it up again.
		assert.False(t, d.Accept(testMission("order_1")))
		assert.True(t, d.Accept(testMission("order_2")))
	})
}

func driveToCompletion(t *testing.T, d *sim.Driver, orderID string) {
	t.Helper()

	require.True(t, d.Accept(testMission(orderID)))

	now := time.Now()
	for i := 0; i < 1000; i++ {
		if finish := d.Tick(now); finish != nil {
			assert.Equal(t, orderID, finish.OrderID)
			assert.Equal(t, sim.StateIdle, d.State())
			return
		}
		// Advance well past the pickup delay each step.
		now = now.Add(5 * time.Second)
	}
	t.Fatal("driver never completed the delivery")
}

func TestDriver_Tick(t *testing.T) {
	t.Run("full_delivery_cycle", func(t *testing.T) {
		d := newDriver(t)

		driveToCompletion(t, d, "order_1")
	})

	t.Run("pickup_takes_time", func(t *testing.T) {
		d := newDriver(t)
		require.True(t, d.Accept(testMission("order_1")))

		now := time.Now()
		for i := 0; i < 1000 && d.State() != sim.StatePickup; i++ {
			require.Nil(t, d.Tick(now))
		}
		require.Equal(t, sim.StatePickup, d.State())

		// Still loading within the pickup window.
		require.Nil(t, d.Tick(now.Add(time.Second)))
		assert.Equal(t, sim.StatePickup, d.State())

		require.Nil(t, d.Tick(now.Add(10*time.Second)))
		assert.Equal(t, sim.StateToCustomer, d.State())
	})

	t.Run("idle_driver_wanders", func(t *testing.T) {
		d := newDriver(t)
		lat, lng := d.Position()

		d.Tick(time.Now())

		newLat, newLng := d.Position()
		assert.True(t, lat != newLat || lng != newLng)
	})
}
