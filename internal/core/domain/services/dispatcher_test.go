package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/staging"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/fleet"
)

func location(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()

	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}

func londonNetwork(t *testing.T) staging.Network {
	t.Helper()

	hydePark, err := staging.NewPoint(1, "Hyde Park Depot", location(t, 51.508, -0.165))
	require.NoError(t, err)
	canaryWharf, err := staging.NewPoint(2, "Canary Wharf Hub", location(t, 51.503, -0.019))
	require.NoError(t, err)
	camden, err := staging.NewPoint(3, "Camden Town Storage", location(t, 51.539, -0.142))
	require.NoError(t, err)

	network, err := staging.NewNetwork(hydePark, canaryWharf, camden)
	require.NoError(t, err)
	return network
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Run("locks_nearest_idle_courier", func(t *testing.T) {
		geo := fleet.NewGeoIndex()
		statuses := fleet.NewStatusTable()
		dispatcher := services.NewDispatcher(londonNetwork(t), geo, statuses)

		require.NoError(t, geo.Upsert("driver_near", location(t, 51.507, -0.160)))
		require.NoError(t, geo.Upsert("driver_far", location(t, 51.520, -0.100)))

		assignment, err := dispatcher.Dispatch(location(t, 51.509, -0.163))

		require.NoError(t, err)
		assert.Equal(t, courier.ID("driver_near"), assignment.CourierID)
		assert.Equal(t, "Hyde Park Depot", assignment.StagingPoint.Name())
		assert.Equal(t, courier.StatusAssigned, statuses.Get("driver_near"))
		assert.Equal(t, courier.StatusIdle, statuses.Get("driver_far"))
	})

	t.Run("skips_busy_couriers", func(t *testing.T) {
		geo := fleet.NewGeoIndex()
		statuses := fleet.NewStatusTable()
		dispatcher := services.NewDispatcher(londonNetwork(t), geo, statuses)

		// Nine busy couriers closer to the depot than the single idle one.
		for i := 0; i < 9; i++ {
			id := courier.ID(fmt.Sprintf("busy_%d", i))
			require.NoError(t, geo.Upsert(id, location(t, 51.508, -0.164)))
			statuses.Set(id, courier.StatusToCustomer)
		}
		require.NoError(t, geo.Upsert("idle_one", location(t, 51.52, -0.14)))

		assignment, err := dispatcher.Dispatch(location(t, 51.509, -0.163))

		require.NoError(t, err)
		assert.Equal(t, courier.ID("idle_one"), assignment.CourierID)
		assert.Equal(t, courier.StatusAssigned, statuses.Get("idle_one"))
	})

	t.Run("no_idle_courier", func(t *testing.T) {
		geo := fleet.NewGeoIndex()
		statuses := fleet.NewStatusTable()
		dispatcher := services.NewDispatcher(londonNetwork(t), geo, statuses)

		require.NoError(t, geo.Upsert("driver_1", location(t, 51.507, -0.160)))
		statuses.Set("driver_1", courier.StatusPickup)

		_, err := dispatcher.Dispatch(location(t, 51.509, -0.163))

		require.ErrorIs(t, err, services.ErrNoCourierAvailable)
		assert.Equal(t, courier.StatusPickup, statuses.Get("driver_1"))
	})

	t.Run("empty_fleet", func(t *testing.T) {
		dispatcher := services.NewDispatcher(londonNetwork(t), fleet.NewGeoIndex(), fleet.NewStatusTable())

		_, err := dispatcher.Dispatch(location(t, 51.509, -0.163))

		require.ErrorIs(t, err, services.ErrNoCourierAvailable)
	})

	t.Run("couriers_outside_radius_are_ignored", func(t *testing.T) {
		geo := fleet.NewGeoIndex()
		statuses := fleet.NewStatusTable()
		dispatcher := services.NewDispatcher(londonNetwork(t), geo, statuses)

		// Cambridge is ~80 km from every London staging point.
		require.NoError(t, geo.Upsert("remote", location(t, 52.2, 0.12)))

		_, err := dispatcher.Dispatch(location(t, 51.509, -0.163))

		require.ErrorIs(t, err, services.ErrNoCourierAvailable)
		assert.Equal(t, courier.StatusIdle, statuses.Get("remote"))
	})

	t.Run("staging_point_chosen_by_customer_proximity", func(t *testing.T) {
		geo := fleet.NewGeoIndex()
		statuses := fleet.NewStatusTable()
		dispatcher := services.NewDispatcher(londonNetwork(t), geo, statuses)

		require.NoError(t, geo.Upsert("driver_1", location(t, 51.505, -0.02)))

		// Customer in the east: Canary Wharf Hub is the nearest point.
		assignment, err := dispatcher.Dispatch(location(t, 51.50, -0.01))

		require.NoError(t, err)
		assert.Equal(t, "Canary Wharf Hub", assignment.StagingPoint.Name())
	})

	t.Run("rejects_unconstructed_customer_location", func(t *testing.T) {
		dispatcher := services.NewDispatcher(londonNetwork(t), fleet.NewGeoIndex(), fleet.NewStatusTable())
		var loc kernel.Location

		_, err := dispatcher.Dispatch(loc)

		require.Error(t, err)
	})
}

func TestDispatcher_Release(t *testing.T) {
	t.Run("returns_assigned_courier_to_idle", func(t *testing.T) {
		geo := fleet.NewGeoIndex()
		statuses := fleet.NewStatusTable()
		dispatcher := services.NewDispatcher(londonNetwork(t), geo, statuses)

		require.NoError(t, geo.Upsert("driver_1", location(t, 51.507, -0.160)))
		_, err := dispatcher.Dispatch(location(t, 51.509, -0.163))
		require.NoError(t, err)

		assert.True(t, dispatcher.Release("driver_1"))
		assert.Equal(t, courier.StatusIdle, statuses.Get("driver_1"))
	})

	t.Run("does_not_clobber_progressed_courier", func(t *testing.T) {
		statuses := fleet.NewStatusTable()
		dispatcher := services.NewDispatcher(londonNetwork(t), fleet.NewGeoIndex(), statuses)

		statuses.Set("driver_1", courier.StatusToCustomer)

		assert.False(t, dispatcher.Release("driver_1"))
		assert.Equal(t, courier.StatusToCustomer, statuses.Get("driver_1"))
	})
}
