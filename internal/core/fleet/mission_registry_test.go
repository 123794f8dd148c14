package fleet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/staging"
	"dispatch/internal/core/fleet"
)

func mission(t *testing.T, courierID string) fleet.Mission {
	t.Helper()

	depot, err := staging.NewPoint(1, "Hyde Park Depot", location(t, 51.508, -0.165))
	require.NoError(t, err)

	m, err := fleet.NewMission(kernel.NewUUID(), courier.ID(courierID), depot, location(t, 51.506, -0.10))
	require.NoError(t, err)
	return m
}

func TestNewMission(t *testing.T) {
	t.Run("valid_mission", func(t *testing.T) {
		m := mission(t, "driver_1")

		require.NoError(t, m.Validate())
		assert.Equal(t, "driver_1", m.CourierID().String())
		assert.Equal(t, "Hyde Park Depot", m.StagingPoint().Name())
	})

	t.Run("missing_order_id", func(t *testing.T) {
		depot, _ := staging.NewPoint(1, "Depot", location(t, 51.508, -0.165))

		_, err := fleet.NewMission(kernel.UUID{}, "driver_1", depot, location(t, 51.506, -0.10))

		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var m fleet.Mission

		require.ErrorIs(t, m.Validate(), fleet.ErrMissionIsNotConstructed)
	})
}

func TestMissionRegistry(t *testing.T) {
	t.Run("get_on_empty_registry", func(t *testing.T) {
		reg := fleet.NewMissionRegistry()

		_, ok := reg.Get("driver_1")

		assert.False(t, ok)
	})

	t.Run("set_then_get", func(t *testing.T) {
		reg := fleet.NewMissionRegistry()
		m := mission(t, "driver_1")

		require.NoError(t, reg.Set(m))

		got, ok := reg.Get("driver_1")
		require.True(t, ok)
		assert.True(t, got.OrderID().IsEqual(m.OrderID()))
	})

	t.Run("reassignment_overwrites", func(t *testing.T) {
		reg := fleet.NewMissionRegistry()
		first := mission(t, "driver_1")
		second := mission(t, "driver_1")

		require.NoError(t, reg.Set(first))
		require.NoError(t, reg.Set(second))

		got, ok := reg.Get("driver_1")
		require.True(t, ok)
		assert.True(t, got.OrderID().IsEqual(second.OrderID()))
		assert.False(t, got.OrderID().IsEqual(first.OrderID()))
	})

	t.Run("rejects_unconstructed_mission", func(t *testing.T) {
		reg := fleet.NewMissionRegistry()
		var m fleet.Mission

		require.Error(t, reg.Set(m))
	})

	t.Run("mission_persists_after_delivery", func(t *testing.T) {
		// There is no clearing operation: a courier's last mission stays
		// visible until the next assignment overwrites it.
		reg := fleet.NewMissionRegistry()
		m := mission(t, "driver_1")
		require.NoError(t, reg.Set(m))

		got, ok := reg.Get("driver_1")
		require.True(t, ok)
		assert.True(t, got.OrderID().IsEqual(m.OrderID()))
	})
}
