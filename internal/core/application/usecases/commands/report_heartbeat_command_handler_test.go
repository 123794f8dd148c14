package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/fleet"
	"dispatch/internal/core/ports"
)

func heartbeat(t *testing.T, id string, lat, lng float64, status courier.Status) courier.Heartbeat {
	t.Helper()

	hb, err := courier.NewHeartbeat(courier.ID(id), location(t, lat, lng), status)
	require.NoError(t, err)
	return hb
}

func TestNewReportHeartbeatCommand(t *testing.T) {
	t.Run("valid_batch", func(t *testing.T) {
		cmd, err := commands.NewReportHeartbeatCommand([]courier.Heartbeat{
			heartbeat(t, "driver_1", 51.50, -0.10, courier.StatusIdle),
		})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Len(t, cmd.Heartbeats(), 1)
	})

	t.Run("empty_batch", func(t *testing.T) {
		_, err := commands.NewReportHeartbeatCommand(nil)

		require.ErrorIs(t, err, commands.ErrHeartbeatBatchIsEmpty)
	})

	t.Run("unconstructed_entry", func(t *testing.T) {
		_, err := commands.NewReportHeartbeatCommand([]courier.Heartbeat{{}})

		require.Error(t, err)
	})
}

func TestReportHeartbeatCommandHandler_Handle(t *testing.T) {
	t.Run("updates_both_stores_and_broadcasts", func(t *testing.T) {
		ctx := t.Context()
		geo := fleet.NewGeoIndex()
		statuses := fleet.NewStatusTable()

		cmd, err := commands.NewReportHeartbeatCommand([]courier.Heartbeat{
			heartbeat(t, "driver_1", 51.50, -0.10, courier.StatusIdle),
			heartbeat(t, "driver_2", 51.51, -0.12, courier.StatusPickup),
		})
		require.NoError(t, err)

		publisher := new(MockEventPublisher)
		publisher.On("Publish", ctx, ports.EventDriversUpdate, []commands.DriverPosition{
			{ID: "driver_1", Lat: 51.50, Lng: -0.10, Status: "IDLE"},
			{ID: "driver_2", Lat: 51.51, Lng: -0.12, Status: "PICKUP"},
		}).Return(nil).Once()

		h := commands.NewReportHeartbeatCommandHandler(geo, statuses, publisher)
		require.NoError(t, h.Handle(ctx, cmd))

		assert.Equal(t, 2, geo.Len())
		assert.Equal(t, courier.StatusIdle, statuses.Get("driver_1"))
		assert.Equal(t, courier.StatusPickup, statuses.Get("driver_2"))
		publisher.AssertExpectations(t)
	})

	t.Run("heartbeat_frees_assigned_courier", func(t *testing.T) {
		ctx := t.Context()
		geo := fleet.NewGeoIndex()
		statuses := fleet.NewStatusTable()
		require.True(t, statuses.CompareAndSet("driver_1", courier.StatusIdle, courier.StatusAssigned))

		cmd, err := commands.NewReportHeartbeatCommand([]courier.Heartbeat{
			heartbeat(t, "driver_1", 51.50, -0.10, courier.StatusIdle),
		})
		require.NoError(t, err)

		publisher := new(MockEventPublisher)
		publisher.On("Publish", ctx, ports.EventDriversUpdate, mock.Anything).Return(nil).Once()

		h := commands.NewReportHeartbeatCommandHandler(geo, statuses, publisher)
		require.NoError(t, h.Handle(ctx, cmd))

		assert.Equal(t, courier.StatusIdle, statuses.Get("driver_1"))
	})

	t.Run("rejects_unconstructed_command", func(t *testing.T) {
		h := commands.NewReportHeartbeatCommandHandler(
			fleet.NewGeoIndex(), fleet.NewStatusTable(), new(MockEventPublisher))

		require.Error(t, h.Handle(t.Context(), commands.ReportHeartbeatCommand{}))
	})
}
