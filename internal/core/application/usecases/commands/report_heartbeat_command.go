package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/guard"
)

var (
	ErrReportHeartbeatCommandIsNotConstructed = errors.New(
		"ReportHeartbeatCommand must be created via NewReportHeartbeatCommand constructor",
	)
	ErrHeartbeatBatchIsEmpty = errors.New("heartbeat batch must contain at least one entry")
)

// ReportHeartbeatCommand carries one batch of courier position and status
// reports, typically one entry per courier in the fleet per tick.
type ReportHeartbeatCommand struct { //nolint:recvcheck //using for validation
	heartbeats []courier.Heartbeat

	guard guard.ConstructorGuard
}

// NewReportHeartbeatCommand creates a command from a non-empty batch of
// constructed heartbeats.
func NewReportHeartbeatCommand(heartbeats []courier.Heartbeat) (ReportHeartbeatCommand, error) {
	if len(heartbeats) == 0 {
		return ReportHeartbeatCommand{}, ErrHeartbeatBatchIsEmpty
	}

	for _, hb := range heartbeats {
		if err := hb.Validate(); err != nil {
			return ReportHeartbeatCommand{}, err
		}
	}

	return ReportHeartbeatCommand{
		heartbeats: append([]courier.Heartbeat(nil), heartbeats...),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportHeartbeatCommand) Validate() error {
	return c.guard.Validate(ErrReportHeartbeatCommandIsNotConstructed)
}

// Heartbeats returns the reported batch.
func (c ReportHeartbeatCommand) Heartbeats() []courier.Heartbeat {
	return c.heartbeats
}
