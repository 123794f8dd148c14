package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"dispatch/internal/sim"
)

// FleetTickJob advances the simulated fleet once per second.
// Each tick reports the heartbeat batch, polls missions for idle drivers
// and moves every driver one step.
type FleetTickJob struct {
	fleet *sim.Fleet
	cron  *cron.Cron
	log   zerolog.Logger
}

// NewFleetTickJob creates the per-second fleet simulation job.
func NewFleetTickJob(fleet *sim.Fleet, log zerolog.Logger) *FleetTickJob {
	return &FleetTickJob{
		fleet: fleet,
		cron:  cron.New(cron.WithSeconds()),
		log:   log.With().Str("component", "fleet_tick_job").Logger(),
	}
}

// Start begins ticking the fleet every second.
func (j *FleetTickJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		j.fleet.Tick(ctx, time.Now())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info().Int("drivers", j.fleet.Size()).Msg("fleet tick job started")
	return nil
}

// Stop halts the job. Running ticks are allowed to complete.
func (j *FleetTickJob) Stop() {
	j.cron.Stop()
	j.log.Info().Msg("fleet tick job stopped")
}
