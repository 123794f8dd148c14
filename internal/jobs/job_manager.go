package jobs

import (
	"fmt"

	"github.com/rs/zerolog"

	"dispatch/internal/sim"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	fleetTickJob *FleetTickJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(fleet *sim.Fleet, log zerolog.Logger) *JobManager {
	return &JobManager{
		fleetTickJob: NewFleetTickJob(fleet, log),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.fleetTickJob.Start(); err != nil {
		return fmt.Errorf("failed to start fleet tick job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.fleetTickJob.Stop()
}
