// Package jobs provides scheduled background tasks for the dispatch system.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with second-level
// resolution. The simulator binary runs the fleet tick job every second to
// mimic a live courier fleet: heartbeats, mission acceptance, movement and
// delivery reports.
//
// Jobs are managed through JobManager, which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(fleet, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//	    log.Fatal().Err(err).Msg("failed to start jobs")
//	}
//	defer jobManager.StopAll()
package jobs
