// The simulator drives a virtual courier fleet against a running dispatch
// engine. Every driver heartbeats its position once per second, polls for a
// briefing when idle and plays out the drive to the staging point, the
// pickup and the delivery.
package main

import (
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"dispatch/internal/jobs"
	"dispatch/internal/sim"
)

func main() {
	backendURL := pflag.String("backend-url", "http://localhost:8080", "base URL of the dispatch engine")
	drivers := pflag.Int("drivers", 50, "number of simulated drivers")
	seed := pflag.Int64("seed", 0, "random seed, 0 picks one from the clock")
	pflag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if *drivers <= 0 {
		log.Fatal().Int("drivers", *drivers).Msg("driver count must be positive")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	client := sim.NewClient(*backendURL)
	fleet := sim.NewFleet(*drivers, client, rand.New(rand.NewSource(*seed)), log)

	jobManager := jobs.NewJobManager(fleet, log)
	if err := jobManager.StartAll(); err != nil {
		log.Fatal().Err(err).Msg("failed to start fleet simulation")
	}
	log.Info().
		Str("backend", *backendURL).
		Int("drivers", *drivers).
		Msg("fleet simulator started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	jobManager.StopAll()
}
