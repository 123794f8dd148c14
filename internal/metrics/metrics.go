// Package metrics exposes Prometheus instrumentation for the dispatch
// engine. The Recorder implements the event publisher port so it can sit in
// the broadcast fan-out and count every fleet event without the command
// handlers knowing about metrics.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dispatch/internal/core/ports"
)

// Recorder counts fleet events and serves the /metrics endpoint.
type Recorder struct {
	registry *prometheus.Registry
	events   *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry, including the
// standard Go and process collectors.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dispatch",
		Name:      "events_total",
		Help:      "Fleet events broadcast, by event kind.",
	}, []string{"event"})
	registry.MustRegister(events)

	return &Recorder{
		registry: registry,
		events:   events,
	}
}

// Publish counts the event. Never fails; payloads are not inspected.
func (r *Recorder) Publish(_ context.Context, kind ports.EventKind, _ any) error {
	r.events.WithLabelValues(string(kind)).Inc()
	return nil
}

// RegisterSubscriberGauge exposes the current websocket subscriber count.
func (r *Recorder) RegisterSubscriberGauge(count func() int) {
	r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "dispatch",
		Name:      "ws_subscribers",
		Help:      "Currently connected websocket subscribers.",
	}, func() float64 { return float64(count()) }))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
