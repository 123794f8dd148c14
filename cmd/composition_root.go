// Package cmd wires the dispatch engine together: configuration, the
// composition root that builds every adapter and use case, and the shared
// staging network the engine dispatches from.
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	httpserver "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/broadcast"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/staging"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/fleet"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
)

// CompositionRoot builds and holds all application dependencies.
// In-memory fleet state (positions, statuses, missions) is shared between
// every handler created from the same root.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	network    staging.Network
	geo        *fleet.GeoIndex
	statuses   *fleet.StatusTable
	missions   *fleet.MissionRegistry
	dispatcher services.Dispatcher

	hub       *broadcast.Hub
	recorder  *metrics.Recorder
	publisher ports.EventPublisher

	log zerolog.Logger
}

// NewCompositionRoot assembles the application graph. Extra publishers (for
// example an AMQP bridge) are fanned out together with the websocket hub and
// the metrics recorder.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	log zerolog.Logger,
	extraPublishers ...ports.EventPublisher,
) (*CompositionRoot, error) {
	network, err := buildNetwork(configs)
	if err != nil {
		return nil, fmt.Errorf("failed to build staging network: %w", err)
	}

	geo := fleet.NewGeoIndex()
	statuses := fleet.NewStatusTable()

	hub := broadcast.NewHub(log, broadcast.DefaultBufferSize)
	recorder := metrics.NewRecorder()
	recorder.RegisterSubscriberGauge(hub.SubscriberCount)

	publishers := append([]ports.EventPublisher{hub, recorder}, extraPublishers...)

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		network:    network,
		geo:        geo,
		statuses:   statuses,
		missions:   fleet.NewMissionRegistry(),
		dispatcher: services.NewDispatcher(network, geo, statuses),
		hub:        hub,
		recorder:   recorder,
		publisher:  broadcast.NewMultiPublisher(publishers...),
		log:        log,
	}, nil
}

type stagingPointSeed struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func buildNetwork(configs Config) (staging.Network, error) {
	if configs.StagingPoints == "" {
		return LondonNetwork()
	}

	var seeds []stagingPointSeed
	if err := json.Unmarshal([]byte(configs.StagingPoints), &seeds); err != nil {
		return staging.Network{}, fmt.Errorf("invalid STAGING_POINTS: %w", err)
	}
	return networkFromSeeds(seeds)
}

// LondonNetwork is the built-in staging network the engine dispatches from
// when no override is configured.
func LondonNetwork() (staging.Network, error) {
	return networkFromSeeds([]stagingPointSeed{
		{ID: 1, Name: "Hyde Park Depot", Lat: 51.508, Lng: -0.165},
		{ID: 2, Name: "Canary Wharf Hub", Lat: 51.503, Lng: -0.019},
		{ID: 3, Name: "Camden Town Storage", Lat: 51.539, Lng: -0.142},
	})
}

func networkFromSeeds(seeds []stagingPointSeed) (staging.Network, error) {
	points := make([]staging.Point, 0, len(seeds))
	for _, s := range seeds {
		location, err := kernel.NewLocation(s.Lat, s.Lng)
		if err != nil {
			return staging.Network{}, err
		}
		point, err := staging.NewPoint(s.ID, s.Name, location)
		if err != nil {
			return staging.Network{}, err
		}
		points = append(points, point)
	}

	return staging.NewNetwork(points...)
}

// Hub exposes the websocket hub so the binary can close it on shutdown.
func (c *CompositionRoot) Hub() *broadcast.Hub {
	return c.hub
}

// Recorder exposes the metrics recorder for mounting the /metrics endpoint.
func (c *CompositionRoot) Recorder() *metrics.Recorder {
	return c.recorder
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.dispatcher, c.missions, c.publisher)
}

func (c *CompositionRoot) CreateFinishOrderCommandHandler() commands.FinishOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFinishOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateReportHeartbeatCommandHandler() commands.ReportHeartbeatCommandHandler {
	return commands.NewReportHeartbeatCommandHandler(c.geo, c.statuses, c.publisher)
}

func (c *CompositionRoot) CreateReportRouteCommandHandler() commands.ReportRouteCommandHandler {
	return commands.NewReportRouteCommandHandler(c.publisher)
}

func (c *CompositionRoot) CreateGetStagingPointsQueryHandler() queries.GetStagingPointsQueryHandler {
	return queries.NewGetStagingPointsQueryHandler(c.network)
}

func (c *CompositionRoot) CreateGetMissionQueryHandler() queries.GetMissionQueryHandler {
	return queries.NewGetMissionQueryHandler(c.missions)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST and websocket surface over the handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpserver.Server {
	return httpserver.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateFinishOrderCommandHandler(),
		c.CreateReportHeartbeatCommandHandler(),
		c.CreateReportRouteCommandHandler(),
		c.CreateGetStagingPointsQueryHandler(),
		c.CreateGetMissionQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.hub,
		c.log,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
