// Package http exposes the dispatch engine over a REST API plus a websocket
// event stream. It coordinates between HTTP handlers and application use
// cases.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"dispatch/internal/adapters/out/broadcast"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server implements the HTTP surface of the dispatch engine.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	finishOrderHandler     commands.FinishOrderCommandHandler
	reportHeartbeatHandler commands.ReportHeartbeatCommandHandler
	reportRouteHandler     commands.ReportRouteCommandHandler

	getStagingPointsHandler queries.GetStagingPointsQueryHandler
	getMissionHandler       queries.GetMissionQueryHandler
	getActiveOrdersHandler  queries.GetActiveOrdersQueryHandler

	hub *broadcast.Hub
	log zerolog.Logger
}

// NewServer creates a server wired to the given command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	finishOrderHandler commands.FinishOrderCommandHandler,
	reportHeartbeatHandler commands.ReportHeartbeatCommandHandler,
	reportRouteHandler commands.ReportRouteCommandHandler,
	getStagingPointsHandler queries.GetStagingPointsQueryHandler,
	getMissionHandler queries.GetMissionQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	hub *broadcast.Hub,
	log zerolog.Logger,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		finishOrderHandler:      finishOrderHandler,
		reportHeartbeatHandler:  reportHeartbeatHandler,
		reportRouteHandler:      reportRouteHandler,
		getStagingPointsHandler: getStagingPointsHandler,
		getMissionHandler:       getMissionHandler,
		getActiveOrdersHandler:  getActiveOrdersHandler,
		hub:                     hub,
		log:                     log.With().Str("component", "http_server").Logger(),
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/ws", s.StreamEvents)

	api := e.Group("/api")
	api.GET("/warehouses", s.GetWarehouses)
	api.POST("/driver-locations", s.ReportDriverLocations)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/finish", s.FinishOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.POST("/routes", s.ReportRoute)
	api.GET("/missions/:courierId", s.GetMission)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetWarehouses handles GET /api/warehouses - lists the staging network.
func (s *Server) GetWarehouses(ctx echo.Context) error {
	points, err := s.getStagingPointsHandler.Handle(
		ctx.Request().Context(), queries.NewGetStagingPointsQuery())
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve warehouses", err)
	}

	return ctx.JSON(http.StatusOK, points)
}

type driverLocationRequest struct {
	ID     string  `json:"id"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Status string  `json:"status"`
}

type driverLocationsRequest struct {
	Drivers []driverLocationRequest `json:"drivers"`
}

// ReportDriverLocations handles POST /api/driver-locations - the fleet
// heartbeat. An empty batch is acknowledged without side effects.
func (s *Server) ReportDriverLocations(ctx echo.Context) error {
	var req driverLocationsRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	if len(req.Drivers) == 0 {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "OK"})
	}

	heartbeats := make([]courier.Heartbeat, 0, len(req.Drivers))
	for _, d := range req.Drivers {
		location, err := kernel.NewLocation(d.Lat, d.Lng)
		if err != nil {
			return s.badRequest(ctx, "Invalid driver location: "+err.Error())
		}

		hb, err := courier.NewHeartbeat(courier.ID(d.ID), location, courier.Status(d.Status))
		if err != nil {
			return s.badRequest(ctx, "Invalid heartbeat: "+err.Error())
		}
		heartbeats = append(heartbeats, hb)
	}

	cmd, err := commands.NewReportHeartbeatCommand(heartbeats)
	if err != nil {
		return s.badRequest(ctx, "Invalid heartbeat batch: "+err.Error())
	}

	if err = s.reportHeartbeatHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.internalError(ctx, "Failed to process heartbeat", err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

type createOrderRequest struct {
	CustomerName string  `json:"customer_name"`
	Item         string  `json:"item"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

type orderResponse struct {
	ID           string  `json:"id"`
	CustomerName string  `json:"customer_name"`
	Item         string  `json:"item"`
	DriverID     string  `json:"driver_id"`
	DeliveryLat  float64 `json:"delivery_lat"`
	DeliveryLng  float64 `json:"delivery_lng"`
	Status       string  `json:"status"`
}

type createOrderResponse struct {
	Success bool          `json:"success"`
	Order   orderResponse `json:"order"`
}

// CreateOrder handles POST /api/orders - dispatches a courier for a new
// order. Responds 404 when every nearby courier is busy.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewLocation(req.Lat, req.Lng)
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery location: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, req.CustomerName, req.Item, location)
	if err != nil {
		return s.badRequest(ctx, "Invalid order data: "+err.Error())
	}

	assignedCourier, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, services.ErrNoCourierAvailable) {
		return ctx.JSON(http.StatusNotFound, map[string]string{
			"message": "Drivers are busy. Please try again.",
		})
	}
	if err != nil {
		return s.internalError(ctx, "Failed to create order", err)
	}

	return ctx.JSON(http.StatusOK, createOrderResponse{
		Success: true,
		Order: orderResponse{
			ID:           orderID.String(),
			CustomerName: req.CustomerName,
			Item:         req.Item,
			DriverID:     assignedCourier.String(),
			DeliveryLat:  req.Lat,
			DeliveryLng:  req.Lng,
			Status:       "ASSIGNED",
		},
	})
}

type finishOrderRequest struct {
	OrderID  string `json:"orderId"`
	DriverID string `json:"driverId"`
}

// FinishOrder handles POST /api/orders/finish - marks a delivery complete.
func (s *Server) FinishOrder(ctx echo.Context) error {
	var req finishOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewFinishOrderCommand(orderID, courier.ID(req.DriverID))
	if err != nil {
		return s.badRequest(ctx, "Invalid completion report: "+err.Error())
	}

	err = s.finishOrderHandler.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, commands.ErrOrderNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}
	if err != nil {
		return s.internalError(ctx, "Failed to finish order", err)
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"success": true})
}

type routePointRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type reportRouteRequest struct {
	DriverID string              `json:"driverId"`
	OrderID  string              `json:"orderId"`
	Type     string              `json:"type"`
	Path     []routePointRequest `json:"path"`
}

// ReportRoute handles POST /api/routes - forwards route geometry to
// observers.
func (s *Server) ReportRoute(ctx echo.Context) error {
	var req reportRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	path := make([]kernel.Location, 0, len(req.Path))
	for _, p := range req.Path {
		point, pointErr := kernel.NewLocation(p.Lat, p.Lng)
		if pointErr != nil {
			return s.badRequest(ctx, "Invalid route point: "+pointErr.Error())
		}
		path = append(path, point)
	}

	cmd, err := commands.NewReportRouteCommand(
		courier.ID(req.DriverID), orderID, commands.RouteType(req.Type), path)
	if err != nil {
		return s.badRequest(ctx, "Invalid route: "+err.Error())
	}

	if err = s.reportRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.internalError(ctx, "Failed to broadcast route", err)
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"success": true})
}

// GetMission handles GET /api/missions/:courierId - a courier's current
// briefing.
func (s *Server) GetMission(ctx echo.Context) error {
	query, err := queries.NewGetMissionQuery(courier.ID(ctx.Param("courierId")))
	if err != nil {
		return s.badRequest(ctx, "Invalid courier id")
	}

	mission, err := s.getMissionHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, queries.ErrMissionNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "No mission for courier",
		})
	}
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve mission", err)
	}

	return ctx.JSON(http.StatusOK, mission)
}

type activeOrderResponse struct {
	ID           string  `json:"id"`
	CustomerName string  `json:"customer_name"`
	Item         string  `json:"item"`
	DriverID     string  `json:"driver_id"`
	DeliveryLat  float64 `json:"delivery_lat"`
	DeliveryLng  float64 `json:"delivery_lng"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

// GetActiveOrders handles GET /api/orders/active - all undelivered orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.getActiveOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return s.internalError(ctx, "Failed to retrieve orders", err)
	}

	response := make([]activeOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, activeOrderResponse{
			ID:           o.ID.String(),
			CustomerName: o.CustomerName,
			Item:         o.Item,
			DriverID:     o.CourierID,
			DeliveryLat:  o.Lat,
			DeliveryLng:  o.Lng,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func (s *Server) internalError(ctx echo.Context, message string, err error) error {
	s.log.Error().Err(err).Str("path", ctx.Path()).Msg(message)
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
