package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrReportRouteCommandIsNotConstructed = errors.New(
		"ReportRouteCommand must be created via NewReportRouteCommand constructor",
	)
	ErrRoutePathIsEmpty   = errors.New("route path must contain at least one point")
	ErrRouteTypeIsInvalid = errors.New("route type must be to_staging or to_customer")
)

// RouteType names the leg a route geometry belongs to.
type RouteType string

const (
	RouteToStaging  RouteType = "to_staging"
	RouteToCustomer RouteType = "to_customer"
)

// ReportRouteCommand carries the planned path a courier is about to drive.
// Routes are transient visualisation data: they are broadcast but never
// stored.
type ReportRouteCommand struct { //nolint:recvcheck //using for validation
	courierID courier.ID
	orderID   kernel.UUID
	routeType RouteType
	path      []kernel.Location

	guard guard.ConstructorGuard
}

// NewReportRouteCommand creates a command from a courier's planned route.
func NewReportRouteCommand(
	courierID courier.ID,
	orderID kernel.UUID,
	routeType RouteType,
	path []kernel.Location,
) (ReportRouteCommand, error) {
	routeCommand := ReportRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		routeCommand.setCourierID(courierID),
		routeCommand.setOrderID(orderID),
		routeCommand.setRouteType(routeType),
		routeCommand.setPath(path),
	); err != nil {
		return ReportRouteCommand{}, err
	}

	return routeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportRouteCommand) Validate() error {
	return c.guard.Validate(ErrReportRouteCommandIsNotConstructed)
}

// CourierID returns the courier driving the route.
func (c ReportRouteCommand) CourierID() courier.ID {
	return c.courierID
}

// OrderID returns the order the route serves.
func (c ReportRouteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RouteType returns which delivery leg the route covers.
func (c ReportRouteCommand) RouteType() RouteType {
	return c.routeType
}

// Path returns the route geometry.
func (c ReportRouteCommand) Path() []kernel.Location {
	return c.path
}

func (c *ReportRouteCommand) setCourierID(courierID courier.ID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *ReportRouteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportRouteCommand) setRouteType(routeType RouteType) error {
	switch routeType {
	case RouteToStaging, RouteToCustomer:
		c.routeType = routeType
		return nil
	default:
		return ErrRouteTypeIsInvalid
	}
}

func (c *ReportRouteCommand) setPath(path []kernel.Location) error {
	if len(path) == 0 {
		return ErrRoutePathIsEmpty
	}

	for _, point := range path {
		if err := point.Validate(); err != nil {
			return err
		}
	}

	c.path = append([]kernel.Location(nil), path...)
	return nil
}
