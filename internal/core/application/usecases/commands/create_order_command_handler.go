package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/fleet"
	"dispatch/internal/core/ports"
)

// OrderCreatedEvent is the payload broadcast when an order is assigned.
type OrderCreatedEvent struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	DriverID string  `json:"driverId"`
	Status   string  `json:"status"`
}

// CreateOrderCommandHandler handles the business logic for order creation.
// Dispatches a courier, persists the order, records the courier's mission
// and broadcasts the assignment.
//
// The courier lock is taken before the order is persisted. If persistence
// fails, the lock is released so the courier is not stranded in ASSIGNED
// with no order to serve.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher services.Dispatcher
	missions   *fleet.MissionRegistry
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher services.Dispatcher,
	missions *fleet.MissionRegistry,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		missions:   missions,
		publisher:  publisher,
	}
}

// Handle processes the order creation command and returns the courier that
// was assigned. Returns services.ErrNoCourierAvailable when every candidate
// near the staging point is busy; no state is modified in that case.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (courier.ID, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	assignment, err := h.dispatcher.Dispatch(cmd.DeliveryLocation())
	if err != nil {
		return "", err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerName(),
		cmd.Item(),
		cmd.DeliveryLocation(),
		assignment.CourierID,
	)
	if err != nil {
		h.dispatcher.Release(assignment.CourierID)
		return "", err
	}

	mission, err := fleet.NewMission(
		cmd.OrderID(),
		assignment.CourierID,
		assignment.StagingPoint,
		cmd.DeliveryLocation(),
	)
	if err != nil {
		h.dispatcher.Release(assignment.CourierID)
		return "", err
	}

	if err = h.persist(ctx, newOrder); err != nil {
		h.dispatcher.Release(assignment.CourierID)
		return "", err
	}

	if err = h.missions.Set(mission); err != nil {
		return "", err
	}

	// Broadcast is best-effort: the order is already committed.
	_ = h.publisher.Publish(ctx, ports.EventOrderCreated, OrderCreatedEvent{
		ID:       cmd.OrderID().String(),
		Lat:      cmd.DeliveryLocation().Lat(),
		Lng:      cmd.DeliveryLocation().Lng(),
		DriverID: assignment.CourierID.String(),
		Status:   order.Assigned.String(),
	})

	return assignment.CourierID, nil
}

func (h CreateOrderCommandHandler) persist(ctx context.Context, aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
