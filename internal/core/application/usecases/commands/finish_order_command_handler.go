package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrOrderNotFound is returned when the order being finished does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderFinishedEvent is the payload broadcast when a delivery completes.
type OrderFinishedEvent struct {
	OrderID string `json:"orderId"`
}

// FinishOrderCommandHandler marks an order as delivered and broadcasts the
// completion. The courier is not freed here: couriers report their own IDLE
// status through the heartbeat once they are ready for new work.
type FinishOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewFinishOrderCommandHandler creates a handler for delivery completion.
func NewFinishOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) FinishOrderCommandHandler {
	return FinishOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the completion command.
// Returns ErrOrderNotFound for an unknown order; nothing is broadcast in
// that case.
func (h FinishOrderCommandHandler) Handle(ctx context.Context, cmd FinishOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.Deliver(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.Publish(ctx, ports.EventOrderFinished, OrderFinishedEvent{
		OrderID: cmd.OrderID().String(),
	})

	return nil
}
