package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrFinishOrderCommandIsNotConstructed = errors.New(
	"FinishOrderCommand must be created via NewFinishOrderCommand constructor",
)

// FinishOrderCommand represents a courier reporting a completed delivery.
type FinishOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID courier.ID

	guard guard.ConstructorGuard
}

// NewFinishOrderCommand creates a command to mark an order as delivered.
func NewFinishOrderCommand(orderID kernel.UUID, courierID courier.ID) (FinishOrderCommand, error) {
	finishCommand := FinishOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		finishCommand.setOrderID(orderID),
		finishCommand.setCourierID(courierID),
	); err != nil {
		return FinishOrderCommand{}, err
	}

	return finishCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c FinishOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinishOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being completed.
func (c FinishOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier reporting the completion.
func (c FinishOrderCommand) CourierID() courier.ID {
	return c.courierID
}

func (c *FinishOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FinishOrderCommand) setCourierID(courierID courier.ID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
