package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired = errors.New("customer name is required")
	ErrItemIsRequired         = errors.New("item is required")
)

// CreateOrderCommand represents a request to create a new delivery order.
// Encapsulates the customer details and the delivery destination; the courier
// is chosen by the handler, not by the caller.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	location, _ := kernel.NewLocation(51.506, -0.10)
//	cmd, err := NewCreateOrderCommand(orderID, "Alice Smith", "Laptop", location)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerName     string
	item             string
	deliveryLocation kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that the order ID and delivery location are valid and that the
// customer name and item are not empty.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerName string,
	item string,
	deliveryLocation kernel.Location,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerName(customerName),
		orderCommand.setItem(item),
		orderCommand.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerName returns the name of the ordering customer.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// Item returns the ordered item description.
func (c CreateOrderCommand) Item() string {
	return c.item
}

// DeliveryLocation returns the customer's delivery coordinates.
func (c CreateOrderCommand) DeliveryLocation() kernel.Location {
	return c.deliveryLocation
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setItem(item string) error {
	if item == "" {
		return ErrItemIsRequired
	}

	c.item = item
	return nil
}

func (c *CreateOrderCommand) setDeliveryLocation(deliveryLocation kernel.Location) error {
	if err := deliveryLocation.Validate(); err != nil {
		return err
	}

	c.deliveryLocation = deliveryLocation
	return nil
}
