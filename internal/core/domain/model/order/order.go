package order

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order represents a delivery order. It is the aggregate root managing the
// order lifecycle from assignment through delivery.
//
// Order maintains these invariants:
//   - Has a valid unique identifier
//   - Has a non-empty customer name and item description
//   - Has a valid delivery location
//   - Is always bound to exactly one courier (orders only exist once a
//     courier has been locked for them)
//   - Status transitions follow the lifecycle state machine
type Order struct {
	id               kernel.UUID
	customerName     string
	item             string
	deliveryLocation kernel.Location
	courierID        courier.ID
	status           Status

	isConstructed bool
}

// NewOrder creates an order freshly assigned to the given courier.
// The order starts in Assigned status.
func NewOrder(
	id kernel.UUID,
	customerName string,
	item string,
	deliveryLocation kernel.Location,
	courierID courier.ID,
) (*Order, error) {
	o := &Order{
		status:        Assigned,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setItem(item),
		o.setDeliveryLocation(deliveryLocation),
		o.setCourierID(courierID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its current
// lifecycle status. Intended for repository use only.
func RestoreOrder(
	id kernel.UUID,
	customerName string,
	item string,
	deliveryLocation kernel.Location,
	courierID courier.ID,
	status Status,
) (*Order, error) {
	o, err := NewOrder(id, customerName, item, deliveryLocation, courierID)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerName returns the ordering customer's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Item returns the description of the ordered item.
func (o *Order) Item() string {
	return o.item
}

// DeliveryLocation returns the customer's delivery location.
func (o *Order) DeliveryLocation() kernel.Location {
	return o.deliveryLocation
}

// CourierID returns the courier locked for this order.
func (o *Order) CourierID() courier.ID {
	return o.courierID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PickUp records that the courier collected the order at the staging point.
func (o *Order) PickUp() error {
	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver marks the order as delivered. Delivered is a final state.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customerName = name
	return nil
}

func (o *Order) setItem(item string) error {
	if item == "" {
		return errs.NewValueIsRequiredError("item")
	}
	o.item = item
	return nil
}

func (o *Order) setDeliveryLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.deliveryLocation = location
	return nil
}

func (o *Order) setCourierID(id courier.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.courierID = id
	return nil
}
