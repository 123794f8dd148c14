package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Assigned ──┬──> PickedUp ──> Delivered
//	           │                     ^
//	           └─────────────────────┘
//	  (direct delivery without a pickup report is allowed)
//
// Orders are born Assigned: the dispatcher only records an order once a
// courier has been locked for it. Couriers do not always report the pickup,
// so Delivered is reachable straight from Assigned.
type Status string

const (
	// Assigned is the initial status: a courier is locked for the order.
	Assigned Status = "ASSIGNED"
	// PickedUp indicates the courier collected the order at the staging point.
	PickedUp Status = "PICKED_UP"
	// Delivered is the final status with no further transitions.
	Delivered Status = "DELIVERED"
)

// Validate checks that the status is one of the known lifecycle values.
// Used when reconstructing orders from persistence or external input.
func (s Status) Validate() error {
	switch s {
	case Assigned, PickedUp, Delivered:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid order status", string(s)))
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// PickUp transitions the status to PickedUp.
// Only allowed from Assigned.
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return s, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot pick up order in status %q", string(s)))
	}
	return PickedUp, nil
}

// Deliver transitions the status to Delivered.
// Allowed from Assigned and PickedUp; Delivered is terminal.
func (s Status) Deliver() (Status, error) {
	switch s {
	case Assigned, PickedUp:
		return Delivered, nil
	default:
		return s, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot deliver order in status %q", string(s)))
	}
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Delivered
}
