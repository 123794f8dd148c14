package courier

// Status is a courier's self-reported working state. The set of values is
// open-ended: couriers report whatever their movement state machine produces
// (TO_STAGING, PICKUP, ...), and the dispatch core only distinguishes idle
// couriers from busy ones. An empty status is equivalent to StatusIdle.
type Status string

const (
	// StatusIdle marks a courier as available for assignment.
	StatusIdle Status = "IDLE"
	// StatusAssigned is set by the dispatcher when it locks a courier for an
	// order. Couriers keep reporting their own progression from there on.
	StatusAssigned Status = "ASSIGNED"
	// StatusToStaging is reported while driving to the staging point.
	StatusToStaging Status = "TO_STAGING"
	// StatusPickup is reported while collecting the order at the staging point.
	StatusPickup Status = "PICKUP"
	// StatusToCustomer is reported while driving to the customer.
	StatusToCustomer Status = "TO_CUSTOMER"
)

// Normalize maps the empty status to StatusIdle. A courier that has never
// reported a status is considered idle.
func (s Status) Normalize() Status {
	if s == "" {
		return StatusIdle
	}
	return s
}

// IsIdle reports whether the courier may be offered a new order.
func (s Status) IsIdle() bool {
	return s.Normalize() == StatusIdle
}
