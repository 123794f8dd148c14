package courier

import (
	"dispatch/internal/pkg/errs"
)

// ID identifies a courier within the fleet. Identifiers are assigned by the
// fleet itself (the heartbeat feed reports them) and are opaque to the
// dispatch core. The empty string is invalid.
type ID string

// NewID creates a courier ID from its string form.
func NewID(s string) (ID, error) {
	id := ID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate checks that the ID is not empty.
func (id ID) Validate() error {
	if id == "" {
		return errs.NewValueIsRequiredError("courier id")
	}
	return nil
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}
