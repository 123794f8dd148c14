package staging

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrPointIsNotConstructed is returned when validating a zero-value Point.
var ErrPointIsNotConstructed = errors.New("Point must be created via NewPoint constructor")

// Point is a staging point: a fixed fulfillment location orders are picked up
// from. Points are static configuration and read-only to the dispatch core.
type Point struct { //nolint:recvcheck //using for validation
	id       int
	name     string
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewPoint creates a validated staging point.
func NewPoint(id int, name string, location kernel.Location) (Point, error) {
	p := Point{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setID(id), p.setName(name), p.setLocation(location)); err != nil {
		return Point{}, err
	}

	return p, nil
}

// Validate ensures the point was created through NewPoint.
func (p Point) Validate() error {
	return p.guard.Validate(ErrPointIsNotConstructed)
}

// ID returns the point's numeric identifier.
func (p Point) ID() int {
	return p.id
}

// Name returns the point's display name.
func (p Point) Name() string {
	return p.name
}

// Location returns the point's fixed location.
func (p Point) Location() kernel.Location {
	return p.location
}

func (p *Point) setID(id int) error {
	if id <= 0 {
		return errs.NewValueIsInvalidError("staging point id")
	}
	p.id = id
	return nil
}

func (p *Point) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("staging point name")
	}
	p.name = name
	return nil
}

func (p *Point) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	p.location = location
	return nil
}
