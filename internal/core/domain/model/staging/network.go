package staging

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Network is the ordered set of staging points the dispatcher selects from.
// The configured order matters: when two points are equally close to a
// customer, the one listed first wins.
type Network struct {
	points []Point
}

// NewNetwork creates a network from the configured staging points.
// At least one point is required; every point must be properly constructed.
func NewNetwork(points ...Point) (Network, error) {
	if len(points) == 0 {
		return Network{}, errs.NewValueIsRequiredError("staging points")
	}

	for _, p := range points {
		if err := p.Validate(); err != nil {
			return Network{}, err
		}
	}

	return Network{points: append([]Point(nil), points...)}, nil
}

// Points returns the staging points in configured order.
// The returned slice is a copy.
func (n Network) Points() []Point {
	return append([]Point(nil), n.points...)
}

// Nearest returns the staging point with the minimal great-circle distance to
// the given location. Ties are broken by configured order: the first point at
// the minimal distance wins.
func (n Network) Nearest(location kernel.Location) (Point, error) {
	if err := location.Validate(); err != nil {
		return Point{}, err
	}
	if len(n.points) == 0 {
		return Point{}, errs.NewValueIsRequiredError("staging points")
	}

	best := n.points[0]
	bestDist, err := best.Location().DistanceKm(location)
	if err != nil {
		return Point{}, err
	}

	for _, p := range n.points[1:] {
		d, dErr := p.Location().DistanceKm(location)
		if dErr != nil {
			return Point{}, dErr
		}
		if d < bestDist {
			bestDist = d
			best = p
		}
	}

	return best, nil
}
