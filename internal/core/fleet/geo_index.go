package fleet

import (
	"sort"
	"sync"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Candidate is one result of a proximity query: a courier and its great-circle
// distance from the query center.
type Candidate struct {
	CourierID  courier.ID
	DistanceKm float64
}

// GeoIndex is the live positional index of the fleet, keyed by courier ID.
// It is owned by the dispatch core: callers interact only through Upsert,
// UpsertBatch, and QueryNearest, and all access is serialized internally.
//
// Couriers are never removed; positions are snapshots and last write wins.
type GeoIndex struct {
	mu        sync.RWMutex
	positions map[courier.ID]kernel.Location
}

// NewGeoIndex creates an empty index.
func NewGeoIndex() *GeoIndex {
	return &GeoIndex{
		positions: make(map[courier.ID]kernel.Location),
	}
}

// Upsert records or replaces a single courier's position.
func (g *GeoIndex) Upsert(id courier.ID, location kernel.Location) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.positions[id] = location
	return nil
}

// UpsertBatch applies one heartbeat tick as a set. The batch is validated
// up front and applied under a single lock, so a malformed entry rejects the
// whole batch and existing entries are never left half-updated.
func (g *GeoIndex) UpsertBatch(batch []courier.Heartbeat) error {
	for _, hb := range batch {
		if err := hb.Validate(); err != nil {
			return err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, hb := range batch {
		g.positions[hb.CourierID()] = hb.Location()
	}
	return nil
}

// Len returns the number of indexed couriers.
func (g *GeoIndex) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.positions)
}

// QueryNearest returns up to limit couriers within radiusKm of center,
// ordered by ascending distance. Equidistant couriers are ordered by ID so
// results are deterministic.
func (g *GeoIndex) QueryNearest(center kernel.Location, radiusKm float64, limit int) ([]Candidate, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusKm < 0 {
		return nil, errs.NewValueIsInvalidError("radiusKm")
	}
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	g.mu.RLock()
	candidates := make([]Candidate, 0, len(g.positions))
	for id, loc := range g.positions {
		d, err := center.DistanceKm(loc)
		if err != nil {
			g.mu.RUnlock()
			return nil, err
		}
		if d <= radiusKm {
			candidates = append(candidates, Candidate{CourierID: id, DistanceKm: d})
		}
	}
	g.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].DistanceKm != candidates[j].DistanceKm {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		}
		return candidates[i].CourierID < candidates[j].CourierID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
