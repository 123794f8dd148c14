package fleet

import (
	"sync"

	"dispatch/internal/core/domain/model/courier"
)

// MissionRegistry holds the current mission per courier. Records are created
// or overwritten when a courier is assigned; there is no clearing operation.
// A courier's previous mission stays visible after delivery, and courier-side
// consumers are expected to deduplicate by order ID.
type MissionRegistry struct {
	mu       sync.RWMutex
	missions map[courier.ID]Mission
}

// NewMissionRegistry creates an empty registry.
func NewMissionRegistry() *MissionRegistry {
	return &MissionRegistry{
		missions: make(map[courier.ID]Mission),
	}
}

// Set records the courier's current mission, replacing any previous one.
func (r *MissionRegistry) Set(m Mission) error {
	if err := m.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.missions[m.CourierID()] = m
	return nil
}

// Get returns the courier's current mission, if any.
func (r *MissionRegistry) Get(id courier.ID) (Mission, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.missions[id]
	return m, ok
}
