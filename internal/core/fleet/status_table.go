package fleet

import (
	"sync"

	"dispatch/internal/core/domain/model/courier"
)

// StatusTable maps courier IDs to their current status. An absent entry is
// equivalent to idle: couriers that have never reported are available for
// assignment.
//
// CompareAndSet is the only mutual-exclusion primitive in the dispatch core.
// Competing order-creation calls race on CAS(IDLE, ASSIGNED) per courier, and
// exactly one of them observes success for a given idle courier.
type StatusTable struct {
	mu       sync.RWMutex
	statuses map[courier.ID]courier.Status
}

// NewStatusTable creates an empty table.
func NewStatusTable() *StatusTable {
	return &StatusTable{
		statuses: make(map[courier.ID]courier.Status),
	}
}

// Get returns the courier's current status, defaulting to StatusIdle when the
// courier has no entry.
func (t *StatusTable) Get(id courier.ID) courier.Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.statuses[id].Normalize()
}

// Set unconditionally records the courier's status. Heartbeat ingestion uses
// this: reported state is a snapshot and last write wins.
func (t *StatusTable) Set(id courier.ID, status courier.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statuses[id] = status.Normalize()
}

// SetBatch records one heartbeat tick's statuses under a single lock.
func (t *StatusTable) SetBatch(batch []courier.Heartbeat) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, hb := range batch {
		t.statuses[hb.CourierID()] = hb.Status()
	}
}

// CompareAndSet atomically replaces the courier's status with next if the
// current status equals expected, and reports whether the swap happened.
// Absent entries compare as StatusIdle.
func (t *StatusTable) CompareAndSet(id courier.ID, expected, next courier.Status) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.statuses[id].Normalize() != expected.Normalize() {
		return false
	}
	t.statuses[id] = next.Normalize()
	return true
}
