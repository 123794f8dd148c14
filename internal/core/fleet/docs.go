// Package fleet owns the live, shared fleet state: the geospatial index of
// courier positions, the courier status table, and the per-courier mission
// registry.
//
// All three stores are reachable from any concurrent request, so they are
// lock-guarded internally and expose only the operations the dispatch core
// needs: upsert and proximity query on the geo index, get/set/compare-and-set
// on the status table, set/get on the mission registry. No caller gets direct
// mutable access to the underlying maps.
//
// The only cross-call mutual exclusion the core relies on is
// StatusTable.CompareAndSet, which serializes competing attempts to lock the
// same idle courier. Everything else is last-write-wins snapshot state fed by
// the heartbeat stream.
package fleet
