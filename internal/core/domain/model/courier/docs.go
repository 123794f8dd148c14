// Package courier models the fleet members the dispatcher assigns orders to.
//
// Couriers are not aggregates owned by this service: their state arrives
// through the heartbeat feed and lives in the in-memory fleet stores. This
// package therefore only defines the identity, status vocabulary, and the
// heartbeat snapshot value object shared by the ingestion and dispatch paths.
package courier
