// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the dispatch system.
//
// The package includes:
//   - Dispatcher: selects the staging point nearest to a customer and locks
//     the nearest idle courier for the order
//
// Domain services coordinate between aggregates and the fleet stores,
// implementing logic that does not naturally belong to a single aggregate.
package services
