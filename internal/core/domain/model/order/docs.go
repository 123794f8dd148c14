// Package order contains the order aggregate and its lifecycle status machine.
//
// An order only comes into existence once the dispatcher has locked a courier
// for it, so the aggregate is always courier-bound and starts in Assigned
// status. The status machine allows delivery directly from Assigned because
// couriers do not reliably report the pickup step.
package order
