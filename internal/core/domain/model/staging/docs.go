// Package staging models the fixed fulfillment locations ("warehouses")
// orders are picked up from, and the ordered network the dispatcher consults
// to pick the one nearest to a customer.
package staging
