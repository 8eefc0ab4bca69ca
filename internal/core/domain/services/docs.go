// Package services provides domain services that span the order and partner
// aggregates:
//   - OrderDispatcher: applies a won claim to both aggregates and records completed deliveries
//   - OrderMatcher: the exact-distance half of the geo-index, ranking candidate orders
//     around a point
package services
