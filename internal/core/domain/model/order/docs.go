// Package order implements the Order aggregate of the marketplace: placement and
// pricing, the status state machine, the claim by a delivery partner, cancellation
// and rating.
//
// Key business rules:
//   - pricing is computed once at placement (free delivery strictly above 500,
//     platform fee 5, 5% taxes rounded to a whole unit)
//   - status moves forward one step at a time:
//     pending -> assigned -> partner_accepted -> picking_up -> picked_up -> in_transit -> delivered
//   - cancellation is possible until the order is picked up
//   - only delivered orders can be rated, once
package order
