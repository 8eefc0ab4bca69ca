// Package partner models delivery partners: their availability, last known
// location and the delivery rating aggregated from customer feedback.
package partner
