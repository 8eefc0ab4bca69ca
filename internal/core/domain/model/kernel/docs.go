// Package kernel provides the value objects shared by every aggregate of the
// marketplace core:
//   - UUID: validated identifiers for orders, partners and principals
//   - GeoPoint: longitude/latitude positions with haversine distance and
//     radius-to-bounding-box conversion used by the geo-index
//
// Both are immutable and safe for concurrent use.
package kernel
