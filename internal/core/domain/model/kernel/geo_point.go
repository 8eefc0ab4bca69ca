package kernel

import (
	"errors"
	"fmt"
	"math"

	"meatdelivery/internal/pkg/errs"
	"meatdelivery/internal/pkg/guard"
)

const (
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0

	// EarthRadiusKm is the mean Earth radius used by every distance computation.
	EarthRadiusKm = 6371.0

	kmPerDegreeLatitude = math.Pi * EarthRadiusKm / 180
)

// ErrGeoPointIsNotConstructed is returned when validating a zero-value GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is an immutable WGS84 position expressed as longitude/latitude degrees,
// the same axis order the original data uses ([lon, lat]).
//
// Example:
//
//	shop, _ := kernel.NewGeoPoint(77.1025, 28.7041)
//	home, _ := kernel.NewGeoPoint(77.2090, 28.6139)
//	km := shop.DistanceKm(home) // ~14.4
type GeoPoint struct { //nolint:recvcheck //using for validation
	longitude float64
	latitude  float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint validates the coordinate ranges and builds a point.
func NewGeoPoint(longitude, latitude float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLongitude(longitude), p.setLatitude(latitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.longitude == other.longitude && p.latitude == other.latitude
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.longitude, p.latitude)
}

// DistanceKm returns the great-circle (haversine) distance to other in kilometers.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	lat1 := degreesToRadians(p.latitude)
	lat2 := degreesToRadians(other.latitude)
	dLat := lat2 - lat1
	dLon := degreesToRadians(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// BoundingBox is a latitude/longitude rectangle in degrees, the native unit of the
// indexed location columns.
type BoundingBox struct {
	MinLongitude float64
	MaxLongitude float64
	MinLatitude  float64
	MaxLatitude  float64
}

// Contains reports whether point lies inside the box (edges included).
func (b BoundingBox) Contains(point GeoPoint) bool {
	return point.longitude >= b.MinLongitude && point.longitude <= b.MaxLongitude &&
		point.latitude >= b.MinLatitude && point.latitude <= b.MaxLatitude
}

// BoundingBox converts a kilometer radius around p into a degree rectangle that
// contains every point within radiusKm. The box is a superset of the circle, so
// callers must still filter candidates with DistanceKm.
//
// Boxes are clamped to the valid coordinate ranges; a box reaching a pole or the
// antimeridian spans the full longitude range.
func (p GeoPoint) BoundingBox(radiusKm float64) BoundingBox {
	dLat := radiusKm / kmPerDegreeLatitude

	box := BoundingBox{
		MinLatitude:  math.Max(MinLatitude, p.latitude-dLat),
		MaxLatitude:  math.Min(MaxLatitude, p.latitude+dLat),
		MinLongitude: MinLongitude,
		MaxLongitude: MaxLongitude,
	}

	if box.MinLatitude == MinLatitude || box.MaxLatitude == MaxLatitude {
		return box
	}

	dLon := radiusKm / (kmPerDegreeLatitude * math.Cos(degreesToRadians(p.latitude)))
	if p.longitude-dLon < MinLongitude || p.longitude+dLon > MaxLongitude {
		return box
	}

	box.MinLongitude = p.longitude - dLon
	box.MaxLongitude = p.longitude + dLon
	return box
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}
	p.longitude = longitude
	return nil
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}
	p.latitude = latitude
	return nil
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
