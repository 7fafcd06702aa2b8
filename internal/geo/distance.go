package geo

import (
	"math"
)

// EarthRadius is the radius used for degree to metre conversion, in metres
const EarthRadius = 6356752.3

// PlanarOffset is a local tangent plane offset in metres.
// Only meaningful close to the reference latitude it was computed at.
type PlanarOffset struct {
	DX float64
	DY float64
}

// Length returns the euclidean length of the offset
func (o PlanarOffset) Length() float64 {
	return math.Sqrt(o.DX*o.DX + o.DY*o.DY)
}

// DegreesToMeters converts a latitude delta in degrees to metres.
// Longitude deltas need the extra cos(latitude) factor, see LonDegreesToMeters.
func DegreesToMeters(delta float64) float64 {
	return delta * EarthRadius * math.Pi / 180.0
}

// LonDegreesToMeters converts a longitude delta to metres at refLat (degrees)
func LonDegreesToMeters(delta, refLat float64) float64 {
	return DegreesToMeters(delta) * math.Cos(refLat*math.Pi/180.0)
}

// Offset returns the signed offset of b relative to a, with longitude
// scaled at the mean latitude of the two points
func Offset(a, b GeoPoint) PlanarOffset {
	meanLat := (a.Lat + b.Lat) / 2
	return PlanarOffset{
		DX: LonDegreesToMeters(b.Lon-a.Lon, meanLat),
		DY: DegreesToMeters(b.Lat - a.Lat),
	}
}

// LonLatDistance returns the flat-earth distance between a and b in metres.
// It is not a geodesic. Error grows past a few tens of kilometres and near the poles.
func LonLatDistance(a, b GeoPoint) float64 {
	return Offset(a, b).Length()
}

// Distance resolves both coordinates and returns LonLatDistance between them
func Distance(a, b Coordinate) (float64, error) {
	pa, err := a.Resolve()
	if err != nil {
		return 0, err
	}
	pb, err := b.Resolve()
	if err != nil {
		return 0, err
	}
	return LonLatDistance(pa, pb), nil
}
