package geo

import "math"

// FeatureType represents the type of map feature
type FeatureType int

const (
	FeatureBorder FeatureType = iota
	FeatureRoad
	FeatureRiver
	FeatureCoastline
	FeaturePlace
)

// String returns a string representation of the feature type
func (f FeatureType) String() string {
	switch f {
	case FeatureBorder:
		return "Border"
	case FeatureRoad:
		return "Road"
	case FeatureRiver:
		return "River"
	case FeatureCoastline:
		return "Coastline"
	case FeaturePlace:
		return "Place"
	default:
		return "Unknown"
	}
}

// Feature is a polyline or a labelled point
type Feature struct {
	Type   FeatureType
	Points []GeoPoint // polyline vertices, empty for point features
	Point  *GeoPoint
	Name   string
}

// NewLineFeature creates a polyline feature
func NewLineFeature(ftype FeatureType, points []GeoPoint) *Feature {
	return &Feature{
		Type:   ftype,
		Points: points,
	}
}

// NewPointFeature creates a labelled point feature
func NewPointFeature(ftype FeatureType, point GeoPoint, name string) *Feature {
	return &Feature{
		Type:  ftype,
		Point: &point,
		Name:  name,
	}
}

// IsPoint returns true if this is a point feature
func (f *Feature) IsPoint() bool {
	return f.Point != nil
}

// IsLine returns true if this is a polyline feature
func (f *Feature) IsLine() bool {
	return len(f.Points) > 1
}

// FilterByBounds keeps points inside bounds and lines with at least one
// vertex inside bounds
func FilterByBounds(features []*Feature, bounds *Bounds) []*Feature {
	filtered := make([]*Feature, 0)

	for _, feature := range features {
		if feature.IsPoint() {
			if bounds.Contains(*feature.Point) {
				filtered = append(filtered, feature)
			}
			continue
		}

		for _, p := range feature.Points {
			if bounds.Contains(p) {
				filtered = append(filtered, feature)
				break
			}
		}
	}

	return filtered
}

// Bounds represents a geographic bounding box
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// NewBounds creates a box reaching radiusMeters from center in each direction.
// Longitude is scaled at the poleward edge, so every point within
// LonLatDistance radiusMeters of center is inside.
func NewBounds(center GeoPoint, radiusMeters float64) *Bounds {
	latDegrees := radiusMeters / DegreesToMeters(1)
	edge := math.Abs(center.Lat) + latDegrees
	lonDegrees := math.Inf(1)
	if perDegree := LonDegreesToMeters(1, edge); edge < 90 && perDegree > 0 {
		lonDegrees = radiusMeters / perDegree
	}

	return &Bounds{
		MinLat: center.Lat - latDegrees,
		MaxLat: center.Lat + latDegrees,
		MinLon: center.Lon - lonDegrees,
		MaxLon: center.Lon + lonDegrees,
	}
}

// Contains checks if a point is within the bounds
func (b *Bounds) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}
