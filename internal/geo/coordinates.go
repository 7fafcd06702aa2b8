package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrFormat is wrapped by every FormatError
var ErrFormat = errors.New("malformed coordinate")

// FormatError reports a coordinate string that could not be parsed
type FormatError struct {
	Input  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed coordinate %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed coordinate %q: %s", e.Input, e.Reason)
}

// Unwrap lets errors.Is(err, ErrFormat) match
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// GeoPoint is a geographic position in decimal degrees.
// Range is not enforced; use Valid before trusting external input.
type GeoPoint struct {
	Lon float64
	Lat float64
}

// Valid reports whether the point lies within lon [-180, 180] and lat [-90, 90]
func (p GeoPoint) Valid() bool {
	return p.Lon >= -180 && p.Lon <= 180 && p.Lat >= -90 && p.Lat <= 90
}

// String renders the point as "lon,lat"
func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}

// Resolve returns the point itself
func (p GeoPoint) Resolve() (GeoPoint, error) {
	return p, nil
}

func (GeoPoint) coordinate() {}

// Text is a coordinate written as "lon,lat"
type Text string

// Resolve parses the text into a GeoPoint
func (t Text) Resolve() (GeoPoint, error) {
	return ParseGeoPoint(string(t))
}

func (Text) coordinate() {}

// Coordinate is either a GeoPoint or a Text that still has to be parsed.
// The set of implementations is closed.
type Coordinate interface {
	Resolve() (GeoPoint, error)
	coordinate()
}

// ParseGeoPoint parses "lon,lat". Whitespace around either number is ignored.
// NaN and infinities are rejected.
func ParseGeoPoint(s string) (GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return GeoPoint{}, &FormatError{Input: s, Reason: fmt.Sprintf("want 2 comma separated values, got %d", len(parts))}
	}

	lon, err := parseDegrees(s, "longitude", parts[0])
	if err != nil {
		return GeoPoint{}, err
	}

	lat, err := parseDegrees(s, "latitude", parts[1])
	if err != nil {
		return GeoPoint{}, err
	}

	return GeoPoint{Lon: lon, Lat: lat}, nil
}

func parseDegrees(input, axis, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, &FormatError{Input: input, Reason: "bad " + axis, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FormatError{Input: input, Reason: axis + " is not a finite number"}
	}
	return v, nil
}
