package geo

import (
	"math"
)

// Calibration of the screen mapping. At scale 1 a viewport covers
// HorizontalSpan degrees of longitude and VerticalSpan degrees of latitude.
// Tuned against a 600x450 reference window; not physical constants.
const (
	HorizontalSpan = 3.0
	VerticalSpan   = 2.0
)

// Scale limits for zooming
const (
	MinScale = 1.0 / 1024.0
	MaxScale = 64.0
)

// Point represents a screen coordinate
type Point struct {
	X int
	Y int
}

// ScreenToGeo maps a pixel to a geographic point. The offset from the viewport
// centre is scaled linearly; this is not a named projection.
func ScreenToGeo(px, py, w, h, centerLon, centerLat, scale float64) GeoPoint {
	return GeoPoint{
		Lon: centerLon + (px-w/2)/w*scale*HorizontalSpan,
		Lat: centerLat - (py-h/2)/h*scale*VerticalSpan,
	}
}

// GeoToScreen is the inverse of ScreenToGeo. The offset from the centre is
// taken to metres and divided by the metric size of one pixel. Longitude is
// scaled at centerLat both ways so the two functions round trip exactly.
func GeoToScreen(p GeoPoint, centerLon, centerLat, w, h, scale float64) (px, py float64) {
	px, py = w/2, h/2

	metersPerPixelX := LonDegreesToMeters(HorizontalSpan*scale, centerLat) / w
	if metersPerPixelX != 0 {
		px += LonDegreesToMeters(p.Lon-centerLon, centerLat) / metersPerPixelX
	}

	metersPerPixelY := DegreesToMeters(VerticalSpan*scale) / h
	if metersPerPixelY != 0 {
		py -= DegreesToMeters(p.Lat-centerLat) / metersPerPixelY
	}

	return px, py
}

// View is the visible window onto the map: centre, scale and screen size
type View struct {
	center GeoPoint
	scale  float64
	width  int
	height int
}

// NewView creates a view centred on center. Scale is clamped to [MinScale, MaxScale]
// and the screen is at least one cell in each direction.
func NewView(center GeoPoint, scale float64, width, height int) *View {
	return &View{
		center: center,
		scale:  clampScale(scale),
		width:  max(width, 1),
		height: max(height, 1),
	}
}

// Project converts a geographic point to the nearest screen cell
func (v *View) Project(p GeoPoint) Point {
	x, y := GeoToScreen(p, v.center.Lon, v.center.Lat, float64(v.width), float64(v.height), v.scale)
	return Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// Unproject converts a screen cell back to a geographic point
func (v *View) Unproject(x, y int) GeoPoint {
	return ScreenToGeo(float64(x), float64(y), float64(v.width), float64(v.height), v.center.Lon, v.center.Lat, v.scale)
}

// InBounds checks if a point would be visible on screen
func (v *View) InBounds(p GeoPoint) bool {
	pt := v.Project(p)
	return pt.X >= 0 && pt.X < v.width && pt.Y >= 0 && pt.Y < v.height
}

// Bounds returns the geographic box visible on screen
func (v *View) Bounds() *Bounds {
	topLeft := v.Unproject(0, 0)
	bottomRight := v.Unproject(v.width, v.height)

	return &Bounds{
		MinLat: math.Min(topLeft.Lat, bottomRight.Lat),
		MaxLat: math.Max(topLeft.Lat, bottomRight.Lat),
		MinLon: math.Min(topLeft.Lon, bottomRight.Lon),
		MaxLon: math.Max(topLeft.Lon, bottomRight.Lon),
	}
}

// Pan moves the centre by a quarter of the scale per step.
// Positive dx moves east, positive dy moves north.
func (v *View) Pan(dx, dy int) {
	step := v.scale * 0.25
	lonLimit := math.Max(0, 180-v.scale*0.5)
	latLimit := math.Max(0, 90-v.scale*0.5)

	v.center.Lon = clamp(v.center.Lon+float64(dx)*step, -lonLimit, lonLimit)
	v.center.Lat = clamp(v.center.Lat+float64(dy)*step, -latLimit, latLimit)
}

// Zoom changes the scale by steps notches. Positive steps zoom in.
func (v *View) Zoom(steps float64) {
	v.scale = clampScale(math.Pow(v.scale+1, math.Pow(0.75, steps)) - 1)
}

// SetCenter recentres the view. Non-finite points are ignored.
func (v *View) SetCenter(p GeoPoint) {
	if !finite(p.Lon) || !finite(p.Lat) {
		return
	}
	v.center = p
}

// Resize updates the screen dimensions, at least one cell each
func (v *View) Resize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// Center returns the current centre point
func (v *View) Center() GeoPoint {
	return v.center
}

// Scale returns the current scale
func (v *View) Scale() float64 {
	return v.scale
}

// Size returns the screen dimensions
func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// MetersPerCell returns the horizontal and vertical metric size of one cell
func (v *View) MetersPerCell() (x, y float64) {
	x = LonDegreesToMeters(HorizontalSpan*v.scale, v.center.Lat) / float64(v.width)
	y = DegreesToMeters(VerticalSpan*v.scale) / float64(v.height)
	return x, y
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clampScale(s float64) float64 {
	return clamp(s, MinScale, MaxScale)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
