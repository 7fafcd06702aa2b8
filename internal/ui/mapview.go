package ui

import (
	"asciimaps/internal/debug"
	"asciimaps/internal/geo"
	"asciimaps/internal/render"
)

// MapView displays the map and markers
type MapView struct {
	renderer *render.MapRenderer
	view     *geo.View
	canvas   *render.Canvas
	width    int
	height   int
}

// NewMapView creates a new map view
func NewMapView(width, height int, center geo.GeoPoint, scale float64, layers map[geo.FeatureType][]*geo.Feature, places []geo.Place) *MapView {
	view := geo.NewView(center, scale, width, height)
	canvas := render.NewCanvas(width, height)
	renderer := render.NewMapRenderer(view, layers, places, canvas)

	return &MapView{
		renderer: renderer,
		view:     view,
		canvas:   canvas,
		width:    width,
		height:   height,
	}
}

// Render redraws the map into the canvas. waypoint and cursor may be nil.
func (m *MapView) Render(waypoint *geo.GeoPoint, cursor *geo.Point) *render.Canvas {
	m.renderer.RenderMap()

	if cursor != nil {
		m.renderer.RenderCursor(cursor.X, cursor.Y)
	}
	if waypoint != nil {
		m.renderer.RenderWaypoint(*waypoint)
	}

	return m.canvas
}

// Canvas returns the canvas the map is drawn into
func (m *MapView) Canvas() *render.Canvas {
	return m.canvas
}

// UpdateDimensions updates the view dimensions when the screen is resized
func (m *MapView) UpdateDimensions(width, height int) {
	m.width = width
	m.height = height

	m.view.Resize(width, height)

	m.canvas = render.NewCanvas(width, height)
	m.renderer.UpdateCanvas(m.canvas)
}

// CenterOn moves the map centre to p
func (m *MapView) CenterOn(p geo.GeoPoint) {
	m.view.SetCenter(p)
	debug.Log("map centered", "center", p.String(), "scale", m.view.Scale())
}

// Pan moves the centre by whole steps
func (m *MapView) Pan(dx, dy int) {
	m.view.Pan(dx, dy)
	debug.Trace("map panned", "center", m.view.Center().String())
}

// Zoom changes the scale; positive steps zoom in
func (m *MapView) Zoom(steps float64) {
	m.view.Zoom(steps)
	mx, my := m.view.MetersPerCell()
	debug.Log("map scale changed", "scale", m.view.Scale(), "cell_m_x", mx, "cell_m_y", my)
}

// SetMode switches between schema, satellite and hybrid
func (m *MapView) SetMode(mode render.Mode) {
	m.renderer.SetMode(mode)
	debug.Log("map mode changed", "mode", mode)
}

// Mode returns the current map mode
func (m *MapView) Mode() render.Mode {
	return m.renderer.Mode()
}

// Unproject converts a screen cell to a geographic point
func (m *MapView) Unproject(x, y int) geo.GeoPoint {
	return m.view.Unproject(x, y)
}

// View returns the current view
func (m *MapView) View() *geo.View {
	return m.view
}
