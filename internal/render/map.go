package render

import (
	"asciimaps/internal/debug"
	"asciimaps/internal/geo"

	"github.com/gdamore/tcell/v2"
)

// MapRenderer renders vector layers and markers to a canvas
type MapRenderer struct {
	view   *geo.View
	layers map[geo.FeatureType][]*geo.Feature
	places []geo.Place
	canvas *Canvas
	mode   Mode
}

// NewMapRenderer creates a new map renderer
func NewMapRenderer(view *geo.View, layers map[geo.FeatureType][]*geo.Feature, places []geo.Place, canvas *Canvas) *MapRenderer {
	return &MapRenderer{
		view:   view,
		layers: layers,
		places: places,
		canvas: canvas,
		mode:   ModeSchema,
	}
}

// RenderMap draws the background and every layer of the current mode
func (m *MapRenderer) RenderMap() {
	palette := PaletteFor(m.mode)
	m.renderBackground(palette)

	bounds := m.view.Bounds()
	for _, ftype := range palette.Layers {
		m.renderLines(ftype, palette.Lines[ftype], bounds)
	}

	if palette.Labels {
		m.renderLabels(bounds)
	}
}

func (m *MapRenderer) renderBackground(palette Palette) {
	for y := 0; y < m.canvas.Height(); y++ {
		// the background only depends on latitude, one lookup per row
		bg := palette.Background(m.view.Unproject(0, y))
		style := tcell.StyleDefault.Background(bg)
		for x := 0; x < m.canvas.Width(); x++ {
			m.canvas.Set(x, y, ' ', style)
		}
	}
}

func (m *MapRenderer) renderLines(ftype geo.FeatureType, fg tcell.Color, bounds *geo.Bounds) {
	features, exists := m.layers[ftype]
	if !exists {
		return
	}

	visible := geo.FilterByBounds(features, bounds)
	if debug.Enabled() {
		debug.Trace("rendering layer", "type", ftype, "visible", len(visible), "total", len(features))
	}

	char := LineChar(ftype)
	for _, feature := range visible {
		if !feature.IsLine() {
			continue
		}
		for i := 0; i < len(feature.Points)-1; i++ {
			p1 := m.view.Project(feature.Points[i])
			p2 := m.view.Project(feature.Points[i+1])
			m.canvas.DrawLine(p1.X, p1.Y, p2.X, p2.Y, char, fg)
		}
	}
}

// renderLabels draws place names; a label is skipped when it would overlap
// one already drawn on the same row
func (m *MapRenderer) renderLabels(bounds *geo.Bounds) {
	type span struct{ y, from, to int }
	var taken []span

	draw := func(name string, p geo.GeoPoint) {
		if name == "" || !bounds.Contains(p) {
			return
		}
		pt := m.view.Project(p)
		end := pt.X + 1 + TextWidth(name)
		for _, s := range taken {
			if s.y == pt.Y && pt.X <= s.to && end >= s.from {
				return
			}
		}
		taken = append(taken, span{y: pt.Y, from: pt.X, to: end})

		m.canvas.SetFg(pt.X, pt.Y, '●', m.labelColor())
		if pt.X < m.canvas.Width()-1 {
			m.canvas.DrawTextClipped(pt.X+1, pt.Y, m.canvas.Width()-pt.X-1, name, m.labelStyle(pt.X+1, pt.Y))
		}
	}

	for _, pl := range m.places {
		draw(pl.Name, pl.Point)
	}
	for _, f := range m.layers[geo.FeaturePlace] {
		if f.IsPoint() {
			draw(f.Name, *f.Point)
		}
	}
}

// labelStyle keeps the background under the label
func (m *MapRenderer) labelStyle(x, y int) tcell.Style {
	_, bg, _ := m.canvas.Get(x, y).Style.Decompose()
	return tcell.StyleDefault.Foreground(m.labelColor()).Background(bg)
}

func (m *MapRenderer) labelColor() tcell.Color {
	if PaletteFor(m.mode).shaded {
		return ColorMarker
	}
	return tcell.ColorBlack
}

// RenderWaypoint marks the searched point
func (m *MapRenderer) RenderWaypoint(p geo.GeoPoint) {
	if !m.view.InBounds(p) {
		return
	}
	pt := m.view.Project(p)
	m.canvas.SetFg(pt.X, pt.Y, '▼', ColorWaypoint)
}

// RenderCursor marks the cell under the mouse
func (m *MapRenderer) RenderCursor(x, y int) {
	// snap through the projection so the dot sits where a click would land
	pt := m.view.Project(m.view.Unproject(x, y))
	if c := m.canvas.Get(pt.X, pt.Y); c.Char == ' ' {
		m.canvas.SetFg(pt.X, pt.Y, '•', ColorCursor)
	}
}

// SetMode switches the palette
func (m *MapRenderer) SetMode(mode Mode) {
	m.mode = mode
}

// Mode returns the current palette mode
func (m *MapRenderer) Mode() Mode {
	return m.mode
}

// UpdateView updates the renderer's view
func (m *MapRenderer) UpdateView(view *geo.View) {
	m.view = view
}

// UpdateCanvas updates the renderer's canvas
func (m *MapRenderer) UpdateCanvas(canvas *Canvas) {
	m.canvas = canvas
}
