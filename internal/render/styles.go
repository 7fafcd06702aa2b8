package render

import (
	"math"

	"asciimaps/internal/geo"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Style definitions for overlay widgets
var (
	StyleSearch      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(ToColor(colorful.Color{R: 0.75, G: 0.75, B: 0.75}))
	StyleSearchEdge  = StyleSearch.Foreground(ToColor(colorful.Color{R: 0.5, G: 0.5, B: 0.5}))
	StylePlaceholder = StyleSearch.Foreground(tcell.ColorDimGray)
	StyleInfo        = tcell.StyleDefault.Foreground(ToColor(colorful.Color{R: 0.25, G: 0.25, B: 0.25})).Background(tcell.ColorWhite)
	StyleError       = StyleInfo.Foreground(tcell.ColorDarkRed)
)

// Marker colours
var (
	ColorMarker   = tcell.ColorWhite
	ColorWaypoint = tcell.ColorRed
	ColorCursor   = tcell.ColorGray
)

// Widget colours
var (
	MenuBackground = colorful.Color{R: 0.94, G: 0.94, B: 0.94}
	MenuOutline    = colorful.Color{R: 1, G: 1, B: 1}
	MenuHover      = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	SwitchOff      = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	SwitchOn       = colorful.Color{R: 0.25, G: 0.25, B: 0.25}
	SwitchKnob     = colorful.Color{R: 0.75, G: 0.75, B: 0.75}
)

var (
	plainPaper = colorful.Color{R: 0.96, G: 0.95, B: 0.91}
	forest     = colorful.Color{R: 0.18, G: 0.29, B: 0.17}
	tundra     = colorful.Color{R: 0.55, G: 0.52, B: 0.40}
	ice        = colorful.Color{R: 0.87, G: 0.91, B: 0.93}
)

// Palette is how one Mode draws the map
type Palette struct {
	Layers []geo.FeatureType // drawn in order, later on top
	Labels bool
	Lines  map[geo.FeatureType]tcell.Color
	shaded bool
}

var palettes = map[Mode]Palette{
	ModeSchema: {
		Layers: []geo.FeatureType{geo.FeatureCoastline, geo.FeatureRiver, geo.FeatureBorder, geo.FeatureRoad},
		Labels: true,
		Lines: map[geo.FeatureType]tcell.Color{
			geo.FeatureCoastline: tcell.ColorDarkBlue,
			geo.FeatureRiver:     tcell.ColorDarkCyan,
			geo.FeatureBorder:    tcell.ColorDarkGray,
			geo.FeatureRoad:      tcell.ColorOlive,
		},
	},
	ModeSatellite: {
		Layers: []geo.FeatureType{geo.FeatureCoastline, geo.FeatureRiver},
		Lines: map[geo.FeatureType]tcell.Color{
			geo.FeatureCoastline: tcell.ColorNavy,
			geo.FeatureRiver:     tcell.ColorSteelBlue,
		},
		shaded: true,
	},
	ModeHybrid: {
		Layers: []geo.FeatureType{geo.FeatureCoastline, geo.FeatureRiver, geo.FeatureBorder, geo.FeatureRoad},
		Labels: true,
		Lines: map[geo.FeatureType]tcell.Color{
			geo.FeatureCoastline: tcell.ColorNavy,
			geo.FeatureRiver:     tcell.ColorSteelBlue,
			geo.FeatureBorder:    tcell.ColorWhite,
			geo.FeatureRoad:      tcell.ColorYellow,
		},
		shaded: true,
	},
}

// PaletteFor returns the palette of m, falling back to schema
func PaletteFor(m Mode) Palette {
	if p, ok := palettes[m]; ok {
		return p
	}
	return palettes[ModeSchema]
}

// Background returns the fill colour of the cell showing p
func (p Palette) Background(at geo.GeoPoint) tcell.Color {
	if !p.shaded {
		return ToColor(plainPaper)
	}

	// greener towards the equator, paler towards the poles
	t := math.Min(math.Abs(at.Lat)/90.0, 1)
	if t < 0.6 {
		return ToColor(forest.BlendHcl(tundra, t/0.6).Clamped())
	}
	return ToColor(tundra.BlendHcl(ice, (t-0.6)/0.4).Clamped())
}

// LineChar returns the character used for a line layer
func LineChar(ftype geo.FeatureType) rune {
	switch ftype {
	case geo.FeatureBorder:
		return '-'
	case geo.FeatureRoad:
		return '='
	case geo.FeatureRiver:
		return '~'
	case geo.FeatureCoastline:
		return '.'
	default:
		return '·'
	}
}

// ToColor converts a colorful colour to a terminal true colour
func ToColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Blend mixes a towards b by t in [0, 1]
func Blend(a, b colorful.Color, t float64) tcell.Color {
	return ToColor(a.BlendRgb(b, math.Max(0, math.Min(t, 1))))
}
