package ui

import (
	"asciimaps/internal/geo"
	"asciimaps/internal/render"
)

// InfoView shows the address and coordinates of the last search
type InfoView struct {
	place   *geo.Place
	message string
	x, y    int
	width   int
}

// NewInfoView places the info lines under the search box
func NewInfoView(x, y, width int) *InfoView {
	return &InfoView{x: x, y: y, width: width}
}

// SetPlace shows place and drops any message
func (v *InfoView) SetPlace(place geo.Place) {
	v.place = &place
	v.message = ""
}

// SetMessage shows a one line notice instead of the address
func (v *InfoView) SetMessage(msg string) {
	v.message = msg
}

// Clear hides everything
func (v *InfoView) Clear() {
	v.place = nil
	v.message = ""
}

// Place returns the shown place, if any
func (v *InfoView) Place() (geo.Place, bool) {
	if v.place == nil {
		return geo.Place{}, false
	}
	return *v.place, true
}

// Message returns the shown notice
func (v *InfoView) Message() string {
	return v.message
}

// UpdateDimensions moves the view
func (v *InfoView) UpdateDimensions(x, y, width int) {
	v.x = x
	v.y = y
	v.width = width
}

// Lines returns the address and coordinate lines as drawn
func (v *InfoView) Lines(withPostal bool) []string {
	var lines []string
	if v.message != "" {
		lines = append(lines, v.message)
	} else if v.place != nil && v.place.Address != "" {
		lines = append(lines, v.place.Label(withPostal))
	}
	if v.place != nil {
		lines = append(lines, v.place.Point.String())
	}
	return lines
}

// Draw renders the lines, each cut to the view width
func (v *InfoView) Draw(c *render.Canvas, withPostal bool) {
	for i, line := range v.Lines(withPostal) {
		style := render.StyleInfo
		if i == 0 && v.message != "" {
			style = render.StyleError
		}
		c.DrawTextClipped(v.x, v.y+i, v.width, " "+line+" ", style)
	}
}
