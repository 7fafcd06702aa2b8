package ui

import (
	"unicode"
	"unicode/utf8"

	"asciimaps/internal/render"
	"asciimaps/internal/tween"
)

const searchPlaceholder = "Search"

// SearchBar holds the query being typed and draws the search box
type SearchBar struct {
	query string
	box   tween.Rect
}

// NewSearchBar creates a search bar for a screen width
func NewSearchBar(query string, screenWidth int) *SearchBar {
	s := &SearchBar{query: query}
	s.Layout(screenWidth)
	return s
}

// Layout places the box over the left half of the first rows
func (s *SearchBar) Layout(screenWidth int) {
	s.box = tween.Rect{X: 2, Y: 1, W: float64(max(16, screenWidth/2-2)), H: 3}
}

// AddRune appends a printable rune to the query
func (s *SearchBar) AddRune(r rune) bool {
	if !unicode.IsPrint(r) {
		return false
	}
	s.query += string(r)
	return true
}

// DeleteLast removes the last rune
func (s *SearchBar) DeleteLast() {
	if s.query == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.query)
	s.query = s.query[:len(s.query)-size]
}

// Clear empties the query
func (s *SearchBar) Clear() {
	s.query = ""
}

// Query returns the current query
func (s *SearchBar) Query() string {
	return s.query
}

// Box returns the search box bounds
func (s *SearchBar) Box() tween.Rect {
	return s.box
}

// clearButton is the cell holding the clear mark
func (s *SearchBar) clearButton() tween.Rect {
	return tween.Rect{X: s.box.X + s.box.W - 3, Y: s.box.Y + 1, W: 1, H: 1}
}

// HitClear reports whether (x, y) is on the clear mark
func (s *SearchBar) HitClear(x, y int) bool {
	return s.clearButton().Contains(float64(x), float64(y))
}

// Draw renders the box, the query (or placeholder) and the clear mark
func (s *SearchBar) Draw(c *render.Canvas) {
	x, y, w, h := s.box.Cells()
	c.FillRect(x, y, w, h, ' ', render.StyleSearch)
	c.DrawBox(x, y, w, h, render.StyleSearchEdge)

	limit := w - 6
	if s.query == "" {
		c.DrawTextClipped(x+2, y+1, limit, searchPlaceholder, render.StylePlaceholder)
	} else {
		c.DrawTextClipped(x+2, y+1, limit, s.query, render.StyleSearch)
	}

	cx, cy, _, _ := s.clearButton().Cells()
	c.Set(cx, cy, '×', render.StyleSearch)
}
