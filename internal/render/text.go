package render

import (
	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to text cut by Truncate
const Ellipsis = "..."

// Truncate shortens s to at most width terminal cells, ending in Ellipsis
// when anything was cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= len(Ellipsis) {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, Ellipsis)
}

// TextWidth returns the number of cells s occupies
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}
