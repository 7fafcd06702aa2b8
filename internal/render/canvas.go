package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Canvas represents a 2D grid of cells for ASCII rendering
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// Cell represents a single character cell with style
type Cell struct {
	Char  rune
	Style tcell.Style
}

// NewCanvas creates a new blank canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
	}

	c := &Canvas{
		width:  width,
		height: height,
		cells:  cells,
	}
	c.Clear(tcell.StyleDefault)
	return c
}

// Set sets the character and style at the given position
// Coordinates are 0-indexed with (0,0) at top-left
func (c *Canvas) Set(x, y int, char rune, style tcell.Style) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.cells[y][x] = Cell{Char: char, Style: style}
	}
}

// SetFg draws char at (x, y) keeping the background already in the cell
func (c *Canvas) SetFg(x, y int, char rune, fg tcell.Color) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		_, bg, attr := c.cells[y][x].Style.Decompose()
		c.cells[y][x] = Cell{Char: char, Style: tcell.StyleDefault.Foreground(fg).Background(bg).Attributes(attr)}
	}
}

// Get retrieves the cell at the given position
func (c *Canvas) Get(x, y int) Cell {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.cells[y][x]
	}
	return Cell{Char: ' ', Style: tcell.StyleDefault}
}

// Clear resets the entire canvas to spaces in style
func (c *Canvas) Clear(style tcell.Style) {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Char: ' ', Style: style}
		}
	}
}

// DrawText draws a string at the given position and returns the cells used.
// Wide runes take two cells.
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, char := range text {
		c.Set(col, y, char, style)
		w := runewidth.RuneWidth(char)
		if w == 2 {
			c.Set(col+1, y, 0, style)
		}
		col += w
	}
	return col - x
}

// DrawTextClipped draws text cut to maxWidth cells
func (c *Canvas) DrawTextClipped(x, y, maxWidth int, text string, style tcell.Style) int {
	return c.DrawText(x, y, Truncate(text, maxWidth), style)
}

// DrawBox draws a box outline using box-drawing characters
func (c *Canvas) DrawBox(x, y, width, height int, style tcell.Style) {
	if width < 2 || height < 2 {
		return
	}

	c.Set(x, y, '╭', style)
	c.Set(x+width-1, y, '╮', style)
	c.Set(x, y+height-1, '╰', style)
	c.Set(x+width-1, y+height-1, '╯', style)

	for i := 1; i < width-1; i++ {
		c.Set(x+i, y, '─', style)
		c.Set(x+i, y+height-1, '─', style)
	}

	for i := 1; i < height-1; i++ {
		c.Set(x, y+i, '│', style)
		c.Set(x+width-1, y+i, '│', style)
	}
}

// FillRect fills a rectangle with a character
func (c *Canvas) FillRect(x, y, width, height int, char rune, style tcell.Style) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.Set(x+dx, y+dy, char, style)
		}
	}
}

// DrawLine implements Bresenham's line algorithm. The segment is clipped to
// the canvas first so off-screen parts cost nothing.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, char rune, fg tcell.Color) {
	x0, y0, x1, y1, ok := c.clipLine(x0, y0, x1, y1)
	if !ok {
		return
	}

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		c.SetFg(x0, y0, char, fg)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Outcodes for Cohen-Sutherland clipping
const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

func (c *Canvas) outcode(x, y float64) int {
	code := 0
	if x < 0 {
		code |= outLeft
	} else if x > float64(c.width-1) {
		code |= outRight
	}
	if y < 0 {
		code |= outTop
	} else if y > float64(c.height-1) {
		code |= outBottom
	}
	return code
}

// clipLine cuts a segment to the canvas; ok is false when nothing is visible
func (c *Canvas) clipLine(ix0, iy0, ix1, iy1 int) (int, int, int, int, bool) {
	if c.width <= 0 || c.height <= 0 {
		return 0, 0, 0, 0, false
	}

	x0, y0, x1, y1 := float64(ix0), float64(iy0), float64(ix1), float64(iy1)
	maxX, maxY := float64(c.width-1), float64(c.height-1)
	code0, code1 := c.outcode(x0, y0), c.outcode(x1, y1)

	for {
		switch {
		case code0|code1 == 0:
			return int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), true
		case code0&code1 != 0:
			return 0, 0, 0, 0, false
		}

		out := code0
		if out == 0 {
			out = code1
		}

		var x, y float64
		switch {
		case out&outBottom != 0:
			x, y = x0+(x1-x0)*(maxY-y0)/(y1-y0), maxY
		case out&outTop != 0:
			x, y = x0+(x1-x0)*(0-y0)/(y1-y0), 0
		case out&outRight != 0:
			x, y = maxX, y0+(y1-y0)*(maxX-x0)/(x1-x0)
		default:
			x, y = 0, y0+(y1-y0)*(0-x0)/(x1-x0)
		}

		if out == code0 {
			x0, y0 = x, y
			code0 = c.outcode(x0, y0)
		} else {
			x1, y1 = x, y
			code1 = c.outcode(x1, y1)
		}
	}
}

// Width returns the canvas width
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height
func (c *Canvas) Height() int {
	return c.height
}

// Blit renders the canvas to a tcell screen
func (c *Canvas) Blit(screen tcell.Screen, offsetX, offsetY int) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y][x]
			if cell.Char == 0 {
				// second half of a wide rune
				continue
			}
			screen.SetContent(offsetX+x, offsetY+y, cell.Char, nil, cell.Style)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
