package ui

import (
	"time"

	"asciimaps/internal/debug"
	"asciimaps/internal/render"
	"asciimaps/internal/tween"

	"github.com/gdamore/tcell/v2"
)

const (
	iconWidth  = 5
	iconHeight = 3
	iconGap    = 1
	menuRate   = 2.0
)

var menuModes = []struct {
	mode  render.Mode
	label string
}{
	{render.ModeSchema, "map"},
	{render.ModeSatellite, "sat"},
	{render.ModeHybrid, "hyb"},
}

type navIcon struct {
	mode  render.Mode
	label string
	rect  *tween.AnimatedRect
	hover bool
}

// NavMenu is the button in the top right corner that slides the mode
// icons out to its left
type NavMenu struct {
	button      tween.Rect
	background  *tween.AnimatedRect
	icons       []*navIcon
	open        bool
	buttonHover bool
}

// NewNavMenu lays the menu out for a screen width
func NewNavMenu(screenWidth int) *NavMenu {
	button := tween.Rect{X: float64(screenWidth - 2 - iconWidth), Y: 1, W: iconWidth, H: iconHeight}
	slot := float64(iconWidth + iconGap)
	n := float64(len(menuModes))

	background := tween.New(tween.Rect{X: button.X - 1, Y: button.Y, W: button.W + 2, H: button.H}, menuRate)
	background.AddState(tween.Rect{X: button.X - 1 - n*slot, Y: button.Y, W: button.W + 2 + n*slot, H: button.H})

	m := &NavMenu{button: button, background: background}
	closed := tween.New(button, menuRate)
	for i, mm := range menuModes {
		rect := closed.Copy()
		rect.AddState(tween.Rect{X: button.X - (n-float64(i))*slot, Y: button.Y, W: button.W, H: button.H})
		m.icons = append(m.icons, &navIcon{mode: mm.mode, label: mm.label, rect: rect})
	}
	return m
}

// Toggle opens or closes the menu; every rectangle starts moving from
// wherever it is now
func (m *NavMenu) Toggle() {
	m.open = !m.open
	state := 0
	if m.open {
		state = 1
	}

	for _, r := range m.rects() {
		if err := r.SetState(state); err != nil {
			debug.Warn("menu state", "err", err)
		}
	}
	if !m.open {
		for _, icon := range m.icons {
			icon.hover = false
		}
	}
}

// Snap finishes every running animation at once
func (m *NavMenu) Snap() {
	for _, r := range m.rects() {
		r.SetProgress(1)
	}
}

// Open reports whether the icons are shown
func (m *NavMenu) Open() bool {
	return m.open
}

// Done reports whether every animation is at rest
func (m *NavMenu) Done() bool {
	for _, r := range m.rects() {
		if !r.Done() {
			return false
		}
	}
	return true
}

// Tick advances all animations
func (m *NavMenu) Tick(dt time.Duration) {
	for _, r := range m.rects() {
		r.Tick(dt)
	}
}

// Hover updates highlight state for the cell under the mouse
func (m *NavMenu) Hover(x, y int) {
	m.buttonHover = m.HitButton(x, y)
	for _, icon := range m.icons {
		icon.hover = m.open && icon.rect.Current().Contains(float64(x), float64(y))
	}
}

// HitButton reports whether (x, y) is on the menu button
func (m *NavMenu) HitButton(x, y int) bool {
	return m.button.Contains(float64(x), float64(y))
}

// HitIcon returns the mode of the icon at (x, y) while the menu is open
func (m *NavMenu) HitIcon(x, y int) (render.Mode, bool) {
	if !m.open {
		return 0, false
	}
	for _, icon := range m.icons {
		if icon.rect.Current().Contains(float64(x), float64(y)) && !m.HitButton(x, y) {
			return icon.mode, true
		}
	}
	return 0, false
}

// Hovered reports whether any part of the menu is under the mouse
func (m *NavMenu) Hovered() bool {
	if m.buttonHover {
		return true
	}
	for _, icon := range m.icons {
		if icon.hover {
			return true
		}
	}
	return false
}

// Draw renders the sliding background, the icons and the button on top
func (m *NavMenu) Draw(c *render.Canvas, current render.Mode) {
	bgStyle := tcell.StyleDefault.Background(render.ToColor(render.MenuBackground)).Foreground(render.ToColor(render.MenuHover))
	bx, by, bw, bh := m.background.Current().Cells()
	c.FillRect(bx, by, bw, bh, ' ', bgStyle)

	// rightmost first so the icons closest to the button are drawn on top
	for i := len(m.icons) - 1; i >= 0; i-- {
		icon := m.icons[i]
		style := bgStyle
		if icon.hover {
			style = style.Background(render.ToColor(render.MenuHover)).Foreground(tcell.ColorWhite)
		}
		if icon.mode == current {
			style = style.Bold(true)
		}
		drawIcon(c, icon.rect.Current(), icon.label, style)
	}

	style := bgStyle.Foreground(tcell.ColorBlack)
	if m.buttonHover {
		style = style.Background(render.ToColor(render.MenuHover)).Foreground(tcell.ColorWhite)
	}
	drawIcon(c, m.button, "☰", style)
}

func (m *NavMenu) rects() []*tween.AnimatedRect {
	rects := []*tween.AnimatedRect{m.background}
	for _, icon := range m.icons {
		rects = append(rects, icon.rect)
	}
	return rects
}

func drawIcon(c *render.Canvas, r tween.Rect, label string, style tcell.Style) {
	x, y, w, h := r.Cells()
	c.FillRect(x, y, w, h, ' ', style)
	c.DrawBox(x, y, w, h, style)
	c.DrawTextClipped(x+(w-render.TextWidth(label))/2, y+h/2, w-2, label, style)
}
