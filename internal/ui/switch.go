package ui

import (
	"math"
	"time"

	"asciimaps/internal/render"
	"asciimaps/internal/tween"

	"github.com/gdamore/tcell/v2"
)

const (
	switchWidth = 6
	switchRate  = 4.0
)

// Switch is the postal code toggle next to the search box
type Switch struct {
	on    bool
	track tween.Rect
	knob  *tween.AnimatedRect
}

// NewSwitch creates an off switch with its track starting at (x, y)
func NewSwitch(x, y int) *Switch {
	track := tween.Rect{X: float64(x), Y: float64(y), W: switchWidth, H: 1}
	knob := tween.New(tween.Rect{X: track.X + 1, Y: track.Y, W: 1, H: 1}, switchRate)
	knob.AddState(tween.Rect{X: track.X + track.W - 2, Y: track.Y, W: 1, H: 1})

	return &Switch{track: track, knob: knob}
}

// Toggle flips the switch and starts the knob moving
func (s *Switch) Toggle() {
	s.on = !s.on
	target := 0
	if s.on {
		target = 1
	}
	// both states exist, SetState cannot fail
	_ = s.knob.SetState(target)
}

// On reports the switch position
func (s *Switch) On() bool {
	return s.on
}

// Tick advances the knob animation
func (s *Switch) Tick(dt time.Duration) {
	s.knob.Tick(dt)
}

// Hit reports whether (x, y) is on the track
func (s *Switch) Hit(x, y int) bool {
	return s.track.Contains(float64(x), float64(y))
}

// Knob returns the current knob rectangle
func (s *Switch) Knob() tween.Rect {
	return s.knob.Current()
}

// Blend is how far the track colour has moved towards the "on" colour.
// It follows the knob, so a reversed toggle fades back from where it is.
func (s *Switch) Blend() float64 {
	off, _ := s.knob.State(0)
	on, _ := s.knob.State(1)
	travel := on.X - off.X
	if travel == 0 {
		return 0
	}
	return math.Max(0, math.Min(1, (s.knob.Current().X-off.X)/travel))
}

// Draw renders the track and knob
func (s *Switch) Draw(c *render.Canvas) {
	x, y, w, _ := s.track.Cells()
	bg := render.Blend(render.SwitchOff, render.SwitchOn, s.Blend())
	edge := tcell.StyleDefault.Foreground(render.ToColor(render.SwitchKnob)).Background(bg)

	c.FillRect(x, y, w, 1, ' ', edge)
	c.Set(x, y, '(', edge)
	c.Set(x+w-1, y, ')', edge)

	kx, ky, _, _ := s.knob.Current().Cells()
	c.Set(kx, ky, '●', edge)
}
