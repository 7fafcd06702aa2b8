// Package tween animates rectangles between a fixed list of states.
//
// An AnimatedRect is driven once per frame with the elapsed time. Switching
// state freezes the rectangle where it currently is and starts a new
// transition from there, so a transition can be reversed halfway through
// without jumping.
package tween

import (
	"errors"
	"fmt"
	"time"
)

// ErrStateRange is wrapped by every RangeError
var ErrStateRange = errors.New("state index out of range")

// RangeError reports a state index outside [0, Len)
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("state index %d out of range [0, %d)", e.Index, e.Len)
}

// Unwrap lets errors.Is(err, ErrStateRange) match
func (e *RangeError) Unwrap() error {
	return ErrStateRange
}

// AnimatedRect interpolates from a departure rectangle to one of its states.
// The zero value is not usable; call New.
type AnimatedRect struct {
	states    []Rect
	departure Rect
	target    int
	progress  float64
	rate      float64
}

// New creates an AnimatedRect at rest at state 0 (progress 1).
// rate is progress gained per second.
func New(initial Rect, rate float64) *AnimatedRect {
	return &AnimatedRect{
		states:    []Rect{initial},
		departure: initial,
		target:    0,
		progress:  1.0,
		rate:      rate,
	}
}

// AddState appends a state and returns its index. The running transition
// is not affected.
func (a *AnimatedRect) AddState(r Rect) int {
	a.states = append(a.states, r)
	return len(a.states) - 1
}

// SetState starts a transition from the current rectangle to state index
func (a *AnimatedRect) SetState(index int) error {
	if index < 0 || index >= len(a.states) {
		return &RangeError{Index: index, Len: len(a.states)}
	}

	a.departure = a.Current()
	a.target = index
	a.progress = 0
	return nil
}

// SetProgress jumps to progress p, clamped to [0, 1]
func (a *AnimatedRect) SetProgress(p float64) {
	a.progress = clamp01(p)
}

// Tick advances progress by dt times the rate. Progress stays within [0, 1];
// a negative dt moves it backwards.
func (a *AnimatedRect) Tick(dt time.Duration) {
	a.progress = clamp01(a.progress + dt.Seconds()*a.rate)
}

// Current returns the interpolated rectangle
func (a *AnimatedRect) Current() Rect {
	return a.departure.Lerp(a.states[a.target], a.progress)
}

// Progress returns the transition progress in [0, 1]
func (a *AnimatedRect) Progress() float64 {
	return a.progress
}

// Done reports whether the rectangle has reached its target state
func (a *AnimatedRect) Done() bool {
	return a.progress >= 1.0
}

// Target returns the index of the state being moved to
func (a *AnimatedRect) Target() int {
	return a.target
}

// TargetRect returns the state being moved to
func (a *AnimatedRect) TargetRect() Rect {
	return a.states[a.target]
}

// Departure returns the rectangle the running transition started from
func (a *AnimatedRect) Departure() Rect {
	return a.departure
}

// State returns state index i
func (a *AnimatedRect) State(i int) (Rect, error) {
	if i < 0 || i >= len(a.states) {
		return Rect{}, &RangeError{Index: i, Len: len(a.states)}
	}
	return a.states[i], nil
}

// Len returns the number of states
func (a *AnimatedRect) Len() int {
	return len(a.states)
}

// Rate returns the progress gained per second
func (a *AnimatedRect) Rate() float64 {
	return a.rate
}

// Copy returns an independent AnimatedRect with the same states, target,
// departure and progress
func (a *AnimatedRect) Copy() *AnimatedRect {
	c := *a
	c.states = append([]Rect(nil), a.states...)
	return &c
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
