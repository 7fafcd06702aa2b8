package tween

import (
	"math"
)

// Rect is an axis aligned rectangle in cell or pixel units
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Lerp interpolates component-wise from r to to. t is not clamped.
func (r Rect) Lerp(to Rect, t float64) Rect {
	return Rect{
		X: r.X*(1-t) + to.X*t,
		Y: r.Y*(1-t) + to.Y*t,
		W: r.W*(1-t) + to.W*t,
		H: r.H*(1-t) + to.H*t,
	}
}

// Contains tests whether (x, y) lies inside, right and bottom edges excluded
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the centre of the rectangle
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Cells rounds the rectangle to whole cells
func (r Rect) Cells() (x, y, w, h int) {
	return int(math.Round(r.X)), int(math.Round(r.Y)), int(math.Round(r.W)), int(math.Round(r.H))
}
