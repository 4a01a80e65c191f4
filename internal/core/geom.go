// Package core provides fundamental types and utilities shared by the
// simulation and its presentation adapters. It has no external dependencies
// (especially no Bubble Tea or Ebiten) so game logic stays pure and testable.
package core

import "math"

// EdgeTouchOverlaps reports the collision policy for boxes that only share an
// edge or a corner. Such boxes do not overlap.
const EdgeTouchOverlaps = false

// Box is an axis-aligned bounding box in continuous playfield units.
// X, Y is the top-left corner.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects returns true if the interiors of the two boxes overlap.
// Boxes touching only at an edge or corner do not intersect.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Rect snaps the box to the integer grid by truncating its position.
// The size is rounded up so a fractional box never disappears.
func (b Box) Rect() Rect {
	x, y := int(math.Floor(b.X)), int(math.Floor(b.Y))
	return Rect{X: x, Y: y, W: int(math.Ceil(b.W)), H: int(math.Ceil(b.H))}
}

// Rect represents an integer axis-aligned rectangle on a render grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
