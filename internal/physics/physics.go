// Package physics provides geometry helpers, viewport scaling and a broad-phase grid.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSquared(x1, y1, x2, y2))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Contains reports whether the point lies inside the half-open rectangle
// [X, X+W) x [Y, Y+H).
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// ClosestPoint returns the point of the rectangle (edges included) nearest to (px, py).
func (r Rect) ClosestPoint(px, py float64) (float64, float64) {
	return Clamp(px, r.X, r.X+r.W), Clamp(py, r.Y, r.Y+r.H)
}

// DistanceSquaredTo returns the squared distance from (px, py) to the nearest
// point of the rectangle. Zero when the point is inside.
func (r Rect) DistanceSquaredTo(px, py float64) float64 {
	cx, cy := r.ClosestPoint(px, py)
	return DistanceSquared(px, py, cx, cy)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
