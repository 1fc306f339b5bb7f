package draw

import "math"

// squircleSegments is the outline resolution of a squircle.
const squircleSegments = 32

// squircleExponent controls how square the squircle corners are.
const squircleExponent = 4.0

// Squircle writes a superellipse outline centered at (cx, cy) with the given
// half-size into c's point buffer and returns it.
func (c *Canvas) Squircle(cx, cy, half float64) []Point {
	points := c.BorrowPoints(squircleSegments)
	e := 2 / squircleExponent
	for i := range points {
		a := 2 * math.Pi * float64(i) / squircleSegments
		cos, sin := math.Cos(a), math.Sin(a)
		points[i] = Point{
			X: cx + half*sign(cos)*math.Pow(math.Abs(cos), e),
			Y: cy + half*sign(sin)*math.Pow(math.Abs(sin), e),
		}
	}
	return points
}

// Rhombus returns a diamond with its corners at the midpoints of a square
// of the given half-size.
func (c *Canvas) Rhombus(cx, cy, half float64) []Point {
	points := c.BorrowPoints(4)
	points[0] = Point{X: cx, Y: cy - half}
	points[1] = Point{X: cx + half, Y: cy}
	points[2] = Point{X: cx, Y: cy + half}
	points[3] = Point{X: cx - half, Y: cy}
	return points
}

// Teardrop returns a triangle pointing along angle (radians) with its tip
// at distance size from (cx, cy) and its back corners beside the center.
func (c *Canvas) Teardrop(cx, cy, angle, size float64) []Point {
	points := c.BorrowPoints(3)
	cos, sin := math.Cos(angle), math.Sin(angle)
	px, py := -sin*size*0.6, cos*size*0.6

	points[0] = Point{X: cx + cos*size, Y: cy + sin*size}
	points[1] = Point{X: cx - px, Y: cy - py}
	points[2] = Point{X: cx + px, Y: cy + py}
	return points
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
