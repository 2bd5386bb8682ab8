// Package geom holds the small amount of geometry shared by the caret
// locator, the gesture controller and the board's hit testing.
package geom

import (
	"math"

	uv "github.com/charmbracelet/ultraviolet"
)

// Point is a location in continuous space. Terminal cells map onto it with
// one unit per cell.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// FromPosition converts a cell position into a Point.
func FromPosition(p uv.Position) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size is a width/height pair in continuous space.
type Size struct {
	Width, Height float64
}

// Clamp bounds v into [lo, hi]. When lo > hi the lower bound wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampInt is Clamp for ints.
func ClampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Round converts a continuous coordinate to the nearest cell.
func Round(v float64) int {
	return int(math.Round(v))
}

// Contains reports whether the cell (x, y) is inside r.
func Contains(r uv.Rectangle, x, y int) bool {
	return uv.Pos(x, y).In(r)
}
