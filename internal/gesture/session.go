// Package gesture implements pointer driven moving and resizing: the pure
// session arithmetic, a per-widget state machine, and the capture hub that
// routes a gesture's pointer events to its owner until release.
package gesture

import (
	"errors"
	"math"

	"github.com/Gaurav-Gosain/stickyboard/internal/geom"
)

// Constraints bound a resize. A zero maximum means unbounded.
type Constraints struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64

	AspectRatioLocked bool
	// Ratio is height/width. Zero takes the ratio at the start of the
	// gesture.
	Ratio float64
}

func upper(v float64) float64 {
	if v <= 0 {
		return math.Inf(1)
	}
	return v
}

// Validate reports bounds that no size can satisfy.
func (c Constraints) Validate() error {
	if c.MinWidth < 0 || c.MinHeight < 0 {
		return errors.New("minimum size must not be negative")
	}
	if c.MinWidth > upper(c.MaxWidth) {
		return errors.New("min width exceeds max width")
	}
	if c.MinHeight > upper(c.MaxHeight) {
		return errors.New("min height exceeds max height")
	}
	if c.Ratio < 0 {
		return errors.New("aspect ratio must not be negative")
	}
	if c.AspectRatioLocked && c.Ratio > 0 {
		lo := max(c.MinWidth, c.MinHeight/c.Ratio)
		hi := min(upper(c.MaxWidth), upper(c.MaxHeight)/c.Ratio)
		if lo > hi {
			return errors.New("aspect ratio cannot satisfy both width and height bounds")
		}
	}
	return nil
}

// DragSession is one move gesture.
type DragSession struct {
	StartPointer  geom.Point
	StartPosition geom.Point
}

// BeginDrag starts a move gesture at the pointer for a widget at pos.
func BeginDrag(px, py float64, pos geom.Point) DragSession {
	return DragSession{StartPointer: geom.Pt(px, py), StartPosition: pos}
}

// UpdateDrag translates the start position by the pointer's travel.
func UpdateDrag(s DragSession, px, py float64) geom.Point {
	return geom.Pt(px-s.StartPointer.X+s.StartPosition.X, py-s.StartPointer.Y+s.StartPosition.Y)
}

// ResizeSession is one resize gesture.
type ResizeSession struct {
	Direction    Direction
	StartPointer geom.Point
	StartWidth   float64
	StartHeight  float64
	Constraints  Constraints
}

// BeginResize starts a resize gesture from a handle facing dir.
func BeginResize(px, py float64, dir Direction, width, height float64, c Constraints) ResizeSession {
	return ResizeSession{
		Direction:    dir,
		StartPointer: geom.Pt(px, py),
		StartWidth:   width,
		StartHeight:  height,
		Constraints:  c,
	}
}

// Ratio is the height/width ratio kept by an aspect locked resize.
func (s ResizeSession) Ratio() float64 {
	if s.Constraints.Ratio > 0 {
		return s.Constraints.Ratio
	}
	if s.StartWidth > 0 && s.StartHeight > 0 {
		return s.StartHeight / s.StartWidth
	}
	return 1
}

// UpdateResize applies the pointer's travel to the edges named by the
// session's direction and clamps the result. With the aspect ratio
// locked, height always follows the clamped width.
func UpdateResize(s ResizeSession, px, py float64) geom.Size {
	dx := px - s.StartPointer.X
	dy := py - s.StartPointer.Y
	w, h := s.StartWidth, s.StartHeight

	d := s.Direction
	if d.Has(East) {
		w += dx
	}
	if d.Has(West) {
		w -= dx
	}
	if d.Has(South) {
		h += dy
	}
	if d.Has(North) {
		h -= dy
	}

	c := s.Constraints
	if !c.AspectRatioLocked {
		return geom.Size{
			Width:  geom.Clamp(w, c.MinWidth, upper(c.MaxWidth)),
			Height: geom.Clamp(h, c.MinHeight, upper(c.MaxHeight)),
		}
	}

	r := s.Ratio()
	if !d.Horizontal() {
		// An edge without a horizontal component still drives the size.
		w = h / r
	}
	lo := max(c.MinWidth, c.MinHeight/r)
	hi := min(upper(c.MaxWidth), upper(c.MaxHeight)/r)
	w = geom.Clamp(w, lo, hi)
	return geom.Size{Width: w, Height: w * r}
}

// Anchor returns where a widget that started at start must sit so the
// edges opposite the handle stay put.
func Anchor(s ResizeSession, start geom.Point, size geom.Size) geom.Point {
	p := start
	if s.Direction.Has(West) {
		p.X += s.StartWidth - size.Width
	}
	if s.Direction.Has(North) {
		p.Y += s.StartHeight - size.Height
	}
	return p
}
