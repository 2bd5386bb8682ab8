// Package note is the sticky note widget: it ties the caret locator and
// the gesture controller to a note's text, geometry and palette.
package note

import (
	"image"

	"github.com/Gaurav-Gosain/stickyboard/internal/caret"
	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/geom"
	"github.com/Gaurav-Gosain/stickyboard/internal/gesture"
	"github.com/Gaurav-Gosain/stickyboard/internal/theme"
	uv "github.com/charmbracelet/ultraviolet"
)

// VisualState is the persistent per-note state.
type VisualState struct {
	Position geom.Point
	Size     geom.Size
	Palette  string
	Dark     bool
	Editing  bool
}

// Callbacks report changes to the note's owner. Any may be nil. They are
// called synchronously and must not block.
type Callbacks struct {
	OnTextChange       func(text string)
	OnCommit           func(text string)
	OnResize           func(width, height int)
	OnMove             func(x, y int)
	OnThemeChange      func(palette string)
	OnBackgroundChange func(dark bool)
	OnDelete           func()
}

// Note is one sticky note.
type Note struct {
	ID       string
	Variant  Variant
	State    VisualState
	Text     string
	Z        int
	Editable bool

	Callbacks Callbacks

	spec     Spec
	buffer   *TextBuffer
	focused  bool
	gestures *gesture.Controller
	locator  caret.Chain
}

// New creates an empty note of variant v at (x, y). Its gestures take
// captures from hub.
func New(id string, v Variant, x, y int, hub *gesture.Hub) *Note {
	spec := SpecFor(v)
	n := &Note{
		ID:       id,
		Variant:  v,
		Editable: true,
		spec:     spec,
		gestures: gesture.NewController(hub, id),
		locator:  newLocator(),
	}
	n.State = VisualState{
		Position: geom.Pt(float64(x), float64(y)),
		Size:     geom.Size{Width: float64(spec.Width), Height: float64(spec.Height)},
		Palette:  theme.NextPalette(v.String(), "").ID,
		Dark:     config.DarkNotes,
	}
	return n
}

func newLocator() caret.Chain {
	return caret.ForName(config.CaretStrategy, caret.CellMeasurer{Extent: caret.ParseExtent(config.CaretExtent)})
}

// Spec returns the variant behaviour the note was built with.
func (n *Note) Spec() Spec { return n.spec }

// SetVariant switches the note's type, resetting its palette and, for
// aspect locked variants, its size.
func (n *Note) SetVariant(v Variant) {
	n.gestures.Cancel()
	n.Variant = v
	n.spec = SpecFor(v)
	n.State.Palette = theme.NextPalette(v.String(), "").ID
	if n.spec.AspectLocked {
		n.State.Size = geom.Size{Width: float64(n.spec.Width), Height: float64(n.spec.Height)}
	}
	n.notifyTheme()
}

// Rect returns the note's cell rectangle, border included.
func (n *Note) Rect() uv.Rectangle {
	return uv.Rect(
		geom.Round(n.State.Position.X), geom.Round(n.State.Position.Y),
		max(geom.Round(n.State.Size.Width), 3), max(geom.Round(n.State.Size.Height), 3),
	)
}

// captionRows is the height of a polaroid's caption strip.
func (n *Note) captionRows(inner int) int {
	return min(max(config.PolaroidCaptionRows, inner/4), inner)
}

// TextRect returns the text container: the note's interior, or the
// caption strip for polaroids. It includes the horizontal padding.
func (n *Note) TextRect() uv.Rectangle {
	inner := n.Rect().Inset(1)
	if n.Variant == Polaroid {
		inner.Min.Y = inner.Max.Y - n.captionRows(inner.Dy())
	}
	return inner
}

// PhotoRect returns the polaroid photo area, which is empty for other
// variants.
func (n *Note) PhotoRect() uv.Rectangle {
	if n.Variant != Polaroid {
		return uv.Rectangle{}
	}
	inner := n.Rect().Inset(1)
	inner.Max.Y = n.TextRect().Min.Y
	return inner
}

// Font returns the layout metrics of the note's text.
func (n *Note) Font() caret.FontSpec {
	return caret.FontSpec{
		ContentWidth: max(n.TextRect().Dx()-2*config.NotePaddingX, 1),
		LineHeight:   1,
		PaddingX:     config.NotePaddingX,
		PaddingY:     config.NotePaddingY,
		TabWidth:     config.TabWidth,
	}
}

// DisplayText returns what the note currently shows.
func (n *Note) DisplayText() string {
	if n.buffer != nil {
		return n.buffer.Text()
	}
	return n.Text
}

// Layout wraps the displayed text to the note's width.
func (n *Note) Layout() caret.Wrapped {
	f := n.Font()
	if n.buffer != nil {
		return caret.Wrap(n.buffer.Runes(), f.ContentWidth, f.TabWidth)
	}
	return caret.Wrap([]rune(n.Text), f.ContentWidth, f.TabWidth)
}

// ScrollRows returns how many rows are scrolled off the top so the caret
// stays visible.
func (n *Note) ScrollRows() int {
	if n.buffer == nil || !n.focused {
		return 0
	}
	area := n.TextRect().Dy() - 2*config.NotePaddingY
	row, _ := n.Layout().Position(n.buffer.Cursor())
	return max(0, row-area+1)
}

// Region is the part of a note under the pointer.
type Region int

const (
	RegionNone Region = iota
	RegionText
	RegionDrag
	RegionResize
	RegionBorder
)

// HitTest classifies the cell (x, y). For RegionResize it also returns the
// handle direction.
func (n *Note) HitTest(x, y int) (Region, gesture.Direction) {
	r := n.Rect()
	if !geom.Contains(r, x, y) {
		return RegionNone, 0
	}

	lx, ly := x-r.Min.X, y-r.Min.Y
	w, h := r.Dx(), r.Dy()

	var d gesture.Direction
	if ly == 0 {
		d |= gesture.North
	}
	if ly == h-1 {
		d |= gesture.South
	}
	if lx == 0 {
		d |= gesture.West
	}
	if lx == w-1 {
		d |= gesture.East
	}

	if d != 0 && n.spec.HasHandle(d) {
		return RegionResize, d
	}
	if ly == 0 {
		return RegionDrag, 0
	}
	if d != 0 {
		return RegionBorder, 0
	}
	if geom.Contains(n.PhotoRect(), x, y) {
		return RegionDrag, 0
	}
	return RegionText, 0
}

// CornerFor picks the resize handle for a secondary-button drag starting
// at (x, y): the corner of the quadrant that was pressed, or the first
// handle the variant has.
func (n *Note) CornerFor(x, y int) gesture.Direction {
	r := n.Rect()
	c := r.Min.Add(r.Max).Div(2)
	var d gesture.Direction
	if y < c.Y {
		d |= gesture.North
	} else {
		d |= gesture.South
	}
	if x < c.X {
		d |= gesture.West
	} else {
		d |= gesture.East
	}
	if n.spec.HasHandle(d) {
		return d
	}
	if n.spec.HasHandle(gesture.SouthEast) {
		return gesture.SouthEast
	}
	return n.spec.Handles[0]
}

// CaretAt maps a click on cell (x, y) to an offset in the displayed text.
func (n *Note) CaretAt(x, y int) int {
	container := n.TextRect().Sub(image.Pt(0, n.ScrollRows()))
	q := caret.NewQuery(x, y, container, n.DisplayText(), n.Font())
	return n.locator.Locate(q)
}
