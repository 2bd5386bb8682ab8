// Package caret maps a pointer click inside a block of wrapped text to the
// caret offset nearest to it.
//
// The text a click lands on has not necessarily been rendered with the
// current contents (the note may be showing a committed value while the
// buffer is about to be edited), so the locator re-measures every prefix
// of the buffer and picks the prefix whose end lies closest to the click.
// That scan is O(n) measurements per click, which is fine for note sized
// text.
package caret

import (
	"math"

	"github.com/Gaurav-Gosain/stickyboard/internal/geom"
	uv "github.com/charmbracelet/ultraviolet"
)

// FontSpec carries every metric that affects how the visible text wraps.
// Terminals draw a single monospace face, so family and point size are
// fixed by the emulator and do not appear here.
type FontSpec struct {
	ContentWidth int
	LineHeight   int
	PaddingX     int
	PaddingY     int
	TabWidth     int
}

func (f FontSpec) lineHeight() int {
	if f.LineHeight < 1 {
		return 1
	}
	return f.LineHeight
}

// Query is a single caret lookup. ClickX and ClickY are in the same space
// as Container, which is the bounding box of the text container including
// its padding.
type Query struct {
	ClickX, ClickY float64
	Container      uv.Rectangle
	Buffer         []rune
	Font           FontSpec
}

// NewQuery builds a Query for a click on cell (x, y). A cell is addressed
// by its bottom-left corner so the click compares against the bottom edge
// of the row the caret would sit on.
func NewQuery(x, y int, container uv.Rectangle, text string, font FontSpec) Query {
	return Query{
		ClickX:    float64(x),
		ClickY:    float64(y + font.lineHeight()),
		Container: container,
		Buffer:    []rune(text),
		Font:      font,
	}
}

// relative returns the click relative to the container's top-left corner.
func (q Query) relative() geom.Point {
	return geom.Pt(q.ClickX, q.ClickY).Sub(geom.FromPosition(q.Container.Min))
}

// Surface measures rendered text. Measure returns the full bounding box of
// prefix, padding on both sides included.
type Surface interface {
	Measure(prefix []rune) geom.Size
	Close()
}

// Measurer opens measurement surfaces configured for a font.
type Measurer interface {
	Open(font FontSpec) Surface
}

// Locate returns the offset in q.Buffer whose rendered end point is
// nearest the click. It returns 0 for an empty buffer, an empty container
// or a nil measurer. Among equally near offsets the lowest wins.
func Locate(q Query, m Measurer) int {
	n := len(q.Buffer)
	if n == 0 || q.Container.Empty() || m == nil {
		return 0
	}

	click := q.relative()
	padX, padY := float64(q.Font.PaddingX), float64(q.Font.PaddingY)

	s := m.Open(q.Font)
	defer s.Close()

	best, bestDist := 0, math.Inf(1)
	for i := 0; i <= n; i++ {
		box := s.Measure(q.Buffer[:i])
		end := geom.Pt(box.Width-padX, box.Height-padY)
		if d := geom.Dist(click, end); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Strategy resolves a query to an offset. ok is false when the strategy
// cannot answer and the caller should try another.
type Strategy interface {
	Offset(q Query) (offset int, ok bool)
}

// Scan is the nearest end point search. It always answers.
type Scan struct {
	Measurer Measurer
}

// Offset implements Strategy.
func (s Scan) Offset(q Query) (int, bool) {
	return Locate(q, s.Measurer), true
}

// Chain tries each strategy in order.
type Chain []Strategy

// Offset implements Strategy.
func (c Chain) Offset(q Query) (int, bool) {
	for _, s := range c {
		if off, ok := s.Offset(q); ok {
			return min(max(off, 0), len(q.Buffer)), true
		}
	}
	return 0, false
}

// Locate runs the chain and falls back to 0 when nothing answers.
func (c Chain) Locate(q Query) int {
	off, _ := c.Offset(q)
	return off
}

// Strategy names accepted by ForName.
const (
	StrategyAuto = "auto"
	StrategyScan = "scan"
)

// ForName returns the chain configured by name: "scan" uses only the
// nearest end point search, anything else tries the grid lookup first.
func ForName(name string, m Measurer) Chain {
	if name == StrategyScan {
		return Chain{Scan{Measurer: m}}
	}
	return Chain{Grid{}, Scan{Measurer: m}}
}
