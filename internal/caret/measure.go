package caret

import "github.com/Gaurav-Gosain/stickyboard/internal/geom"

// Extent selects which width a CellMeasurer reports for wrapped text.
type Extent int

const (
	// CaretExtent reports the width of the last row, so the end point of
	// a prefix is where the caret after it is drawn.
	CaretExtent Extent = iota
	// BoxExtent reports the width of the widest row, like a block's
	// bounding box.
	BoxExtent
)

// ParseExtent maps "box" to BoxExtent and anything else to CaretExtent.
func ParseExtent(s string) Extent {
	if s == "box" {
		return BoxExtent
	}
	return CaretExtent
}

func (e Extent) String() string {
	if e == BoxExtent {
		return "box"
	}
	return "caret"
}

// CellMeasurer measures text laid out on a terminal cell grid with Wrap.
type CellMeasurer struct {
	Extent Extent
}

// Open implements Measurer.
func (m CellMeasurer) Open(font FontSpec) Surface {
	return &cellSurface{font: font, extent: m.Extent}
}

type cellSurface struct {
	font   FontSpec
	extent Extent
}

func (s *cellSurface) Measure(prefix []rune) geom.Size {
	padX := float64(2 * s.font.PaddingX)
	padY := float64(2 * s.font.PaddingY)
	if len(prefix) == 0 {
		return geom.Size{Width: padX, Height: padY}
	}

	w := Wrap(prefix, s.font.ContentWidth, s.font.TabWidth)
	width := w.Lines[len(w.Lines)-1].Width
	if s.extent == BoxExtent {
		width = w.MaxWidth()
	}
	return geom.Size{
		Width:  float64(width) + padX,
		Height: float64(w.Height()*s.font.lineHeight()) + padY,
	}
}

func (s *cellSurface) Close() {}
