package caret

import "math"

// Grid looks the click up directly in the wrapped layout of the whole
// buffer, the way a text frame maps a point to a character. It declines
// clicks that fall outside the rows of text.
type Grid struct{}

// Offset implements Strategy.
func (Grid) Offset(q Query) (int, bool) {
	if len(q.Buffer) == 0 || q.Container.Empty() {
		return 0, false
	}

	p := q.relative()
	x := p.X - float64(q.Font.PaddingX)
	y := p.Y - float64(q.Font.PaddingY)
	if x < 0 || y <= 0 {
		return 0, false
	}

	w := Wrap(q.Buffer, q.Font.ContentWidth, q.Font.TabWidth)
	row := int(math.Ceil(y/float64(q.Font.lineHeight()))) - 1
	if row >= w.Height() {
		return 0, false
	}
	return w.OffsetAt(row, x), true
}
