package caret

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is used when a FontSpec leaves TabWidth unset.
const DefaultTabWidth = 4

// Line is one visual row of wrapped text. Start and End are rune offsets
// into the wrapped text; End excludes the newline that ended the row.
type Line struct {
	Start, End int
	Width      int
}

// Wrapped is text laid out into rows of a fixed cell width.
type Wrapped struct {
	Text     []rune
	Lines    []Line
	Width    int
	TabWidth int
}

// runeWidth returns how many cells r occupies when drawn at column col.
func runeWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		if tabWidth <= 0 {
			tabWidth = DefaultTabWidth
		}
		return tabWidth - col%tabWidth
	}
	return runewidth.RuneWidth(r)
}

func runWidth(text []rune, tabWidth int) int {
	w := 0
	for _, r := range text {
		w += runeWidth(r, w, tabWidth)
	}
	return w
}

// Wrap lays text out greedily. Words move to the next row when they do not
// fit and words longer than a row are broken at the row edge. Newlines
// always start a new row. There is always at least one row.
func Wrap(text []rune, width, tabWidth int) Wrapped {
	if width < 1 {
		width = 1
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	lines := make([]Line, 0, 4)
	start, w := 0, 0
	brk, brkW := -1, 0

	for i, r := range text {
		if r == '\n' {
			lines = append(lines, Line{Start: start, End: i, Width: w})
			start, w, brk = i+1, 0, -1
			continue
		}

		cw := runeWidth(r, w, tabWidth)
		if r == ' ' && w+cw > width {
			// Spaces hang past the edge instead of opening a row.
			brk, brkW = i+1, w
			continue
		}
		for w+cw > width && i > start {
			if brk > start {
				lines = append(lines, Line{Start: start, End: brk, Width: brkW})
				start = brk
				w = runWidth(text[start:i], tabWidth)
			} else {
				lines = append(lines, Line{Start: start, End: i, Width: w})
				start, w = i, 0
			}
			brk = -1
			cw = runeWidth(r, w, tabWidth)
		}

		w += cw
		if r == ' ' || r == '\t' {
			brk, brkW = i+1, w
		}
	}

	lines = append(lines, Line{Start: start, End: len(text), Width: w})
	return Wrapped{Text: text, Lines: lines, Width: width, TabWidth: tabWidth}
}

// Position returns the row and column where a caret at offset is drawn.
// An offset on a soft wrap boundary belongs to the start of the next row.
func (w Wrapped) Position(offset int) (row, col int) {
	if offset <= 0 || len(w.Lines) == 0 {
		return 0, 0
	}
	if offset > len(w.Text) {
		offset = len(w.Text)
	}
	for i, l := range w.Lines {
		last := i == len(w.Lines)-1
		if offset < l.End || (offset == l.End && (last || w.Lines[i+1].Start != l.End)) {
			if offset < l.Start {
				return i, 0
			}
			return i, min(runWidth(w.Text[l.Start:offset], w.TabWidth), l.Width)
		}
	}
	last := len(w.Lines) - 1
	return last, w.Lines[last].Width
}

// OffsetAt returns the caret offset nearest to column x on row. Rows past
// either end are clamped. An exact midpoint resolves to the earlier offset.
func (w Wrapped) OffsetAt(row int, x float64) int {
	if len(w.Lines) == 0 {
		return 0
	}
	if row < 0 {
		row = 0
	}
	if row >= len(w.Lines) {
		row = len(w.Lines) - 1
	}
	l := w.Lines[row]
	col := 0
	for i := l.Start; i < l.End; i++ {
		cw := runeWidth(w.Text[i], col, w.TabWidth)
		if x <= float64(col)+float64(cw)/2 {
			return i
		}
		col += cw
	}
	return l.End
}

// Rows returns the text of each row with tabs expanded to spaces.
func (w Wrapped) Rows() []string {
	rows := make([]string, len(w.Lines))
	for i, l := range w.Lines {
		buf := make([]rune, 0, l.End-l.Start)
		col := 0
		for _, r := range w.Text[l.Start:l.End] {
			cw := runeWidth(r, col, w.TabWidth)
			if r == '\t' {
				for range cw {
					buf = append(buf, ' ')
				}
			} else {
				buf = append(buf, r)
			}
			col += cw
		}
		rows[i] = string(buf)
	}
	return rows
}

// Height returns the number of rows.
func (w Wrapped) Height() int { return len(w.Lines) }

// MaxWidth returns the width of the widest row.
func (w Wrapped) MaxWidth() int {
	m := 0
	for _, l := range w.Lines {
		m = max(m, l.Width)
	}
	return m
}

// FitRow truncates a rendered row to width cells.
func FitRow(row string, width int) string {
	if ansi.StringWidth(row) <= width {
		return row
	}
	return ansi.Truncate(row, width, "")
}
