package note

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/stickyboard/internal/caret"
	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/gesture"
	"github.com/Gaurav-Gosain/stickyboard/internal/theme"
)

const (
	gripGlyph   = "⠿"
	editGlyph   = "✎"
	dirtyGlyph  = "•"
	resizeGlyph = "◢"
	photoGlyph  = "░"
)

// Swatch returns the colors the note is drawn with.
func (n *Note) Swatch() theme.Swatch {
	p, _ := theme.LookupPalette(n.Variant.String(), n.State.Palette)
	return p.Swatch(n.State.Dark)
}

// View renders the note at its current size. focused selects the focus
// border color.
func (n *Note) View(focused bool) string {
	r := n.Rect()
	w := r.Dx()
	sw := n.Swatch()

	borderColor := sw.Border
	switch {
	case n.Gesture() != gesture.Idle:
		borderColor = theme.BorderGesture()
	case n.Editing():
		borderColor = theme.BorderEditing()
	case focused:
		borderColor = theme.BorderFocused()
	}

	b := config.GetBorderForStyle()
	edge := lipgloss.NewStyle().Foreground(borderColor).Background(sw.Paper)
	paper := lipgloss.NewStyle().Foreground(sw.Ink).Background(sw.Paper)

	rows := make([]string, 0, r.Dy())
	rows = append(rows, n.topBorder(b, edge, w))

	inner := r.Inset(1)
	text := n.TextRect()
	body := n.textRows(text.Dx(), text.Dy(), paper)
	photo := lipgloss.NewStyle().Foreground(sw.Border).Background(sw.Paper)

	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		var content string
		if y < text.Min.Y {
			content = photo.Render(strings.Repeat(photoGlyph, inner.Dx()))
		} else {
			content = body[y-text.Min.Y]
		}
		rows = append(rows, edge.Render(b.Left)+content+edge.Render(b.Right))
	}

	rows = append(rows, n.bottomBorder(b, edge, w))
	return strings.Join(rows, "\n")
}

func (n *Note) topBorder(b lipgloss.Border, style lipgloss.Style, w int) string {
	title := " " + gripGlyph + " " + n.spec.Badge
	if n.Editing() {
		title += " " + editGlyph
	}
	if n.Dirty() {
		title += dirtyGlyph
	}
	title += " "

	avail := max(w-2, 0)
	title = ansi.Truncate(title, avail, "")
	fill := max(avail-ansi.StringWidth(title), 0)
	return style.Render(b.TopLeft + title + strings.Repeat(b.Top, fill) + b.TopRight)
}

func (n *Note) bottomBorder(b lipgloss.Border, style lipgloss.Style, w int) string {
	corner := b.BottomRight
	if n.spec.HasHandle(gesture.SouthEast) && config.BorderStyle != "ascii" {
		corner = resizeGlyph
	}
	return style.Render(b.BottomLeft + strings.Repeat(b.Bottom, max(w-2, 0)) + corner)
}

// textRows renders the text container as height rows of width cells,
// scrolled so the caret stays visible.
func (n *Note) textRows(width, height int, paper lipgloss.Style) []string {
	padX, padY := config.NotePaddingX, config.NotePaddingY
	contentW := max(width-2*padX, 1)

	wrapped := n.Layout()
	lines := wrapped.Rows()
	scroll := n.ScrollRows()

	caretRow, caretCol := -1, 0
	if n.Focused() {
		caretRow, caretCol = wrapped.Position(n.buffer.Cursor())
	}
	caretFg, caretBg := theme.CaretColors()
	caretStyle := lipgloss.NewStyle().Foreground(caretFg).Background(caretBg)

	blank := paper.Render(strings.Repeat(" ", width))
	out := make([]string, height)
	for i := range out {
		li := scroll + i - padY
		if i < padY || i >= height-padY || li < 0 || li >= len(lines) {
			out[i] = blank
			continue
		}

		line := caret.FitRow(lines[li], contentW)
		line += strings.Repeat(" ", contentW-ansi.StringWidth(line))
		full := strings.Repeat(" ", padX) + line + strings.Repeat(" ", width-padX-contentW)

		if li != caretRow {
			out[i] = paper.Render(full)
			continue
		}

		at := min(padX+caretCol, width-1)
		cell := ansi.Cut(full, at, at+1)
		if cell == "" {
			cell = ansi.Cut(full, at, at+2)
		}
		if cell == "" {
			cell = " "
		}
		out[i] = paper.Render(ansi.Cut(full, 0, at)) +
			caretStyle.Render(cell) +
			paper.Render(ansi.Cut(full, at+ansi.StringWidth(cell), width))
	}
	return out
}
