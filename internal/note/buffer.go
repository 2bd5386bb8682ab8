package note

import (
	"github.com/Gaurav-Gosain/stickyboard/internal/caret"
	"github.com/Gaurav-Gosain/stickyboard/internal/config"
)

// TextBuffer is the text being edited plus its caret. Offsets count runes
// and the caret always stays within [0, Len()].
type TextBuffer struct {
	content   []rune
	cursor    int
	committed string
}

// NewTextBuffer starts editing text with the caret at cursor.
func NewTextBuffer(text string, cursor int) *TextBuffer {
	b := &TextBuffer{content: []rune(text), committed: text}
	b.cursor = b.clampPosition(cursor)
	return b
}

// Text returns the current content.
func (b *TextBuffer) Text() string { return string(b.content) }

// Runes returns the current content. The slice must not be modified.
func (b *TextBuffer) Runes() []rune { return b.content }

// Len returns the number of runes.
func (b *TextBuffer) Len() int { return len(b.content) }

// Cursor returns the caret offset.
func (b *TextBuffer) Cursor() int { return b.cursor }

// SetCursor moves the caret, clamped into range.
func (b *TextBuffer) SetCursor(pos int) { b.cursor = b.clampPosition(pos) }

// Committed returns the text as it was when editing started or was last
// saved.
func (b *TextBuffer) Committed() string { return b.committed }

// Dirty reports whether the content differs from the committed text.
func (b *TextBuffer) Dirty() bool { return string(b.content) != b.committed }

// MarkCommitted records the current content as saved.
func (b *TextBuffer) MarkCommitted() { b.committed = string(b.content) }

// Revert restores the committed text.
func (b *TextBuffer) Revert() {
	b.content = []rune(b.committed)
	b.cursor = b.clampPosition(b.cursor)
}

// Insert adds s at the caret and moves the caret past it. Input that
// would grow the note past MaxNoteRunes is truncated.
func (b *TextBuffer) Insert(s string) bool {
	r := []rune(s)
	if room := config.MaxNoteRunes - len(b.content); len(r) > room {
		r = r[:max(room, 0)]
	}
	if len(r) == 0 {
		return false
	}
	out := make([]rune, 0, len(b.content)+len(r))
	out = append(out, b.content[:b.cursor]...)
	out = append(out, r...)
	out = append(out, b.content[b.cursor:]...)
	b.content = out
	b.cursor += len(r)
	return true
}

// Backspace deletes the rune before the caret.
func (b *TextBuffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	b.content = append(b.content[:b.cursor-1], b.content[b.cursor:]...)
	b.cursor--
	return true
}

// Delete deletes the rune after the caret.
func (b *TextBuffer) Delete() bool {
	if b.cursor >= len(b.content) {
		return false
	}
	b.content = append(b.content[:b.cursor], b.content[b.cursor+1:]...)
	return true
}

// Left moves the caret back one rune.
func (b *TextBuffer) Left() { b.SetCursor(b.cursor - 1) }

// Right moves the caret forward one rune.
func (b *TextBuffer) Right() { b.SetCursor(b.cursor + 1) }

// Home moves the caret to the start of its visual row.
func (b *TextBuffer) Home(w caret.Wrapped) {
	row, _ := w.Position(b.cursor)
	b.SetCursor(w.OffsetAt(row, 0))
}

// End moves the caret to the end of its visual row.
func (b *TextBuffer) End(w caret.Wrapped) {
	row, _ := w.Position(b.cursor)
	end := w.Lines[row].End
	// A soft wrapped row ends where the next one starts; stay on this row.
	if row+1 < len(w.Lines) && w.Lines[row+1].Start == end && end > w.Lines[row].Start {
		end--
	}
	b.SetCursor(end)
}

// Up moves the caret to the row above, keeping its column.
func (b *TextBuffer) Up(w caret.Wrapped) { b.vertical(w, -1) }

// Down moves the caret to the row below, keeping its column.
func (b *TextBuffer) Down(w caret.Wrapped) { b.vertical(w, 1) }

func (b *TextBuffer) vertical(w caret.Wrapped, delta int) {
	row, col := w.Position(b.cursor)
	target := row + delta
	switch {
	case target < 0:
		b.SetCursor(0)
	case target >= w.Height():
		b.SetCursor(len(b.content))
	default:
		b.SetCursor(w.OffsetAt(target, float64(col)))
	}
}

func (b *TextBuffer) clampPosition(pos int) int {
	return min(max(pos, 0), len(b.content))
}
