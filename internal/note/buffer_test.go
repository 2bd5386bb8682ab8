package note

import (
	"testing"

	"github.com/Gaurav-Gosain/stickyboard/internal/caret"
)

func TestTextBufferEditing(t *testing.T) {
	b := NewTextBuffer("helo", 3)
	if !b.Insert("l") || b.Text() != "hello" || b.Cursor() != 4 {
		t.Fatalf("Insert: text %q cursor %d", b.Text(), b.Cursor())
	}
	if !b.Dirty() {
		t.Error("buffer should be dirty after Insert")
	}

	b.SetCursor(99)
	if b.Cursor() != 5 {
		t.Errorf("SetCursor(99) = %d, want 5", b.Cursor())
	}
	if b.Delete() {
		t.Error("Delete at the end should do nothing")
	}
	if !b.Backspace() || b.Text() != "hell" {
		t.Errorf("Backspace: %q", b.Text())
	}

	b.SetCursor(-4)
	if b.Cursor() != 0 || b.Backspace() {
		t.Errorf("Backspace at 0 changed the buffer, cursor %d", b.Cursor())
	}
	if !b.Delete() || b.Text() != "ell" {
		t.Errorf("Delete: %q", b.Text())
	}

	b.Revert()
	if b.Text() != "helo" || b.Dirty() {
		t.Errorf("Revert: %q dirty=%v", b.Text(), b.Dirty())
	}

	b.Insert("日本")
	b.MarkCommitted()
	if b.Dirty() || b.Committed() != "日本helo" || b.Len() != 6 {
		t.Errorf("MarkCommitted: %q len %d", b.Committed(), b.Len())
	}
}

func TestTextBufferNewClampsCursor(t *testing.T) {
	if got := NewTextBuffer("abc", 10).Cursor(); got != 3 {
		t.Errorf("cursor = %d, want 3", got)
	}
	if got := NewTextBuffer("abc", -1).Cursor(); got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
}

func TestTextBufferVerticalMovement(t *testing.T) {
	text := "hello world\nab"
	w := func(b *TextBuffer) caret.Wrapped { return caret.Wrap(b.Runes(), 5, 4) }

	tests := []struct {
		name  string
		start int
		move  func(b *TextBuffer)
		want  int
	}{
		{"down keeps column", 2, func(b *TextBuffer) { b.Down(w(b)) }, 8},
		{"down onto short row", 9, func(b *TextBuffer) { b.Down(w(b)) }, 14},
		{"down past last row", 13, func(b *TextBuffer) { b.Down(w(b)) }, 14},
		{"up keeps column", 8, func(b *TextBuffer) { b.Up(w(b)) }, 2},
		{"up past first row", 3, func(b *TextBuffer) { b.Up(w(b)) }, 0},
		{"home", 9, func(b *TextBuffer) { b.Home(w(b)) }, 6},
		{"end of soft row", 1, func(b *TextBuffer) { b.End(w(b)) }, 5},
		{"end of hard row", 7, func(b *TextBuffer) { b.End(w(b)) }, 11},
		{"left and right", 3, func(b *TextBuffer) { b.Left(); b.Left(); b.Right() }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewTextBuffer(text, tt.start)
			tt.move(b)
			if b.Cursor() != tt.want {
				t.Errorf("cursor = %d, want %d", b.Cursor(), tt.want)
			}
		})
	}
}
