package note

import (
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/geom"
	"github.com/Gaurav-Gosain/stickyboard/internal/gesture"
	"github.com/charmbracelet/x/ansi"
)

// newTestNote puts a note with its top-left corner at (10, 5). Plain notes
// are 28x10, so the interior spans x 11..36 and y 6..13.
func newTestNote(v Variant) *Note {
	return New("n1", v, 10, 5, &gesture.Hub{})
}

func TestHitTest(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		x, y    int
		want    Region
		wantDir gesture.Direction
	}{
		{"outside", Plain, 9, 5, RegionNone, 0},
		{"title bar", Plain, 20, 5, RegionDrag, 0},
		{"top left corner without handle", Plain, 10, 5, RegionDrag, 0},
		{"body", Plain, 15, 8, RegionText, 0},
		{"east edge", Plain, 37, 8, RegionResize, gesture.East},
		{"south edge", Plain, 20, 14, RegionResize, gesture.South},
		{"south east corner", Plain, 37, 14, RegionResize, gesture.SouthEast},
		{"west edge without handle", Plain, 10, 8, RegionBorder, 0},
		{"matrix west edge", Matrix, 10, 8, RegionResize, gesture.West},
		{"matrix top left corner", Matrix, 10, 5, RegionResize, gesture.NorthWest},
		{"matrix title bar", Matrix, 20, 5, RegionDrag, 0},
		{"polaroid photo", Polaroid, 15, 8, RegionDrag, 0},
		{"polaroid caption", Polaroid, 15, 20, RegionText, 0},
		{"polaroid east edge", Polaroid, 33, 10, RegionBorder, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNote(tt.variant)
			got, dir := n.HitTest(tt.x, tt.y)
			if got != tt.want || dir != tt.wantDir {
				t.Errorf("HitTest(%d, %d) = %v, %v; want %v, %v", tt.x, tt.y, got, dir, tt.want, tt.wantDir)
			}
		})
	}
}

func TestCaretAt(t *testing.T) {
	n := newTestNote(Plain)
	n.Text = "hello"

	// Text starts one cell in from the left border because of padding.
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"first cell", 12, 6, 0},
		{"third cell", 14, 6, 2},
		{"just past the end", 17, 6, 5},
		{"far below and right", 35, 13, 5},
		{"on the padding", 11, 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.CaretAt(tt.x, tt.y); got != tt.want {
				t.Errorf("CaretAt(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestEditLifecycleSaveOnBlur(t *testing.T) {
	n := newTestNote(Plain)
	n.Text = "helo"

	var changes, commits []string
	n.Callbacks.OnTextChange = func(s string) { changes = append(changes, s) }
	n.Callbacks.OnCommit = func(s string) { commits = append(commits, s) }

	offset, enter := n.PressText(15, 6)
	if !enter || offset != 3 {
		t.Fatalf("PressText = %d, %v; want 3, true", offset, enter)
	}
	n.BeginEdit(offset)
	if n.InsertText("x") {
		t.Error("InsertText accepted input before the caret was focused")
	}

	n.FocusCaret(offset)
	if !n.InsertText("l") {
		t.Fatal("InsertText rejected input after focus")
	}
	if got := n.DisplayText(); got != "hello" {
		t.Errorf("DisplayText() = %q, want hello", got)
	}
	if n.Text != "helo" {
		t.Errorf("committed text changed before leaving edit mode: %q", n.Text)
	}

	// A second press while editing only moves the caret.
	if off, enter := n.PressText(12, 6); enter || off != 0 || n.Buffer().Cursor() != 0 {
		t.Errorf("PressText while editing = %d, %v; cursor %d", off, enter, n.Buffer().Cursor())
	}

	if !n.Leave() {
		t.Error("Leave() on a save-on-blur note did not commit")
	}
	if n.Text != "hello" || n.Editing() || n.State.Editing {
		t.Errorf("after Leave: text %q editing %v", n.Text, n.Editing())
	}
	if len(changes) != 1 || len(commits) != 1 || commits[0] != "hello" {
		t.Errorf("changes %q commits %q", changes, commits)
	}
}

func TestEditLifecycleExplicitSave(t *testing.T) {
	n := newTestNote(Matrix)
	n.Text = "neo"
	n.BeginEdit(3)
	n.FocusCaret(3)
	n.InsertText("!")

	if n.Leave() {
		t.Error("Leave() on an explicit-save note committed")
	}
	if n.Text != "neo" {
		t.Errorf("text = %q, want the discarded edit to be gone", n.Text)
	}

	n.BeginEdit(0)
	n.FocusCaret(0)
	n.EditAction("delete")
	if !n.Save() || n.Text != "eo" || !n.Editing() {
		t.Errorf("Save(): text %q editing %v", n.Text, n.Editing())
	}
	if n.Save() {
		t.Error("Save() with nothing new reported a change")
	}
}

func TestPressIgnoredAfterDrag(t *testing.T) {
	n := newTestNote(Plain)
	n.Text = "abc"

	if !n.StartDrag(20, 5) {
		t.Fatal("StartDrag failed")
	}
	_, seq := n.PointerUp()

	if _, enter := n.PressText(12, 6); enter {
		t.Error("press right after a drag entered edit mode")
	}
	n.ExpireGuard(seq)
	if _, enter := n.PressText(12, 6); !enter {
		t.Error("press after the guard expired was ignored")
	}
}

func TestDragMovesNote(t *testing.T) {
	n := newTestNote(Plain)
	var moved [][2]int
	n.Callbacks.OnMove = func(x, y int) { moved = append(moved, [2]int{x, y}) }

	n.StartDrag(12, 5)
	if !n.PointerMove(20, 9, geom.Size{}) {
		t.Fatal("PointerMove during drag returned false")
	}
	if n.State.Position != geom.Pt(18, 9) {
		t.Errorf("position = %+v, want (18, 9)", n.State.Position)
	}

	n.PointerMove(-100, 500, geom.Size{Width: 80, Height: 24})
	want := geom.Pt(4-28, 23)
	if n.State.Position != want {
		t.Errorf("clamped position = %+v, want %+v", n.State.Position, want)
	}
	if len(moved) != 2 || moved[0] != [2]int{18, 9} {
		t.Errorf("OnMove calls = %v", moved)
	}

	n.PointerUp()
	if n.PointerMove(0, 0, geom.Size{}) {
		t.Error("PointerMove after release moved the note")
	}
}

func TestResizeClampsAndExcludesDrag(t *testing.T) {
	n := newTestNote(Plain)
	var sizes [][2]int
	n.Callbacks.OnResize = func(w, h int) { sizes = append(sizes, [2]int{w, h}) }

	if n.StartResize(10, 8, gesture.West) {
		t.Error("plain note resized from a west handle it does not have")
	}
	if !n.StartResize(37, 14, gesture.SouthEast) {
		t.Fatal("StartResize(SE) failed")
	}
	if n.StartDrag(20, 5) {
		t.Error("StartDrag succeeded during a resize")
	}

	n.PointerMove(47, 19, geom.Size{})
	if n.State.Size != (geom.Size{Width: 38, Height: 15}) {
		t.Errorf("size = %+v, want 38x15", n.State.Size)
	}
	n.PointerMove(-500, -500, geom.Size{})
	if n.State.Size != (geom.Size{Width: 12, Height: 5}) {
		t.Errorf("size = %+v, want the 12x5 minimum", n.State.Size)
	}
	if len(sizes) != 2 || sizes[0] != [2]int{38, 15} {
		t.Errorf("OnResize calls = %v", sizes)
	}
	if ended, _ := n.PointerUp(); ended != gesture.Resizing {
		t.Errorf("PointerUp() = %v, want resizing", ended)
	}
}

func TestPolaroidKeepsAspect(t *testing.T) {
	n := newTestNote(Polaroid)
	r := n.Rect()
	n.StartResize(r.Max.X-1, r.Max.Y-1, gesture.SouthEast)
	n.PointerMove(r.Max.X-1+8, r.Max.Y-1, geom.Size{})

	if n.State.Size != (geom.Size{Width: 32, Height: 24}) {
		t.Errorf("size = %+v, want 32x24", n.State.Size)
	}
}

func TestWestResizeKeepsEastEdge(t *testing.T) {
	n := newTestNote(Matrix)
	n.StartResize(10, 8, gesture.West)
	n.PointerMove(16, 8, geom.Size{})

	if n.State.Size.Width != 22 || n.State.Position.X != 16 {
		t.Errorf("size %+v position %+v, want width 22 at x 16", n.State.Size, n.State.Position)
	}
	if n.Rect().Max.X != 38 {
		t.Errorf("east edge moved to %d, want 38", n.Rect().Max.X)
	}
}

func TestPaletteAndBackgroundCallbacks(t *testing.T) {
	n := newTestNote(Kerala)
	first := n.State.Palette

	var themes []string
	var darks []bool
	deleted := false
	n.Callbacks.OnThemeChange = func(p string) { themes = append(themes, p) }
	n.Callbacks.OnBackgroundChange = func(d bool) { darks = append(darks, d) }
	n.Callbacks.OnDelete = func() { deleted = true }

	n.CyclePalette()
	n.ToggleDark()
	n.Delete()

	if len(themes) != 1 || themes[0] == first {
		t.Errorf("OnThemeChange calls = %v, want one new palette", themes)
	}
	if len(darks) != 1 || !darks[0] {
		t.Errorf("OnBackgroundChange calls = %v", darks)
	}
	if !deleted {
		t.Error("OnDelete not called")
	}
}

func TestViewFillsRect(t *testing.T) {
	for _, v := range []Variant{Plain, Kerala, Matrix, Polaroid} {
		t.Run(v.String(), func(t *testing.T) {
			n := newTestNote(v)
			n.Text = "a sticky note with enough words to wrap across rows\nand 日本語"
			n.BeginEdit(5)
			n.FocusCaret(5)

			rows := strings.Split(n.View(true), "\n")
			r := n.Rect()
			if len(rows) != r.Dy() {
				t.Fatalf("got %d rows, want %d", len(rows), r.Dy())
			}
			for i, row := range rows {
				if w := ansi.StringWidth(row); w != r.Dx() {
					t.Errorf("row %d is %d cells wide, want %d", i, w, r.Dx())
				}
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range []Variant{Plain, Kerala, Matrix, Polaroid} {
		got, err := ParseVariant(v.String())
		if err != nil || got != v {
			t.Errorf("ParseVariant(%q) = %v, %v", v.String(), got, err)
		}
	}
	if _, err := ParseVariant("corkboard"); err == nil {
		t.Error("ParseVariant accepted an unknown name")
	}
	if Polaroid.Next() != Plain {
		t.Error("Polaroid.Next() should wrap to Plain")
	}
}

func TestPolaroidResizeRefusedWhenRatioFitsNoSize(t *testing.T) {
	minW, maxW, minH, maxH := config.NoteMinWidth, config.NoteMaxWidth, config.NoteMinHeight, config.NoteMaxHeight
	t.Cleanup(func() {
		config.NoteMinWidth, config.NoteMaxWidth, config.NoteMinHeight, config.NoteMaxHeight = minW, maxW, minH, maxH
	})
	config.NoteMinWidth, config.NoteMaxWidth = 40, 80
	config.NoteMinHeight, config.NoteMaxHeight = 5, 20

	n := newTestNote(Polaroid)
	before := n.State.Size
	if n.StartResize(33, 22, gesture.SouthEast) {
		t.Fatal("StartResize() = true, want false")
	}
	if n.PointerMove(60, 40, geom.Size{}) {
		t.Error("PointerMove() changed a note with no gesture running")
	}
	if n.State.Size != before {
		t.Errorf("size = %+v, want it untouched at %+v", n.State.Size, before)
	}
}

func TestDiscardReportsRevertedText(t *testing.T) {
	n := newTestNote(Matrix)
	n.Text = "neo"
	var reported []string
	n.Callbacks.OnTextChange = func(text string) { reported = append(reported, text) }

	n.BeginEdit(3)
	n.FocusCaret(3)
	n.InsertText("!")
	if got := n.Layout().Rows(); len(got) != 1 || got[0] != "neo!" {
		t.Errorf("Layout() while editing = %q, want [neo!]", got)
	}

	n.Discard()
	if want := []string{"neo!", "neo"}; strings.Join(reported, ",") != strings.Join(want, ",") {
		t.Errorf("OnTextChange calls = %q, want %q", reported, want)
	}
	if n.Editing() || n.Text != "neo" {
		t.Errorf("after Discard: editing %v, text %q", n.Editing(), n.Text)
	}
}
