package note

import (
	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/geom"
	"github.com/Gaurav-Gosain/stickyboard/internal/gesture"
	"github.com/Gaurav-Gosain/stickyboard/internal/theme"
)

// Editing reports whether the note is in edit mode.
func (n *Note) Editing() bool { return n.buffer != nil }

// Focused reports whether the edit caret has been placed.
func (n *Note) Focused() bool { return n.buffer != nil && n.focused }

// Buffer returns the edit buffer, or nil outside edit mode.
func (n *Note) Buffer() *TextBuffer { return n.buffer }

// Dirty reports whether there is unsaved text.
func (n *Note) Dirty() bool { return n.buffer != nil && n.buffer.Dirty() }

// PressText handles a primary press on the text region. It returns the
// caret offset for the click and whether edit mode should be entered.
// Presses are ignored while a gesture runs or its trailing click is being
// suppressed.
func (n *Note) PressText(x, y int) (int, bool) {
	if !n.Editable || n.gestures.Busy() {
		return 0, false
	}
	offset := n.CaretAt(x, y)
	if n.buffer != nil {
		n.buffer.SetCursor(offset)
		return offset, false
	}
	return offset, true
}

// BeginEdit enters edit mode with the caret preset at offset. The caret
// is shown and keys are accepted once FocusCaret runs.
func (n *Note) BeginEdit(offset int) {
	if !n.Editable || n.buffer != nil {
		return
	}
	n.buffer = NewTextBuffer(n.Text, offset)
	n.focused = false
	n.State.Editing = true
}

// FocusCaret focuses the edit buffer and collapses the selection to
// offset.
func (n *Note) FocusCaret(offset int) {
	if n.buffer == nil {
		return
	}
	n.buffer.SetCursor(offset)
	n.focused = true
}

// Save commits the buffer and stays in edit mode. It reports whether the
// committed text changed.
func (n *Note) Save() bool {
	if n.buffer == nil || !n.buffer.Dirty() {
		return false
	}
	n.buffer.MarkCommitted()
	n.Text = n.buffer.Text()
	if n.Callbacks.OnCommit != nil {
		n.Callbacks.OnCommit(n.Text)
	}
	return true
}

// Discard throws away unsaved text and leaves edit mode.
func (n *Note) Discard() {
	if n.buffer != nil && n.buffer.Dirty() {
		n.buffer.Revert()
		n.textChanged()
	}
	n.leaveEdit()
}

// Leave exits edit mode on blur or Esc, saving or discarding according
// to the variant's commit policy. It reports whether text was committed.
func (n *Note) Leave() bool {
	if n.buffer == nil {
		return false
	}
	if n.spec.Commit == SaveOnBlur {
		saved := n.Save()
		n.leaveEdit()
		return saved
	}
	n.Discard()
	return false
}

func (n *Note) leaveEdit() {
	n.buffer = nil
	n.focused = false
	n.State.Editing = false
}

// InsertText types s at the caret.
func (n *Note) InsertText(s string) bool {
	if !n.Focused() || !n.buffer.Insert(s) {
		return false
	}
	n.textChanged()
	return true
}

// EditAction applies a named edit action. save and cancel are handled
// by the caller.
func (n *Note) EditAction(action string) bool {
	if !n.Focused() {
		return false
	}
	b := n.buffer
	switch action {
	case "newline":
		return n.InsertText("\n")
	case "backspace":
		if b.Backspace() {
			n.textChanged()
		}
	case "delete":
		if b.Delete() {
			n.textChanged()
		}
	case "left":
		b.Left()
	case "right":
		b.Right()
	case "up":
		b.Up(n.Layout())
	case "down":
		b.Down(n.Layout())
	case "home":
		b.Home(n.Layout())
	case "end":
		b.End(n.Layout())
	default:
		return false
	}
	return true
}

func (n *Note) textChanged() {
	if n.Callbacks.OnTextChange != nil {
		n.Callbacks.OnTextChange(n.buffer.Text())
	}
}

// CyclePalette moves to the next palette of the variant.
func (n *Note) CyclePalette() {
	n.State.Palette = theme.NextPalette(n.Variant.String(), n.State.Palette).ID
	n.notifyTheme()
}

// ToggleDark flips between the palette's light and dark rendition.
func (n *Note) ToggleDark() {
	n.State.Dark = !n.State.Dark
	if n.Callbacks.OnBackgroundChange != nil {
		n.Callbacks.OnBackgroundChange(n.State.Dark)
	}
}

func (n *Note) notifyTheme() {
	if n.Callbacks.OnThemeChange != nil {
		n.Callbacks.OnThemeChange(n.State.Palette)
	}
}

// Delete tears the note down and reports it to the owner.
func (n *Note) Delete() {
	n.gestures.Cancel()
	n.leaveEdit()
	if n.Callbacks.OnDelete != nil {
		n.Callbacks.OnDelete()
	}
}

// Gesture returns the state of the note's gesture controller.
func (n *Note) Gesture() gesture.State { return n.gestures.State() }

// StartDrag begins moving the note from the pointer at (x, y).
func (n *Note) StartDrag(x, y int) bool {
	return n.gestures.BeginDrag(float64(x), float64(y), n.State.Position)
}

// StartResize begins resizing from handle d.
func (n *Note) StartResize(x, y int, d gesture.Direction) bool {
	if !n.spec.HasHandle(d) {
		return false
	}
	return n.gestures.BeginResize(float64(x), float64(y), d, n.State.Position, n.State.Size, n.spec.Constraints())
}

// PointerMove feeds a captured pointer motion to the running gesture and
// reports the new geometry through the callbacks. bounds, if non-empty,
// keeps at least MinVisibleCells of a dragged note on screen.
func (n *Note) PointerMove(x, y int, bounds geom.Size) bool {
	u, ok := n.gestures.Move(float64(x), float64(y))
	if !ok {
		return false
	}

	switch u.Kind {
	case gesture.Dragging:
		p := u.Position
		if bounds.Width > 0 && bounds.Height > 0 {
			v := float64(config.MinVisibleCells)
			p.X = geom.Clamp(p.X, v-n.State.Size.Width, bounds.Width-v)
			p.Y = geom.Clamp(p.Y, 0, bounds.Height-1)
		}
		n.State.Position = p
		if n.Callbacks.OnMove != nil {
			n.Callbacks.OnMove(geom.Round(p.X), geom.Round(p.Y))
		}
	case gesture.Resizing:
		n.State.Position = u.Position
		n.State.Size = u.Size
		if n.Callbacks.OnResize != nil {
			n.Callbacks.OnResize(geom.Round(u.Size.Width), geom.Round(u.Size.Height))
		}
	}
	return true
}

// PointerUp ends the running gesture. It returns the state that ended and
// the guard sequence to expire once the click suppression delay passes.
func (n *Note) PointerUp() (gesture.State, uint64) {
	return n.gestures.End()
}

// ExpireGuard ends click suppression for the gesture numbered seq.
func (n *Note) ExpireGuard(seq uint64) { n.gestures.ExpireGuard(seq) }

// CancelGesture abandons any running gesture.
func (n *Note) CancelGesture() { n.gestures.Cancel() }
