package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/stickyboard/internal/app"
	"github.com/Gaurav-Gosain/stickyboard/internal/gesture"
	"github.com/Gaurav-Gosain/stickyboard/internal/note"
)

func overlayOpen(b *app.Board) bool {
	return b.ShowHelp || b.ShowLogs || b.ShowTask
}

func handleMouseClick(msg tea.MouseClickMsg, b *app.Board) (*app.Board, tea.Cmd) {
	mouse := msg.Mouse()
	x, y := mouse.X, mouse.Y

	if overlayOpen(b) {
		return b, nil
	}
	if y >= int(b.Area().Height) {
		// Status bar.
		return b, nil
	}

	i := b.NoteAt(x, y)
	if i < 0 {
		b.Blur()
		return b, nil
	}

	b.FocusNote(i)
	n := b.Notes[i]

	switch mouse.Button {
	case tea.MouseLeft:
		return pressPrimary(n, x, y, b)
	case tea.MouseRight:
		if d := n.CornerFor(x, y); d != 0 {
			b.LeaveEdit()
			n.StartResize(x, y, d)
		}
	}
	return b, nil
}

func pressPrimary(n *note.Note, x, y int, b *app.Board) (*app.Board, tea.Cmd) {
	region, dir := n.HitTest(x, y)
	switch region {
	case note.RegionDrag:
		n.StartDrag(x, y)
	case note.RegionResize:
		n.StartResize(x, y, dir)
	case note.RegionText:
		offset, enter := n.PressText(x, y)
		if enter {
			n.BeginEdit(offset)
			return b, app.FocusCaretCmd(n.ID, offset)
		}
	}
	return b, nil
}

func handleMouseMotion(msg tea.MouseMotionMsg, b *app.Board) (*app.Board, tea.Cmd) {
	owner, ok := b.Hub.Owner()
	if !ok {
		return b, nil
	}
	_, n := b.NoteByID(owner)
	if n == nil {
		b.Hub.ReleaseAll()
		return b, nil
	}
	mouse := msg.Mouse()
	n.PointerMove(mouse.X, mouse.Y, b.Area())
	return b, nil
}

func handleMouseRelease(_ tea.MouseReleaseMsg, b *app.Board) (*app.Board, tea.Cmd) {
	owner, ok := b.Hub.Owner()
	if !ok {
		return b, nil
	}
	_, n := b.NoteByID(owner)
	if n == nil {
		b.Hub.ReleaseAll()
		return b, nil
	}
	state, seq := n.PointerUp()
	if state == gesture.Idle {
		return b, nil
	}
	b.RequestPersist()
	return b, app.DragGuardCmd(n.ID, seq)
}

func handleMouseWheel(msg tea.MouseWheelMsg, b *app.Board) (*app.Board, tea.Cmd) {
	delta := 0
	switch msg.Mouse().Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
		delta = 1
	}
	switch {
	case b.ShowLogs:
		b.LogScrollOffset = max(b.LogScrollOffset+delta, 0)
	case b.ShowTask:
		b.TaskScrollOffset = max(b.TaskScrollOffset+delta, 0)
	}
	return b, nil
}
