package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/stickyboard/internal/app"
	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/note"
)

// HandleKeyPress routes a key to the open overlay, the note being edited
// or the board.
func HandleKeyPress(msg tea.KeyPressMsg, b *app.Board) (*app.Board, tea.Cmd) {
	k := msg.String()

	if overlayOpen(b) {
		return handleOverlayKey(k, b)
	}
	if n := b.EditingNote(); n != nil {
		return handleEditKey(msg, n, b)
	}
	return handleBoardKey(k, b)
}

func handleOverlayKey(k string, b *app.Board) (*app.Board, tea.Cmd) {
	switch k {
	case "esc", "q", "?":
		b.ShowHelp, b.ShowLogs, b.ShowTask = false, false, false
	case "j", "down":
		scroll(b, 1)
	case "k", "up":
		scroll(b, -1)
	case "g", "home":
		b.LogScrollOffset, b.TaskScrollOffset = 0, 0
	case "G", "end":
		// Clamped when the overlay renders.
		b.LogScrollOffset, b.TaskScrollOffset = len(b.LogMessages), 1<<16
	case "ctrl+c":
		b.Cleanup()
		return b, tea.Quit
	}
	return b, nil
}

func scroll(b *app.Board, delta int) {
	switch {
	case b.ShowLogs:
		b.LogScrollOffset = max(b.LogScrollOffset+delta, 0)
	case b.ShowTask:
		b.TaskScrollOffset = max(b.TaskScrollOffset+delta, 0)
	}
}

func handleEditKey(msg tea.KeyPressMsg, n *note.Note, b *app.Board) (*app.Board, tea.Cmd) {
	action, ok := b.KeyMap.EditAction(msg.String())
	if ok {
		switch action {
		case "save":
			if n.Save() {
				b.ShowNotification("Note saved", "success", config.NotificationDuration)
			}
		case "cancel":
			b.LeaveEdit()
		default:
			n.EditAction(action)
		}
		return b, nil
	}

	if msg.Text != "" && msg.Mod&^tea.ModShift == 0 {
		n.InsertText(msg.Text)
	}
	return b, nil
}

func handleBoardKey(k string, b *app.Board) (*app.Board, tea.Cmd) {
	action, ok := b.KeyMap.BoardAction(k)
	if !ok {
		if k == "esc" {
			b.Blur()
		}
		return b, nil
	}

	n := b.FocusedNote()
	switch action {
	case "new_note":
		v, err := note.ParseVariant(config.DefaultVariant)
		if err != nil {
			b.LogWarn("%v", err)
		}
		b.AddNote(v)
	case "next_note":
		b.CycleFocus(1)
	case "prev_note":
		b.CycleFocus(-1)
	case "toggle_help":
		b.ShowHelp = true
	case "toggle_logs":
		b.ShowLogs = true
	case "toggle_task":
		b.TaskScrollOffset = 0
		b.ShowTask = true
	case "quit":
		b.Cleanup()
		return b, tea.Quit
	}

	if n == nil {
		return b, nil
	}
	switch action {
	case "edit_note":
		if !n.Editable {
			return b, nil
		}
		offset := len([]rune(n.Text))
		n.BeginEdit(offset)
		return b, app.FocusCaretCmd(n.ID, offset)
	case "cycle_variant":
		n.SetVariant(n.Variant.Next())
		b.LogInfo("note is now %s", n.Variant)
	case "cycle_palette":
		n.CyclePalette()
	case "toggle_dark":
		n.ToggleDark()
	case "copy_note":
		return b, b.CopyCmd(n.Text)
	case "delete_note":
		b.DeleteFocused()
	}
	return b, nil
}
