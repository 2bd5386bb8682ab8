// Package input routes keyboard, mouse and paste events to the board.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/stickyboard/internal/app"
)

// HandleInput is the input coordinator registered with app.SetInputHandler.
func HandleInput(msg tea.Msg, b *app.Board) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, b)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, b)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, b)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, b)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, b)
	case tea.PasteMsg:
		if n := b.EditingNote(); n != nil {
			n.InsertText(msg.Content)
		}
		return b, nil
	}
	return b, nil
}

// FilterMouseMotion drops pointer motion unless a note holds the pointer
// capture. It is meant for tea.WithFilter.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	b, ok := model.(*app.Board)
	if !ok {
		return msg
	}
	if b.Hub != nil && b.Hub.Active() {
		return msg
	}
	return nil
}
