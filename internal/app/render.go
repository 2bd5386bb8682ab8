package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/stickyboard/internal/theme"
)

// GetCanvas composes the notes, the status bar and the overlays.
func (b *Board) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(max(b.Width, 1), max(b.Height, 1))

	area := b.Area()
	viewportWidth, viewportHeight := int(area.Width), int(area.Height)

	bg := lipgloss.NewStyle().
		Background(theme.BoardBg()).
		Width(max(b.Width, 1)).
		Height(max(viewportHeight, 1)).
		Render("")
	layers := []*lipgloss.Layer{lipgloss.NewLayer(bg).X(0).Y(0).Z(0).ID("board")}

	for i, n := range b.Notes {
		r := n.Rect()
		if r.Max.X <= 0 || r.Min.X >= viewportWidth || r.Max.Y <= 0 || r.Min.Y >= viewportHeight {
			continue
		}
		content, x, y := clipContent(n.View(i == b.Focused), r.Min.X, r.Min.Y, viewportWidth, viewportHeight)
		if content == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(content).X(x).Y(y).Z(n.Z).ID(n.ID))
	}

	layers = append(layers, b.renderStatusBar())
	layers = append(layers, b.renderOverlays()...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View implements tea.Model.
func (b *Board) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(b.GetCanvas().Render()))
	view.AltScreen = true
	// Motion is needed for drags; FilterMouseMotion drops it otherwise.
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}
