package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/theme"
	"github.com/Gaurav-Gosain/stickyboard/internal/ui"
)

const (
	iconInfo    = "ℹ"
	iconSuccess = "✓"
	iconWarning = "⚠"
	iconError   = "✗"
)

func (b *Board) renderStatusBar() *lipgloss.Layer {
	base := lipgloss.NewStyle().Background(theme.StatusBarBg()).Foreground(theme.StatusBarFg())
	badge := lipgloss.NewStyle().
		Background(theme.StatusBarAccent()).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Padding(0, 1).
		Render(b.Mode())

	left := badge
	if b.Task != nil {
		left += base.Padding(0, 1).Render(truncate(b.Task.Title, max(b.Width/4, 8)))
	}
	left += base.Padding(0, 1).Render(fmt.Sprintf("%d notes", len(b.Notes)))

	var right []string
	if config.ShowSysInfo && b.HasSysInfo {
		right = append(right, fmt.Sprintf("CPU %3.0f%%  RAM %3.0f%%", b.CPUPercent, b.RAMPercent))
	}
	if !config.HideClock {
		right = append(right, time.Now().Format("15:04:05"))
	}
	rightText := base.Bold(true).Padding(0, 1).Render(strings.Join(right, "  "))

	helpView := b.Help.ShortHelpView(b.KeyMap.ShortHelp())
	if b.EditingNote() != nil {
		helpView = b.Help.ShortHelpView(b.KeyMap.EditHelp())
	}
	room := b.Width - lipgloss.Width(left) - lipgloss.Width(rightText) - 2
	middle := ""
	if room > 10 {
		middle = base.Padding(0, 1).Render(truncate(helpView, room))
	}

	gap := max(b.Width-lipgloss.Width(left)-lipgloss.Width(middle)-lipgloss.Width(rightText), 0)
	bar := left + middle + base.Render(strings.Repeat(" ", gap)) + rightText
	bar = truncate(bar, b.Width)

	return lipgloss.NewLayer(bar).
		X(0).
		Y(max(b.Height-config.StatusBarHeight, 0)).
		Z(config.ZStatusBar).
		ID("status")
}

func (b *Board) overlayBox(content string, width int) string {
	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.OverlayBorder()).
		Padding(1, 2).
		Background(theme.LogViewerBg())
	if width > 0 {
		box = box.Width(min(width, max(b.Width-2, 10)))
	}
	return lipgloss.Place(b.Width, b.Height, lipgloss.Center, lipgloss.Center, box.Render(content))
}

func (b *Board) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	if len(b.Notes) == 0 && !b.ShowHelp && !b.ShowTask && !b.ShowLogs {
		layers = append(layers, b.renderWelcome())
	}

	if b.ShowHelp {
		layers = append(layers, lipgloss.NewLayer(b.overlayBox(b.renderHelp(), 0)).
			X(0).Y(0).Z(config.ZOverlay).ID("help"))
	}

	if b.ShowTask {
		layers = append(layers, lipgloss.NewLayer(b.overlayBox(b.renderTask(), 84)).
			X(0).Y(0).Z(config.ZOverlay).ID("task"))
	}

	if b.ShowLogs {
		layers = append(layers, lipgloss.NewLayer(b.overlayBox(b.renderLogs(), 80)).
			X(0).Y(0).Z(config.ZOverlay).ID("logs"))
	}

	layers = append(layers, b.renderNotifications()...)
	return layers
}

func (b *Board) renderWelcome() *lipgloss.Layer {
	title := lipgloss.NewStyle().
		Foreground(theme.WelcomeTitle()).
		Bold(true).
		Render("stickyboard")

	subtitle := "Sticky notes for your tasks"
	if b.Task != nil {
		subtitle = "Notes for " + b.Task.Title
	}

	newKey := b.KeyMap.Board["new_note"].Help().Key
	helpKey := b.KeyMap.Board["toggle_help"].Help().Key
	instruction := lipgloss.NewStyle().
		Foreground(theme.WelcomeText()).
		Render(fmt.Sprintf("Press '%s' to add a note, '%s' for help", newKey, helpKey))

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", subtitle, "", instruction)
	box := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(1, 2).
		Render(content)

	area := b.Area()
	centered := lipgloss.Place(int(area.Width), int(area.Height), lipgloss.Center, lipgloss.Center, box)
	return lipgloss.NewLayer(centered).X(0).Y(0).Z(config.ZNotes).ID("welcome")
}

func (b *Board) renderHelp() string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.LogViewerTitle()).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	var lines []string
	lines = append(lines, titleStyle.Render("Keybindings"), "")
	for _, section := range config.GetKeybindings(b.KeyMap) {
		lines = append(lines, titleStyle.Render(section.Title))
		width := 0
		for _, kb := range section.Bindings {
			width = max(width, lipgloss.Width(kb.Key))
		}
		for _, kb := range section.Bindings {
			pad := strings.Repeat(" ", width-lipgloss.Width(kb.Key))
			lines = append(lines, "  "+keyStyle.Render(kb.Key)+pad+"  "+descStyle.Render(kb.Description))
		}
		lines = append(lines, "")
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("Press '?' or 'esc' to close"))
	return b.scrollLines(lines, nil)
}

func (b *Board) renderTask() string {
	if b.Task == nil {
		return "No task"
	}
	width := max(min(80, b.Width-8), 20)
	body := ui.RenderMarkdown(ui.TaskMarkdown(b.Task), width, b.DarkBackground)
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("j/k to scroll, 'esc' to close")
	return b.scrollLines(lines, &b.TaskScrollOffset) + "\n\n" + footer
}

// scrollLines returns the window of lines that fits the overlay. A nil
// offset shows the head.
func (b *Board) scrollLines(lines []string, offset *int) string {
	perPage := max(b.Height-8, 4)
	maxScroll := max(len(lines)-perPage, 0)
	start := 0
	if offset != nil {
		*offset = max(0, min(*offset, maxScroll))
		start = *offset
	}
	end := min(start+perPage, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func (b *Board) renderLogs() string {
	var lines []string
	lines = append(lines,
		lipgloss.NewStyle().Foreground(theme.LogViewerTitle()).Bold(true).Render("Logs"),
		"")

	perPage := max(b.Height-12, 4)
	maxScroll := max(len(b.LogMessages)-perPage, 0)
	b.LogScrollOffset = max(0, min(b.LogScrollOffset, maxScroll))

	shown := 0
	for i := b.LogScrollOffset; i < len(b.LogMessages) && shown < perPage; i++ {
		msg := b.LogMessages[i]
		color := theme.LogViewerInfo()
		switch msg.Level {
		case "ERROR":
			color = theme.LogViewerError()
		case "WARN":
			color = theme.LogViewerWarn()
		}
		level := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("[%s]", msg.Level))
		lines = append(lines, fmt.Sprintf("%s %s %s", msg.Time.Format("15:04:05"), level, msg.Message))
		shown++
	}
	if len(b.LogMessages) == 0 {
		lines = append(lines, "No log messages")
	}

	hint := "Press 'esc' to close, j/k to scroll"
	if maxScroll > 0 {
		hint = fmt.Sprintf("Showing %d-%d of %d, j/k to scroll, 'esc' to close",
			b.LogScrollOffset+1, b.LogScrollOffset+shown, len(b.LogMessages))
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(hint))
	return strings.Join(lines, "\n")
}

func (b *Board) renderNotifications() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	maxWidth := max(min(50, b.Width-4), 10)
	y := 1
	for _, notif := range b.Notifications {
		icon := iconInfo
		switch notif.Type {
		case "error":
			icon = iconError
		case "warning":
			icon = iconWarning
		case "success":
			icon = iconSuccess
		}

		box := lipgloss.NewStyle().
			Background(theme.NotificationColor(notif.Type)).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true).
			Render(truncate(fmt.Sprintf("%s %s", icon, notif.Message), maxWidth))

		x := max(b.Width-lipgloss.Width(box)-2, 0)
		layers = append(layers, lipgloss.NewLayer(box).
			X(x).Y(y).Z(config.ZNotification).
			ID("notif-"+notif.ID))
		y += lipgloss.Height(box) + 1
	}
	return layers
}
