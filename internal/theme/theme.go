// Package theme provides board colors and the note palettes for stickyboard.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the tint registry with the named board theme and
// loads custom note palettes. An empty name disables theming and the
// board falls back to plain terminal colors.
func Initialize(themeName string) error {
	if dir, err := GetPalettesDir(); err == nil {
		if _, err := LoadCustomPalettes(dir); err != nil {
			log.Warn("error loading custom palettes", "err", err)
		}
	}

	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()
	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled reports whether a board theme is active.
func IsEnabled() bool {
	return enabled
}

// Current returns the active tint, or nil when theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Available lists the registered board theme IDs.
func Available() []string {
	tint.NewDefaultRegistry()
	return tint.TintIDs()
}

// BoardBg is the color behind the notes.
func BoardBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#101018")
	}
	return t.Bg
}

// BoardFg is the default text color for board chrome.
func BoardFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#d0d0d8")
	}
	return t.Fg
}

// BorderFocused outlines the focused note.
func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

// BorderEditing outlines a note whose text is being edited.
func BorderEditing() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AAFFAA")
	}
	return t.BrightGreen
}

// BorderGesture outlines a note that is being moved or resized.
func BorderGesture() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffd75f")
	}
	return t.BrightYellow
}

// CaretColors returns the colors of the edit caret cell.
func CaretColors() (fg, bg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000"), lipgloss.Color("#00ff00")
	}
	return t.Bg, t.Cursor
}

// StatusBarBg is the background of the bottom status bar.
func StatusBarBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

// StatusBarFg is the text color of the status bar.
func StatusBarFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

// StatusBarAccent highlights the mode badge in the status bar.
func StatusBarAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff")
	}
	return t.BrightBlue
}

func WelcomeTitle() color.Color {
	return lipgloss.Color("14")
}

func WelcomeText() color.Color {
	return lipgloss.Color("7")
}

// LogViewerTitle returns the color for log viewer titles.
func LogViewerTitle() color.Color {
	return lipgloss.Color("14")
}

// LogViewerError returns the color for error lines in the log viewer.
func LogViewerError() color.Color {
	return lipgloss.Color("9")
}

// LogViewerWarn returns the color for warning lines in the log viewer.
func LogViewerWarn() color.Color {
	return lipgloss.Color("11")
}

// LogViewerInfo returns the color for info lines in the log viewer.
func LogViewerInfo() color.Color {
	return lipgloss.Color("10")
}

// LogViewerBg returns the background of the log viewer.
func LogViewerBg() color.Color {
	return lipgloss.Color("#1a1a2a")
}

// NotificationColor maps a notification type to its accent.
func NotificationColor(kind string) color.Color {
	t := Current()
	switch kind {
	case "error":
		if t != nil {
			return t.Red
		}
		return lipgloss.Color("#cd0000")
	case "warning":
		if t != nil {
			return t.Yellow
		}
		return lipgloss.Color("#cdcd00")
	case "success":
		if t != nil {
			return t.Green
		}
		return lipgloss.Color("#00cd00")
	default:
		if t != nil {
			return t.Blue
		}
		return lipgloss.Color("#0000ee")
	}
}

// OverlayBorder outlines the help and task overlays.
func OverlayBorder() color.Color {
	return lipgloss.Color("14")
}

// ColorToString converts a color to a #rrggbb string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
