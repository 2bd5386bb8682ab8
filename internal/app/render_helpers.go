package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/stickyboard/internal/config"
)

func getBorder() lipgloss.Border {
	return config.GetBorderForStyle()
}

// clipContent cuts a rendered block placed at (x, y) to the viewport and
// returns the visible part with its new origin.
func clipContent(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	width := 0
	if len(lines) > 0 {
		width = ansi.StringWidth(lines[0])
	}

	if x+width <= 0 || x >= viewportWidth || y+len(lines) <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	finalX, finalY := max(x, 0), max(y, 0)
	lines = lines[finalY-y:]
	if visible := viewportHeight - finalY; visible < len(lines) {
		lines = lines[:visible]
	}

	left := finalX - x
	right := min(width, viewportWidth-x)
	if left == 0 && right == width {
		return strings.Join(lines, "\n"), finalX, finalY
	}
	for i, line := range lines {
		lines[i] = ansi.Cut(line, left, right)
	}
	return strings.Join(lines, "\n"), finalX, finalY
}

// truncate shortens s to width cells with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
