// Package ui holds rendering helpers shared by the board and the CLI.
package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/stickyboard/internal/task"
)

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]*glamour.TermRenderer{}
)

type rendererKey struct {
	width int
	dark  bool
}

// RenderMarkdown renders input for a terminal width cells wide. It
// returns the input unchanged if glamour fails.
func RenderMarkdown(input string, width int, dark bool) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := renderer(width, dark)
	if r == nil {
		return input
	}
	out, err := r.Render(input)
	if err != nil {
		return input
	}
	out = strings.TrimRight(out, "\n")
	out = xansi.Hardwrap(out, width, true)
	return strings.TrimRight(out, "\n")
}

func renderer(width int, dark bool) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	key := rendererKey{width: width, dark: dark}
	if r, ok := renderers[key]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styleConfig(dark)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = r
	return r
}

func styleConfig(dark bool) glamouransi.StyleConfig {
	base := styles.LightStyleConfig
	if dark {
		base = styles.DarkStyleConfig
	}
	base.Document.StylePrimitive.BlockPrefix = ""
	base.Document.StylePrimitive.BlockSuffix = ""
	zero := uint(0)
	base.Document.Margin = &zero
	return base
}

// EscapeMarkdown keeps note text from being read as markdown structure.
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.ReplaceAll(line, "`", "\\`")
		trimmed := strings.TrimLeft(line, " \t")
		prefix := line[:len(line)-len(trimmed)]
		switch {
		case strings.HasPrefix(trimmed, "#"),
			strings.HasPrefix(trimmed, ">"),
			strings.HasPrefix(trimmed, "- "),
			strings.HasPrefix(trimmed, "* "),
			strings.HasPrefix(trimmed, "+ "),
			isNumberedList(trimmed):
			lines[i] = prefix + "\\" + trimmed
		default:
			lines[i] = line
		}
	}
	return strings.Join(lines, "\n")
}

func isNumberedList(text string) bool {
	dot := strings.IndexByte(text, '.')
	if dot <= 0 || dot+1 >= len(text) || text[dot+1] != ' ' {
		return false
	}
	for i := range dot {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}

// TaskMarkdown formats a task, its notes and its comments as markdown.
func TaskMarkdown(t *task.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	fmt.Fprintf(&b, "**Status:** %s · **Priority:** %s", t.Status, t.Priority)
	if !t.DueDate.IsZero() {
		fmt.Fprintf(&b, " · **Due:** %s", t.DueDate.Format("2006-01-02"))
	}
	b.WriteString("\n\n")
	if d := strings.TrimSpace(t.Description); d != "" {
		b.WriteString(d)
		b.WriteString("\n\n")
	}

	if len(t.StickyNotes) > 0 {
		b.WriteString("## Sticky notes\n\n")
		for _, n := range t.StickyNotes {
			text := strings.TrimSpace(n.Text)
			if text == "" {
				text = "_empty_"
			} else {
				text = EscapeMarkdown(text)
			}
			fmt.Fprintf(&b, "- *%s* %s\n", n.Variant, strings.ReplaceAll(text, "\n", " "))
		}
		b.WriteString("\n")
	}

	if len(t.Comments) > 0 {
		b.WriteString("## Comments\n\n")
		for _, c := range t.Comments {
			author := c.Author
			if author == "" {
				author = "anonymous"
			}
			fmt.Fprintf(&b, "> **%s** %s\n>\n> %s\n\n", author, c.CreatedAt.Format("2006-01-02 15:04"), EscapeMarkdown(c.Body))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
