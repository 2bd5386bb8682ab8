package config

import (
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/stickyboard/internal/theme"
)

// Overrides contains CLI flag values that can override the config file.
// Zero values mean the flag was not set.
type Overrides struct {
	BorderStyle   string
	ThemeName     string
	Variant       string
	CaretStrategy string
	DarkNotes     bool
	HideClock     bool
	NoSysInfo     bool
}

// ApplyOverrides sets the runtime settings from the config file and the
// CLI flags. A set flag always wins. userConfig may be nil.
func ApplyOverrides(o Overrides, userConfig *UserConfig) {
	if userConfig == nil {
		userConfig = DefaultConfig()
	}
	a, n, c := userConfig.Appearance, userConfig.Notes, userConfig.Caret

	BorderStyle = pick(o.BorderStyle, a.BorderStyle)
	DefaultVariant = pick(o.Variant, n.DefaultVariant)
	CaretStrategy = pick(o.CaretStrategy, c.Strategy)
	if c.Extent != "" {
		CaretExtent = c.Extent
	}
	if n.CommitPolicy != "" {
		CommitPolicy = n.CommitPolicy
	}

	DarkNotes = o.DarkNotes || a.DarkNotes
	HideClock = o.HideClock || a.HideClock
	ShowSysInfo = !o.NoSysInfo && (a.ShowSysInfo == nil || *a.ShowSysInfo)

	if c.TabWidth > 0 {
		TabWidth = c.TabWidth
	}
	if n.MinWidth > 0 && n.MaxWidth >= n.MinWidth {
		NoteMinWidth, NoteMaxWidth = n.MinWidth, n.MaxWidth
	}
	if n.MinHeight > 0 && n.MaxHeight >= n.MinHeight {
		NoteMinHeight, NoteMaxHeight = n.MinHeight, n.MaxHeight
	}

	themeName := pick(o.ThemeName, a.Theme)
	if err := theme.Initialize(themeName); err != nil {
		log.Warn("failed to load theme", "theme", themeName, "err", err)
	}
}

func pick(flag, file string) string {
	if flag != "" {
		return flag
	}
	return file
}
