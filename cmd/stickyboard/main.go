// Package main implements stickyboard, a board of sticky notes attached
// to a task, in the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/stickyboard/internal/theme"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	themeName     string
	listThemes    bool
	previewTheme  string
	borderStyle   string
	variant       string
	caretStrategy string
	darkNotes     bool
	hideClock     bool
	noSysInfo     bool
	taskID        string
	storage       string
	dbPath        string
	logLevel      string
	debugLog      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stickyboard",
		Short: "Sticky notes for your tasks, in the terminal",
		Long: `stickyboard - sticky notes for your tasks

Opens a board of sticky notes attached to a task. Notes can be dragged by
their top border, resized from their edges and edited in place; every
change is written back to the task.`,
		Example: `  # Open the board of the active task
  stickyboard

  # Open the board of a given task
  stickyboard --task 3f2c9a1e-...

  # Start with matrix notes and a theme
  stickyboard --variant matrix --theme dracula

  # Pick a theme with fzf
  stickyboard --theme $(stickyboard --list-themes | fzf --preview 'stickyboard --preview-theme {}')

  # Serve boards over SSH
  stickyboard ssh --port 2222

  # Create a task and open it
  stickyboard --task $(stickyboard task new "Write the report" -q)`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if previewTheme != "" {
				return previewThemeColors(previewTheme)
			}
			if listThemes {
				for _, t := range theme.Available() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&themeName, "theme", "", "Board theme (e.g. dracula, nord, tokyonight). Leave empty for terminal colors")
	flags.BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	flags.StringVar(&previewTheme, "preview-theme", "", "Preview a theme's colors and the note palettes")
	flags.StringVar(&borderStyle, "border-style", "", "Note border style: rounded, normal, thick, double, block, ascii (default: from config or rounded)")
	flags.StringVar(&variant, "variant", "", "Type of new notes: plain, kerala, matrix, polaroid (default: from config or plain)")
	flags.StringVar(&caretStrategy, "caret-strategy", "", "Click to caret mapping: auto or scan (default: from config or auto)")
	flags.BoolVar(&darkNotes, "dark-notes", false, "Draw new notes with dark paper")
	flags.BoolVar(&hideClock, "hide-clock", false, "Hide the clock in the status bar")
	flags.BoolVar(&noSysInfo, "no-sysinfo", false, "Hide CPU and memory usage in the status bar")
	flags.StringVar(&taskID, "task", "", "Task whose notes to open (default: the active task)")
	flags.StringVar(&storage, "storage", "", "Task storage: bolt or memory (default: from config or bolt)")
	flags.StringVar(&dbPath, "db", "", "Path of the bolt database (default: from config or the XDG data dir)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&debugLog, "debug-log", "", "Also write the board's log to this file")

	_ = rootCmd.RegisterFlagCompletionFunc("variant", fixedCompletions("plain", "kerala", "matrix", "polaroid"))
	_ = rootCmd.RegisterFlagCompletionFunc("storage", fixedCompletions("bolt", "memory"))
	_ = rootCmd.RegisterFlagCompletionFunc("caret-strategy", fixedCompletions("auto", "scan"))
	_ = rootCmd.RegisterFlagCompletionFunc("theme", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return theme.Available(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newSSHCmd(), newWebCmd(), newConfigCmd(), newKeybindsCmd(), newTaskCmd())

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
