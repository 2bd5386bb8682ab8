package main

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/theme"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stickyboard configuration",
		Long:  `Manage the stickyboard configuration file`,
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print configuration file path",
			RunE: func(_ *cobra.Command, _ []string) error {
				return printConfigPath()
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Edit configuration in $EDITOR",
			Long: `Open the configuration file in your editor

The editor is taken from $EDITOR or $VISUAL, falling back to vim, vi
and nano.`,
			RunE: func(_ *cobra.Command, _ []string) error {
				return editConfigFile()
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset configuration to defaults",
			Long: `Reset the configuration file to the defaults

This overwrites your existing configuration after confirmation.`,
			RunE: func(_ *cobra.Command, _ []string) error {
				return resetConfigToDefaults()
			},
		},
	)
	return configCmd
}

func newKeybindsCmd() *cobra.Command {
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
	}
	keybindsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	})
	return keybindsCmd
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	for _, e := range []string{"vim", "vi", "nano"} {
		if p, err := exec.LookPath(e); err == nil {
			return p
		}
	}
	return ""
}

func editConfigFile() error {
	// Creates the file with defaults if it is missing.
	if _, err := config.LoadUserConfig(); err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found, set $EDITOR or edit %s by hand", path)
	}

	fields := strings.Fields(editor)
	// #nosec G204 - the editor is chosen by the user
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	if _, err := config.LoadUserConfigFrom(path); err != nil {
		return fmt.Errorf("the edited config is invalid: %w", err)
	}
	fmt.Println("Configuration saved.")
	return nil
}

func resetConfigToDefaults() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	fmt.Printf("This will overwrite %s with the defaults. Continue? [y/N] ", path)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
		fmt.Println("Cancelled.")
		return nil
	}

	if _, err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	fmt.Println("Configuration reset to defaults.")
	return nil
}

func listKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		userConfig = config.DefaultConfig()
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	out := colorprofile.NewWriter(os.Stdout, os.Environ())
	for _, section := range config.GetKeybindings(config.NewKeyMap(userConfig)) {
		_, _ = fmt.Fprintln(out, titleStyle.Render(section.Title))
		width := 0
		for _, kb := range section.Bindings {
			width = max(width, lipgloss.Width(kb.Key))
		}
		for _, kb := range section.Bindings {
			pad := strings.Repeat(" ", width-lipgloss.Width(kb.Key))
			_, _ = fmt.Fprintf(out, "  %s%s  %s\n", keyStyle.Render(kb.Key), pad, kb.Description)
		}
		_, _ = fmt.Fprintln(out)
	}
	return nil
}

// previewThemeColors prints a theme's ANSI colors and every note palette
// drawn on the theme's background.
func previewThemeColors(name string) error {
	if err := theme.Initialize(name); err != nil {
		return err
	}
	t := theme.Current()
	if t == nil {
		return fmt.Errorf("unknown theme %q", name)
	}

	out := colorprofile.NewWriter(os.Stdout, os.Environ())
	swatch := func(c color.Color) string {
		return lipgloss.NewStyle().Background(c).Render("    ")
	}

	_, _ = fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Render(t.DisplayName))
	normal := []color.Color{t.Black, t.Red, t.Green, t.Yellow, t.Blue, t.Purple, t.Cyan, t.White}
	bright := []color.Color{t.BrightBlack, t.BrightRed, t.BrightGreen, t.BrightYellow, t.BrightBlue, t.BrightPurple, t.BrightCyan, t.BrightWhite}
	var row strings.Builder
	for _, c := range normal {
		row.WriteString(swatch(c))
	}
	_, _ = fmt.Fprintln(out, row.String())
	row.Reset()
	for _, c := range bright {
		row.WriteString(swatch(c))
	}
	_, _ = fmt.Fprintln(out, row.String())
	_, _ = fmt.Fprintln(out)

	for _, v := range []string{"plain", "kerala", "matrix", "polaroid"} {
		var line strings.Builder
		line.WriteString(fmt.Sprintf("%-9s", v))
		for _, p := range theme.Palettes(v) {
			for _, dark := range []bool{false, true} {
				s := p.Swatch(dark)
				line.WriteString(lipgloss.NewStyle().
					Background(s.Paper).
					Foreground(s.Ink).
					Padding(0, 1).
					Render(p.ID))
			}
			line.WriteString(" ")
		}
		_, _ = fmt.Fprintln(out, line.String())
	}
	return nil
}
