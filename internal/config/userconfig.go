package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

const configRelPath = "stickyboard/config.toml"

// UserConfig represents the user's configuration file.
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Notes       NotesConfig       `toml:"notes"`
	Caret       CaretConfig       `toml:"caret"`
	Storage     StorageConfig     `toml:"storage"`
	Server      ServerConfig      `toml:"server"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig holds appearance settings.
type AppearanceConfig struct {
	BorderStyle string `toml:"border_style"` // rounded, normal, thick, double, block, ascii
	Theme       string `toml:"theme"`        // board theme from the tint registry, empty for terminal colors
	DarkNotes   bool   `toml:"dark_notes"`   // draw new notes with the dark palette rendition
	HideClock   bool   `toml:"hide_clock"`
	ShowSysInfo *bool  `toml:"show_sysinfo"` // CPU/RAM in the status bar (default: true)
}

// NotesConfig holds note defaults.
type NotesConfig struct {
	DefaultVariant string `toml:"default_variant"` // plain, kerala, matrix, polaroid
	CommitPolicy   string `toml:"commit_policy"`   // variant, blur, explicit
	MinWidth       int    `toml:"min_width"`
	MaxWidth       int    `toml:"max_width"`
	MinHeight      int    `toml:"min_height"`
	MaxHeight      int    `toml:"max_height"`
}

// CaretConfig selects how clicks are mapped to caret offsets.
type CaretConfig struct {
	Strategy string `toml:"strategy"`  // auto, scan
	Extent   string `toml:"extent"`    // caret, box
	TabWidth int    `toml:"tab_width"` // default: 4
}

// StorageConfig selects the task service.
type StorageConfig struct {
	Backend string `toml:"backend"` // bolt, memory
	Path    string `toml:"path"`    // bolt database path (default: $XDG_DATA_HOME/stickyboard/tasks.db)
	TaskID  string `toml:"task_id"` // task to open when none is given on the command line
}

// ServerConfig holds the ssh and web server defaults.
type ServerConfig struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	WebPort     string `toml:"web_port"`
	HostKeyPath string `toml:"host_key_path"`
}

// KeybindingsConfig maps action names to keys.
type KeybindingsConfig struct {
	Board map[string][]string `toml:"board"`
	Edit  map[string][]string `toml:"edit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *UserConfig {
	showSysInfo := true
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle: "rounded",
			ShowSysInfo: &showSysInfo,
		},
		Notes: NotesConfig{
			DefaultVariant: "plain",
			CommitPolicy:   "variant",
			MinWidth:       12,
			MaxWidth:       80,
			MinHeight:      5,
			MaxHeight:      40,
		},
		Caret: CaretConfig{
			Strategy: "auto",
			Extent:   "caret",
			TabWidth: 4,
		},
		Storage: StorageConfig{
			Backend: "bolt",
		},
		Server: ServerConfig{
			Host:    "localhost",
			Port:    "2222",
			WebPort: "7681",
		},
		Keybindings: KeybindingsConfig{
			Board: map[string][]string{
				"new_note":      {"n"},
				"cycle_variant": {"v"},
				"delete_note":   {"x", "delete"},
				"copy_note":     {"y"},
				"edit_note":     {"enter", "i"},
				"next_note":     {"tab"},
				"prev_note":     {"shift+tab"},
				"cycle_palette": {"p"},
				"toggle_dark":   {"d"},
				"toggle_help":   {"?"},
				"toggle_logs":   {"L"},
				"toggle_task":   {"t"},
				"quit":          {"q", "ctrl+c"},
			},
			Edit: map[string][]string{
				"save":      {"ctrl+s"},
				"cancel":    {"esc"},
				"newline":   {"enter"},
				"left":      {"left"},
				"right":     {"right"},
				"up":        {"up"},
				"down":      {"down"},
				"home":      {"home", "ctrl+a"},
				"end":       {"end", "ctrl+e"},
				"backspace": {"backspace"},
				"delete":    {"delete", "ctrl+d"},
			},
		},
	}
}

// GetConfigPath returns where the config file lives.
func GetConfigPath() (string, error) {
	if p, err := xdg.SearchConfigFile(configRelPath); err == nil {
		return p, nil
	}
	return xdg.ConfigFile(configRelPath)
}

// LoadUserConfig loads the config file, creating a default one if none
// exists.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		path, err := xdg.ConfigFile(configRelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		return WriteDefaultConfig(path)
	}
	return LoadUserConfigFrom(configPath)
}

// LoadUserConfigFrom loads, fills and validates the config file at path.
func LoadUserConfigFrom(path string) (*UserConfig, error) {
	// #nosec G304 - path is the user's own config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	fillMissing(&cfg, DefaultConfig())

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, e := range validation.Errors {
			log.Error("config error", "section", e.Field, "key", e.Key, "msg", e.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	for _, w := range validation.Warnings {
		log.Warn("config warning", "section", w.Field, "key", w.Key, "msg", w.Message)
	}

	return &cfg, nil
}

// WriteDefaultConfig writes a commented default config to path and
// returns it.
func WriteDefaultConfig(path string) (*UserConfig, error) {
	cfg := DefaultConfig()

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# stickyboard configuration\n")
	sb.WriteString("#\n")
	sb.WriteString("# Location: " + path + "\n")
	sb.WriteString("# Keybindings reference: stickyboard keybinds list\n")
	sb.WriteString("#\n")
	sb.WriteString("# [appearance] border_style: rounded, normal, thick, double, block, ascii\n")
	sb.WriteString("# [appearance] theme: board theme name, see stickyboard --list-themes\n")
	sb.WriteString("# [notes] default_variant: plain, kerala, matrix, polaroid\n")
	sb.WriteString("# [notes] commit_policy: variant (per note type), blur (save when leaving\n")
	sb.WriteString("#         edit mode), explicit (ctrl+s saves, esc discards)\n")
	sb.WriteString("# [caret] strategy: auto (grid lookup, then nearest end point) or scan\n")
	sb.WriteString("# [caret] extent: caret (last row width) or box (widest row)\n")
	sb.WriteString("# [storage] backend: bolt or memory\n")
	sb.WriteString("# Custom note palettes: ~/.config/stickyboard/palettes/*.json\n\n")
	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfg, nil
}

func fillMissing(cfg, def *UserConfig) {
	a := &cfg.Appearance
	if a.BorderStyle == "" {
		a.BorderStyle = def.Appearance.BorderStyle
	}
	if a.ShowSysInfo == nil {
		a.ShowSysInfo = def.Appearance.ShowSysInfo
	}

	n := &cfg.Notes
	if n.DefaultVariant == "" {
		n.DefaultVariant = def.Notes.DefaultVariant
	}
	if n.CommitPolicy == "" {
		n.CommitPolicy = def.Notes.CommitPolicy
	}
	if n.MinWidth == 0 {
		n.MinWidth = def.Notes.MinWidth
	}
	if n.MaxWidth == 0 {
		n.MaxWidth = def.Notes.MaxWidth
	}
	if n.MinHeight == 0 {
		n.MinHeight = def.Notes.MinHeight
	}
	if n.MaxHeight == 0 {
		n.MaxHeight = def.Notes.MaxHeight
	}

	c := &cfg.Caret
	if c.Strategy == "" {
		c.Strategy = def.Caret.Strategy
	}
	if c.Extent == "" {
		c.Extent = def.Caret.Extent
	}
	if c.TabWidth == 0 {
		c.TabWidth = def.Caret.TabWidth
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = def.Storage.Backend
	}

	s := &cfg.Server
	if s.Host == "" {
		s.Host = def.Server.Host
	}
	if s.Port == "" {
		s.Port = def.Server.Port
	}
	if s.WebPort == "" {
		s.WebPort = def.Server.WebPort
	}

	cfg.Keybindings.Board = fillMapDefaults(cfg.Keybindings.Board, def.Keybindings.Board)
	cfg.Keybindings.Edit = fillMapDefaults(cfg.Keybindings.Edit, def.Keybindings.Edit)
}

// fillMapDefaults adds every default action the user did not bind.
func fillMapDefaults(m, def map[string][]string) map[string][]string {
	if m == nil {
		return maps.Clone(def)
	}
	for action, keys := range def {
		if _, ok := m[action]; !ok {
			m[action] = keys
		}
	}
	return m
}
