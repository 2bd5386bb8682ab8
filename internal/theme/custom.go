package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// GetPalettesDir returns ~/.config/stickyboard/palettes, creating it if
// needed.
func GetPalettesDir() (string, error) {
	keepFile, err := xdg.ConfigFile("stickyboard/palettes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get palettes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

type swatchFile struct {
	Paper  string `json:"paper"`
	Ink    string `json:"ink"`
	Border string `json:"border"`
}

type paletteFile struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Variant string     `json:"variant"`
	Light   swatchFile `json:"light"`
	Dark    swatchFile `json:"dark"`
}

// LoadCustomPalettes registers every *.json palette in dir and returns
// the IDs it loaded. Bad files are skipped with a warning.
func LoadCustomPalettes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read palettes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}
		p, err := LoadCustomPaletteFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Warn("skipping custom palette", "file", entry.Name(), "err", err)
			continue
		}
		RegisterPalette(p)
		loaded = append(loaded, p.ID)
	}
	return loaded, nil
}

// LoadCustomPaletteFile reads one palette. The ID defaults to the file
// name, the variant to plain, and missing dark colors to the light ones.
func LoadCustomPaletteFile(path string) (Palette, error) {
	// #nosec G304 - path is from the user's config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, fmt.Errorf("failed to read palette file: %w", err)
	}

	var f paletteFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Palette{}, fmt.Errorf("failed to parse palette JSON: %w", err)
	}

	if f.ID == "" {
		base := filepath.Base(path)
		f.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if f.ID == "" {
		return Palette{}, fmt.Errorf("palette has no ID")
	}
	if f.Name == "" {
		f.Name = f.ID
	}
	if f.Variant == "" {
		f.Variant = "plain"
	}
	if f.Light.Paper == "" {
		return Palette{}, fmt.Errorf("palette %s has no light paper color", f.ID)
	}

	fillSwatch(&f.Light, swatchFile{Ink: "#000000", Border: f.Light.Paper})
	fillSwatch(&f.Dark, f.Light)

	return Palette{
		ID:      f.ID,
		Name:    f.Name,
		Variant: f.Variant,
		Light:   f.Light.swatch(),
		Dark:    f.Dark.swatch(),
	}, nil
}

func fillSwatch(s *swatchFile, def swatchFile) {
	if s.Paper == "" {
		s.Paper = def.Paper
	}
	if s.Ink == "" {
		s.Ink = def.Ink
	}
	if s.Border == "" {
		s.Border = def.Border
	}
}

func (s swatchFile) swatch() Swatch {
	return Swatch{
		Paper:  lipgloss.Color(s.Paper),
		Ink:    lipgloss.Color(s.Ink),
		Border: lipgloss.Color(s.Border),
	}
}
