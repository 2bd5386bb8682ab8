package theme

import (
	"image/color"
	"slices"
	"sync"

	"charm.land/lipgloss/v2"
)

// Swatch is the set of colors a note is drawn with.
type Swatch struct {
	Paper  color.Color
	Ink    color.Color
	Border color.Color
}

// Palette is one choice in a note variant's color picker, with a light and
// a dark rendition.
type Palette struct {
	ID      string
	Name    string
	Variant string
	Light   Swatch
	Dark    Swatch
}

// Swatch returns the rendition for the given background mode.
func (p Palette) Swatch(dark bool) Swatch {
	if dark {
		return p.Dark
	}
	return p.Light
}

func sw(paper, ink, border string) Swatch {
	return Swatch{Paper: lipgloss.Color(paper), Ink: lipgloss.Color(ink), Border: lipgloss.Color(border)}
}

var (
	paletteMu sync.RWMutex
	palettes  = map[string][]Palette{
		"plain": {
			{ID: "yellow", Name: "Yellow", Light: sw("#fff59d", "#3e2f00", "#f9a825"), Dark: sw("#4a4210", "#fff8c4", "#c6a700")},
			{ID: "pink", Name: "Pink", Light: sw("#f8bbd0", "#4a0e26", "#ec407a"), Dark: sw("#4a1830", "#ffd6e5", "#c2185b")},
			{ID: "blue", Name: "Blue", Light: sw("#b3e5fc", "#01364f", "#039be5"), Dark: sw("#0d3048", "#d4efff", "#0277bd")},
			{ID: "green", Name: "Green", Light: sw("#c8e6c9", "#0f3d12", "#43a047"), Dark: sw("#183d1b", "#dcf5dd", "#2e7d32")},
			{ID: "purple", Name: "Purple", Light: sw("#e1bee7", "#38093f", "#8e24aa"), Dark: sw("#331a3d", "#f1dbf5", "#6a1b9a")},
		},
		"kerala": {
			{ID: "kasavu", Name: "Kasavu", Light: sw("#fbf3dc", "#4a3b12", "#c9a227"), Dark: sw("#3a3120", "#f7e9bf", "#d4af37")},
			{ID: "backwaters", Name: "Backwaters", Light: sw("#d7f0e4", "#0b3b2a", "#2e8b57"), Dark: sw("#12352a", "#d3f5e6", "#3cb371")},
			{ID: "theyyam", Name: "Theyyam", Light: sw("#ffe0cc", "#5a1400", "#e2481b"), Dark: sw("#4a1a0a", "#ffd9c4", "#ff5722")},
			{ID: "monsoon", Name: "Monsoon", Light: sw("#dfe7ee", "#1d2b38", "#5b7a99"), Dark: sw("#1f2a35", "#dde8f2", "#7f9fbf")},
		},
		"matrix": {
			{ID: "classic", Name: "Classic", Light: sw("#001100", "#00ff41", "#008f11"), Dark: sw("#000000", "#00ff41", "#00c82f")},
			{ID: "cyan", Name: "Cyan", Light: sw("#001417", "#3ffcff", "#0b8f99"), Dark: sw("#000000", "#3ffcff", "#14c8d1")},
			{ID: "amber", Name: "Amber", Light: sw("#140d00", "#ffb000", "#a06e00"), Dark: sw("#000000", "#ffb000", "#d18f00")},
			{ID: "redpill", Name: "Red Pill", Light: sw("#140000", "#ff3b3b", "#9a1010"), Dark: sw("#000000", "#ff3b3b", "#d12020")},
		},
		"polaroid": {
			{ID: "white", Name: "White", Light: sw("#fafafa", "#222222", "#d0d0d0"), Dark: sw("#2b2b2b", "#f0f0f0", "#8a8a8a")},
			{ID: "vintage", Name: "Vintage", Light: sw("#f3ead7", "#3b2f1e", "#b89b6a"), Dark: sw("#3b3226", "#f3ead7", "#a88b5a")},
			{ID: "black", Name: "Black", Light: sw("#1d1d1d", "#eeeeee", "#555555"), Dark: sw("#0f0f0f", "#eeeeee", "#444444")},
		},
	}
)

func init() {
	for variant, list := range palettes {
		for i := range list {
			list[i].Variant = variant
		}
	}
}

// RegisterPalette adds p to its variant's picker, replacing any palette
// with the same ID.
func RegisterPalette(p Palette) {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	list := palettes[p.Variant]
	if i := slices.IndexFunc(list, func(q Palette) bool { return q.ID == p.ID }); i >= 0 {
		list[i] = p
		return
	}
	palettes[p.Variant] = append(list, p)
}

// Palettes returns the picker entries for a variant.
func Palettes(variant string) []Palette {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return slices.Clone(palettes[variant])
}

// LookupPalette finds a palette by variant and ID. An unknown ID yields
// the variant's first palette and false.
func LookupPalette(variant, id string) (Palette, bool) {
	list := Palettes(variant)
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	if len(list) == 0 {
		return fallbackPalette(variant), false
	}
	return list[0], false
}

// NextPalette returns the palette after id in the variant's picker,
// wrapping around.
func NextPalette(variant, id string) Palette {
	list := Palettes(variant)
	if len(list) == 0 {
		return fallbackPalette(variant)
	}
	i := slices.IndexFunc(list, func(p Palette) bool { return p.ID == id })
	return list[(i+1)%len(list)]
}

func fallbackPalette(variant string) Palette {
	return Palette{
		ID:      "default",
		Name:    "Default",
		Variant: variant,
		Light:   sw("#ffffff", "#000000", "#888888"),
		Dark:    sw("#000000", "#ffffff", "#888888"),
	}
}
