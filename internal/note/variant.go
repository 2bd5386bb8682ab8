package note

import (
	"fmt"
	"slices"

	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/gesture"
)

// Variant is a note's visual type.
type Variant int

const (
	Plain Variant = iota
	Kerala
	Matrix
	Polaroid
)

var variantNames = []string{"plain", "kerala", "matrix", "polaroid"}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return "plain"
	}
	return variantNames[v]
}

// Next returns the following variant, wrapping around.
func (v Variant) Next() Variant {
	return Variant((int(v) + 1) % len(variantNames))
}

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	i := slices.Index(variantNames, s)
	if i < 0 {
		return Plain, fmt.Errorf("unknown note variant %q", s)
	}
	return Variant(i), nil
}

// CommitPolicy decides what leaving edit mode does with unsaved text.
type CommitPolicy int

const (
	// SaveOnBlur commits when the note loses focus or Esc is pressed.
	SaveOnBlur CommitPolicy = iota
	// ExplicitSave only commits on the save key; leaving discards.
	ExplicitSave
)

func (p CommitPolicy) String() string {
	if p == ExplicitSave {
		return "explicit"
	}
	return "blur"
}

// Spec describes how a variant behaves.
type Spec struct {
	Variant      Variant
	Badge        string
	Handles      []gesture.Direction
	Commit       CommitPolicy
	AspectLocked bool
	Width        int
	Height       int
}

var specs = map[Variant]Spec{
	Plain: {
		Badge:   "note",
		Handles: []gesture.Direction{gesture.East, gesture.South, gesture.SouthEast},
		Commit:  SaveOnBlur,
	},
	Kerala: {
		Badge:   "❀ kerala",
		Handles: []gesture.Direction{gesture.East, gesture.South, gesture.SouthEast},
		Commit:  SaveOnBlur,
	},
	Matrix: {
		Badge: "▚ matrix",
		// The top edge is the drag bar, so matrix notes resize from every
		// other edge and corner.
		Handles: []gesture.Direction{
			gesture.NorthEast, gesture.East, gesture.SouthEast, gesture.South,
			gesture.SouthWest, gesture.West, gesture.NorthWest,
		},
		Commit: ExplicitSave,
	},
	Polaroid: {
		Badge:        "◫ polaroid",
		Handles:      []gesture.Direction{gesture.SouthEast},
		Commit:       ExplicitSave,
		AspectLocked: true,
	},
}

// SpecFor returns the behaviour of v with the default size filled in.
func SpecFor(v Variant) Spec {
	s := specs[v]
	s.Variant = v
	s.Width, s.Height = config.DefaultNoteWidth, config.DefaultNoteHeight
	if v == Polaroid {
		s.Width, s.Height = config.PolaroidWidth, config.PolaroidHeight
	}
	switch config.CommitPolicy {
	case "blur":
		s.Commit = SaveOnBlur
	case "explicit":
		s.Commit = ExplicitSave
	}
	return s
}

// HasHandle reports whether the variant resizes from d.
func (s Spec) HasHandle(d gesture.Direction) bool {
	return slices.Contains(s.Handles, d)
}

// Constraints returns the resize bounds for the variant.
func (s Spec) Constraints() gesture.Constraints {
	c := gesture.Constraints{
		MinWidth:  float64(config.NoteMinWidth),
		MaxWidth:  float64(config.NoteMaxWidth),
		MinHeight: float64(config.NoteMinHeight),
		MaxHeight: float64(config.NoteMaxHeight),
	}
	if s.AspectLocked {
		c.AspectRatioLocked = true
		c.Ratio = float64(s.Height) / float64(s.Width)
	}
	return c
}
