// Package config holds stickyboard's constants, runtime settings and the
// user configuration file.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Timing
// =============================================================================

const (
	// NormalFPS is the tick rate while the board is idle.
	NormalFPS = 30

	// ClickSuppressDelay is how long a press on a note body is ignored after
	// a drag or resize ends.
	ClickSuppressDelay = 40 * time.Millisecond

	// NotificationDuration is how long a notification stays on screen.
	NotificationDuration = 3 * time.Second

	// SysInfoInterval is how often CPU and memory usage are sampled.
	SysInfoInterval = 2 * time.Second

	// PersistTimeout bounds a single task service call.
	PersistTimeout = 5 * time.Second
)

// =============================================================================
// Note geometry (cells, border included)
// =============================================================================

const (
	// DefaultNoteWidth is the width of a new plain, kerala or matrix note.
	DefaultNoteWidth = 28

	// DefaultNoteHeight is the height of a new plain, kerala or matrix note.
	DefaultNoteHeight = 10

	// PolaroidWidth is the width of a new polaroid note.
	PolaroidWidth = 24

	// PolaroidHeight is the height of a new polaroid note. Polaroids keep
	// this aspect ratio.
	PolaroidHeight = 18

	// PolaroidCaptionRows is the number of text rows under the photo area.
	PolaroidCaptionRows = 3

	// NoteCascade is the offset between consecutively created notes.
	NoteCascade = 2

	// NotePaddingX is the padding between a note's border and its text.
	NotePaddingX = 1

	// NotePaddingY is the vertical padding inside the text area.
	NotePaddingY = 0

	// StatusBarHeight is the number of rows reserved for the status bar.
	StatusBarHeight = 1

	// MinVisibleCells is how much of a dragged note must stay on screen.
	MinVisibleCells = 4
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxLogMessages is the size of the in-app log ring.
	MaxLogMessages = 500

	// MaxNotes caps the number of notes on one board.
	MaxNotes = 64

	// MaxNoteRunes caps the length of a single note.
	MaxNoteRunes = 4000
)

// =============================================================================
// Layers
// =============================================================================

const (
	// ZNotes is the Z index of the bottom-most note.
	ZNotes = 1

	// ZStatusBar sits above every note.
	ZStatusBar = 10000

	// ZOverlay is used for help, logs and the task overlay.
	ZOverlay = 10001

	// ZNotification is the top-most layer.
	ZNotification = 10002
)

// =============================================================================
// Runtime settings, set from the config file and CLI flags
// =============================================================================

// BorderStyle is the note border style.
var BorderStyle = "rounded"

// HideClock hides the clock in the status bar.
var HideClock = false

// ShowSysInfo shows CPU and memory usage in the status bar.
var ShowSysInfo = true

// DarkNotes draws new notes with the dark rendition of their palette.
var DarkNotes = false

// DefaultVariant is the variant of a newly created note.
var DefaultVariant = "plain"

// CommitPolicy is "variant", "blur" or "explicit". "variant" lets each
// note variant decide.
var CommitPolicy = "variant"

// CaretStrategy is "auto" or "scan".
var CaretStrategy = "auto"

// CaretExtent is "caret" or "box".
var CaretExtent = "caret"

// TabWidth is the tab stop width inside notes.
var TabWidth = 4

// Note size limits.
var (
	NoteMinWidth  = 12
	NoteMaxWidth  = 80
	NoteMinHeight = 5
	NoteMaxHeight = 40
)

// GetBorderForStyle returns the lipgloss border for BorderStyle.
func GetBorderForStyle() lipgloss.Border {
	switch BorderStyle {
	case "ascii":
		return lipgloss.ASCIIBorder()
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "block":
		return lipgloss.BlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// BorderStyles lists the accepted border style names.
var BorderStyles = []string{"rounded", "normal", "thick", "double", "block", "ascii"}
