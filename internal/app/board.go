// Package app holds the stickyboard Bubble Tea model: a board of sticky
// notes bound to one task.
package app

import (
	"cmp"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"charm.land/bubbles/v2/help"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/geom"
	"github.com/Gaurav-Gosain/stickyboard/internal/gesture"
	"github.com/Gaurav-Gosain/stickyboard/internal/note"
	"github.com/Gaurav-Gosain/stickyboard/internal/task"
	"github.com/Gaurav-Gosain/stickyboard/internal/ui"
)

// Board is the application state: the notes, their focus and stacking
// order, the overlays and the task the notes belong to.
type Board struct {
	Notes   []*note.Note
	Focused int // index into Notes, -1 for none
	Width   int
	Height  int

	Hub     *gesture.Hub
	KeyMap  config.KeyMap
	Help    help.Model
	Service task.Service
	Task    *task.Task

	ShowHelp         bool
	ShowLogs         bool
	ShowTask         bool
	LogMessages      []LogMessage
	LogScrollOffset  int
	TaskScrollOffset int
	Notifications    []Notification

	Clipboard      ui.Clipboard
	DarkBackground bool
	CPUPercent     float64
	RAMPercent     float64
	HasSysInfo     bool

	// DebugLog mirrors the log ring when set.
	DebugLog *log.Logger

	nextZ           int
	persistPending  bool
	persistInFlight bool
	persistSeq      uint64
	writer          noteWriter
}

// Notification is a temporary message in the top right corner.
type Notification struct {
	ID        string
	Message   string
	Type      string // info, success, warning, error
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage is one entry of the in-app log.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// BoardOptions configures NewBoard.
type BoardOptions struct {
	Service   task.Service
	Task      *task.Task
	KeyMap    config.KeyMap
	Clipboard ui.Clipboard
	Width     int
	Height    int
	DebugLog  *log.Logger
}

// NewBoard creates a board showing the notes stored on opts.Task.
func NewBoard(opts BoardOptions) *Board {
	b := &Board{
		Focused:        -1,
		Width:          opts.Width,
		Height:         opts.Height,
		KeyMap:         opts.KeyMap,
		Help:           help.New(),
		Service:        opts.Service,
		Task:           opts.Task,
		Clipboard:      opts.Clipboard,
		DarkBackground: true,
		DebugLog:       opts.DebugLog,
	}
	if b.KeyMap.Board == nil {
		b.KeyMap = config.NewKeyMap(nil)
	}
	b.Hub = &gesture.Hub{OnStale: func(owner string) {
		b.LogWarn("released stale pointer capture held by note %s", shortID(owner))
	}}

	if b.Task != nil {
		stored := slices.Clone(b.Task.StickyNotes)
		slices.SortStableFunc(stored, func(x, y task.StickyNote) int { return cmp.Compare(x.Z, y.Z) })
		for _, s := range stored {
			b.restoreNote(s)
		}
	}
	return b
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (b *Board) restoreNote(s task.StickyNote) {
	v, err := note.ParseVariant(s.Variant)
	if err != nil {
		b.LogWarn("note %s: %v, showing it as plain", shortID(s.ID), err)
	}
	n := note.New(s.ID, v, s.X, s.Y, b.Hub)
	n.Text = s.Text
	if s.Width > 0 && s.Height > 0 {
		n.State.Size = geom.Size{Width: float64(s.Width), Height: float64(s.Height)}
	}
	if s.Palette != "" {
		n.State.Palette = s.Palette
	}
	n.State.Dark = s.Dark
	b.attach(n)
}

// attach stacks n on top of the board and wires its callbacks.
func (b *Board) attach(n *note.Note) {
	b.nextZ++
	n.Z = b.nextZ
	id := n.ID
	n.Callbacks = note.Callbacks{
		OnTextChange: func(text string) {
			b.debugf("note %s: %d runes unsaved", shortID(id), utf8.RuneCountInString(text))
		},
		OnCommit: func(string) { b.RequestPersist() },
		OnMove: func(x, y int) {
			b.debugf("note %s moved to %d,%d", shortID(id), x, y)
		},
		OnResize: func(w, h int) {
			b.debugf("note %s resized to %dx%d", shortID(id), w, h)
		},
		OnThemeChange: func(string) {
			b.RequestPersist()
		},
		OnBackgroundChange: func(bool) { b.RequestPersist() },
		OnDelete: func() {
			b.removeNote(id)
			b.RequestPersist()
		},
	}
	b.Notes = append(b.Notes, n)
}

// AddNote creates a note of variant v, cascaded from the last one, and
// focuses it. It returns nil when the board is full.
func (b *Board) AddNote(v note.Variant) *note.Note {
	if len(b.Notes) >= config.MaxNotes {
		b.ShowNotification(fmt.Sprintf("A board holds at most %d notes", config.MaxNotes), "warning", config.NotificationDuration)
		return nil
	}
	k := len(b.Notes)
	area := b.Area()
	x, y := 2+k*config.NoteCascade, 1+k*config.NoteCascade
	if area.Width > config.DefaultNoteWidth {
		x %= int(area.Width) - config.DefaultNoteWidth
	}
	if area.Height > config.DefaultNoteHeight {
		y %= int(area.Height) - config.DefaultNoteHeight
	}

	n := note.New(uuid.NewString(), v, x, y, b.Hub)
	b.attach(n)
	b.FocusNote(len(b.Notes) - 1)
	b.RequestPersist()
	b.LogInfo("created %s note %s", v, shortID(n.ID))
	return n
}

func (b *Board) removeNote(id string) {
	i, _ := b.NoteByID(id)
	if i < 0 {
		return
	}
	focusedID := ""
	if f := b.FocusedNote(); f != nil {
		focusedID = f.ID
	}
	b.Notes = slices.Delete(b.Notes, i, i+1)
	b.Focused, _ = b.NoteByID(focusedID)
	b.LogInfo("deleted note %s", shortID(id))
}

// DeleteFocused deletes the focused note.
func (b *Board) DeleteFocused() {
	if n := b.FocusedNote(); n != nil {
		n.Delete()
	}
}

// NoteByID returns the index and note with the given ID, or -1 and nil.
func (b *Board) NoteByID(id string) (int, *note.Note) {
	if id == "" {
		return -1, nil
	}
	for i, n := range b.Notes {
		if n.ID == id {
			return i, n
		}
	}
	return -1, nil
}

// NoteAt returns the index of the topmost note covering (x, y), or -1.
func (b *Board) NoteAt(x, y int) int {
	top, topZ := -1, -1
	for i, n := range b.Notes {
		if geom.Contains(n.Rect(), x, y) && n.Z > topZ {
			top, topZ = i, n.Z
		}
	}
	return top
}

// FocusedNote returns the focused note or nil.
func (b *Board) FocusedNote() *note.Note {
	if b.Focused < 0 || b.Focused >= len(b.Notes) {
		return nil
	}
	return b.Notes[b.Focused]
}

// EditingNote returns the focused note if it is in edit mode.
func (b *Board) EditingNote() *note.Note {
	if n := b.FocusedNote(); n != nil && n.Editing() {
		return n
	}
	return nil
}

// FocusNote focuses and raises note i. A note that loses focus leaves
// edit mode.
func (b *Board) FocusNote(i int) {
	if i < 0 || i >= len(b.Notes) {
		return
	}
	if i != b.Focused {
		b.LeaveEdit()
	}
	b.Focused = i
	n := b.Notes[i]
	if n.Z != b.nextZ {
		b.nextZ++
		n.Z = b.nextZ
	}
}

// Blur leaves edit mode and clears focus.
func (b *Board) Blur() {
	b.LeaveEdit()
	b.Focused = -1
}

// LeaveEdit takes the focused note out of edit mode according to its
// commit policy.
func (b *Board) LeaveEdit() {
	n := b.EditingNote()
	if n == nil {
		return
	}
	if n.Leave() {
		b.ShowNotification("Note saved", "success", config.NotificationDuration)
	} else if n.Spec().Commit == note.ExplicitSave {
		b.LogInfo("left note %s without saving", shortID(n.ID))
	}
}

// CycleFocus moves focus by delta in stacking order.
func (b *Board) CycleFocus(delta int) {
	if len(b.Notes) == 0 {
		return
	}
	order := b.StackOrder()
	pos := 0
	if f := b.FocusedNote(); f != nil {
		pos = slices.Index(order, b.Focused)
		pos = ((pos+delta)%len(order) + len(order)) % len(order)
	} else if delta < 0 {
		pos = len(order) - 1
	}
	b.FocusNote(order[pos])
}

// StackOrder returns note indexes from bottom to top.
func (b *Board) StackOrder() []int {
	order := make([]int, len(b.Notes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int { return cmp.Compare(b.Notes[x].Z, b.Notes[y].Z) })
	return order
}

// Area returns the size of the board above the status bar.
func (b *Board) Area() geom.Size {
	return geom.Size{
		Width:  float64(max(b.Width, 0)),
		Height: float64(max(b.Height-config.StatusBarHeight, 0)),
	}
}

// Mode names what the pointer and keyboard are doing, for the status bar.
func (b *Board) Mode() string {
	if n := b.FocusedNote(); n != nil {
		switch n.Gesture() {
		case gesture.Dragging:
			return "MOVE"
		case gesture.Resizing:
			return "RESIZE"
		}
		if n.Editing() {
			return "EDIT"
		}
	}
	return "BOARD"
}

// Log adds a message to the log ring.
func (b *Board) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	b.LogMessages = append(b.LogMessages, LogMessage{Time: time.Now(), Level: level, Message: message})
	if len(b.LogMessages) > config.MaxLogMessages {
		b.LogMessages = b.LogMessages[len(b.LogMessages)-config.MaxLogMessages:]
	}

	if b.DebugLog != nil {
		switch level {
		case "ERROR":
			b.DebugLog.Error(message)
		case "WARN":
			b.DebugLog.Warn(message)
		default:
			b.DebugLog.Info(message)
		}
	}
}

// debugf writes gesture and keystroke traffic to the debug log only.
func (b *Board) debugf(format string, args ...any) {
	if b.DebugLog != nil {
		b.DebugLog.Debugf(format, args...)
	}
}

func (b *Board) LogInfo(format string, args ...any)  { b.Log("INFO", format, args...) }
func (b *Board) LogWarn(format string, args ...any)  { b.Log("WARN", format, args...) }
func (b *Board) LogError(format string, args ...any) { b.Log("ERROR", format, args...) }

// ShowNotification displays a temporary notification and logs it.
func (b *Board) ShowNotification(message, kind string, duration time.Duration) {
	b.Notifications = append(b.Notifications, Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      kind,
		StartTime: time.Now(),
		Duration:  duration,
	})
	switch kind {
	case "error":
		b.LogError("%s", message)
	case "warning":
		b.LogWarn("%s", message)
	default:
		b.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (b *Board) CleanupNotifications(now time.Time) {
	b.Notifications = slices.DeleteFunc(b.Notifications, func(n Notification) bool {
		return now.Sub(n.StartTime) >= n.Duration
	})
}

// Cleanup ends any gesture, leaves edit mode and writes unsaved geometry
// back to the task. It is called once when the program exits.
func (b *Board) Cleanup() {
	for _, n := range b.Notes {
		n.CancelGesture()
	}
	b.Hub.ReleaseAll()
	b.LeaveEdit()
	// A write issued earlier may not have run before the program stopped.
	if err := b.persistNow(); err != nil {
		log.Error("failed to save notes", "err", err)
	}
}
