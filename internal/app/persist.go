package app

import (
	"context"
	"errors"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/geom"
	"github.com/Gaurav-Gosain/stickyboard/internal/task"
)

// PersistedMsg reports the result of writing the notes to the task. Task
// is nil when a newer write had already reached the store.
type PersistedMsg struct {
	Seq  uint64
	Task *task.Task
	Err  error
}

// noteWriter serializes note writes and drops any write older than the
// last one stored.
type noteWriter struct {
	mu      sync.Mutex
	written uint64
}

func (w *noteWriter) write(svc task.Service, id string, seq uint64, notes []task.StickyNote) (*task.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq <= w.written {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), config.PersistTimeout)
	defer cancel()
	t, err := svc.UpdateTask(ctx, id, task.Patch{StickyNotes: &notes})
	if err != nil {
		return nil, err
	}
	w.written = seq
	return t, nil
}

// ActivatedMsg reports the result of marking the board's task active.
type ActivatedMsg struct {
	Err error
}

// RequestPersist marks the notes as changed. The write is issued by
// FlushPersist once the current message has been handled.
func (b *Board) RequestPersist() {
	b.persistPending = true
}

// Snapshot returns the notes as stored on the task. Notes being edited
// contribute their committed text.
func (b *Board) Snapshot() []task.StickyNote {
	out := make([]task.StickyNote, 0, len(b.Notes))
	for _, n := range b.Notes {
		out = append(out, task.StickyNote{
			ID:      n.ID,
			Variant: n.Variant.String(),
			Text:    n.Text,
			X:       geom.Round(n.State.Position.X),
			Y:       geom.Round(n.State.Position.Y),
			Width:   geom.Round(n.State.Size.Width),
			Height:  geom.Round(n.State.Size.Height),
			Palette: n.State.Palette,
			Dark:    n.State.Dark,
			Z:       n.Z,
		})
	}
	return out
}

// FlushPersist returns a command writing the notes to the task if any
// change was requested, or nil. The notes are captured before it returns.
// Only one write is in flight at a time; changes made meanwhile are
// flushed when its PersistedMsg arrives.
func (b *Board) FlushPersist() tea.Cmd {
	if !b.persistPending || b.persistInFlight || b.Service == nil || b.Task == nil {
		return nil
	}
	b.persistPending = false
	b.persistInFlight = true
	b.persistSeq++
	svc, seq, id, notes := b.Service, b.persistSeq, b.Task.ID, b.Snapshot()
	w := &b.writer
	return func() tea.Msg {
		t, err := w.write(svc, id, seq, notes)
		return PersistedMsg{Seq: seq, Task: t, Err: err}
	}
}

// persistNow writes the notes synchronously, ahead of any write still in
// flight.
func (b *Board) persistNow() error {
	if b.Service == nil || b.Task == nil {
		return nil
	}
	b.persistPending = false
	b.persistSeq++
	t, err := b.writer.write(b.Service, b.Task.ID, b.persistSeq, b.Snapshot())
	if t != nil {
		b.Task = t
	}
	return err
}

func (b *Board) handlePersisted(msg PersistedMsg) {
	if msg.Seq == b.persistSeq {
		b.persistInFlight = false
	}
	if msg.Err != nil {
		kind := "error"
		if errors.Is(msg.Err, task.ErrNotFound) {
			b.ShowNotification("The task was deleted, notes are no longer saved", kind, config.NotificationDuration)
			return
		}
		b.ShowNotification("Could not save notes: "+msg.Err.Error(), kind, config.NotificationDuration)
		return
	}
	if msg.Task != nil && msg.Seq == b.persistSeq {
		b.Task = msg.Task
	}
}

// activateCmd records the board's task as the active one.
func (b *Board) activateCmd() tea.Cmd {
	if b.Service == nil || b.Task == nil {
		return nil
	}
	svc, id := b.Service, b.Task.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.PersistTimeout)
		defer cancel()
		return ActivatedMsg{Err: svc.UpdateActiveTask(ctx, id)}
	}
}
