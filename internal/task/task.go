// Package task is the task service the board persists its notes into.
package task

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusBlocked    = "blocked"
)

// Task priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

var (
	Statuses   = []string{StatusPending, StatusInProgress, StatusCompleted, StatusBlocked}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
)

var (
	// ErrNotFound is returned for an unknown task ID.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidPatch is returned when a patch would leave the task invalid.
	ErrInvalidPatch = errors.New("invalid task patch")
)

// StickyNote is a note as stored on its task.
type StickyNote struct {
	ID      string `json:"id"`
	Variant string `json:"variant"`
	Text    string `json:"text"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Palette string `json:"palette,omitempty"`
	Dark    bool   `json:"dark,omitempty"`
	Z       int    `json:"z"`
}

// Comment is a remark left on a task.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is a unit of work with its sticky notes.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	DueDate     time.Time    `json:"due_date,omitzero"`
	Description string       `json:"description,omitempty"`
	StickyNotes []StickyNote `json:"sticky_notes,omitempty"`
	Comments    []Comment    `json:"comments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// New returns a pending, medium priority task.
func New(title string, now time.Time) *Task {
	return &Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Status:    StatusPending,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.StickyNotes = slices.Clone(t.StickyNotes)
	c.Comments = slices.Clone(t.Comments)
	return &c
}

// Validate checks the fields a patch can break.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidPatch)
	}
	if !slices.Contains(Statuses, t.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPatch, t.Status)
	}
	if !slices.Contains(Priorities, t.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidPatch, t.Priority)
	}
	seen := make(map[string]bool, len(t.StickyNotes))
	for _, n := range t.StickyNotes {
		if n.ID == "" || seen[n.ID] {
			return fmt.Errorf("%w: sticky note id %q is empty or repeated", ErrInvalidPatch, n.ID)
		}
		seen[n.ID] = true
	}
	return nil
}

// Patch is a partial update. Nil fields are left alone.
type Patch struct {
	Title       *string
	Status      *string
	Priority    *string
	Description *string
	DueDate     *time.Time
	StickyNotes *[]StickyNote
	AddComment  *Comment
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Apply returns a copy of t with p applied and validated.
func Apply(t *Task, p Patch, now time.Time) (*Task, error) {
	out := t.Clone()
	if p.Title != nil {
		out.Title = strings.TrimSpace(*p.Title)
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.DueDate != nil {
		out.DueDate = *p.DueDate
	}
	if p.StickyNotes != nil {
		out.StickyNotes = slices.Clone(*p.StickyNotes)
	}
	if c := p.AddComment; c != nil {
		if strings.TrimSpace(c.Body) == "" {
			return nil, fmt.Errorf("%w: empty comment", ErrInvalidPatch)
		}
		cm := *c
		if cm.ID == "" {
			cm.ID = uuid.NewString()
		}
		if cm.CreatedAt.IsZero() {
			cm.CreatedAt = now
		}
		out.Comments = append(out.Comments, cm)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	out.UpdatedAt = now
	return out, nil
}

// Service is the task backend.
type Service interface {
	GetTask(ctx context.Context, id string) (*Task, error)
	UpdateTask(ctx context.Context, id string, p Patch) (*Task, error)
	// UpdateActiveTask records id as the task the user is working on.
	UpdateActiveTask(ctx context.Context, id string) error
	ActiveTask(ctx context.Context) (string, error)
	CreateTask(ctx context.Context, title string) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	Close() error
}

// Storage backends accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Open returns the service for backend. path is only used by bolt.
func Open(backend, path string) (Service, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryService(), nil
	case BackendBolt, "":
		return NewBoltService(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}

// Ensure returns the task id names. An empty id means the active task;
// a task titled title is created when there is none or it is gone. A
// named task that does not exist is an error wrapping ErrNotFound.
func Ensure(ctx context.Context, s Service, id, title string) (*Task, error) {
	if id != "" {
		t, err := s.GetTask(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", id, err)
		}
		return t, nil
	}

	active, err := s.ActiveTask(ctx)
	if err != nil {
		return nil, err
	}
	if active != "" {
		t, err := s.GetTask(ctx, active)
		if err == nil || !errors.Is(err, ErrNotFound) {
			return t, err
		}
	}
	return s.CreateTask(ctx, title)
}

func sortTasks(tasks []*Task) {
	slices.SortFunc(tasks, func(a, b *Task) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
