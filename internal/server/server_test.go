package server

import (
	"context"
	"errors"
	"testing"

	"github.com/Gaurav-Gosain/stickyboard/internal/task"
	"github.com/Gaurav-Gosain/stickyboard/internal/ui"
)

func TestSessionEnv(t *testing.T) {
	env := sessionEnv([]string{"TERM=xterm-256color", "TMUX=/tmp/tmux,1,0", "TMUX_PANE=%1", "EMPTY="})
	tests := []struct {
		key, want string
	}{
		{"TERM", "xterm-256color"},
		{"TMUX", "/tmp/tmux,1,0"},
		{"TMUX_PANE", "%1"},
		{"EMPTY", ""},
		{"HOME", ""},
		{"TER", ""},
	}
	for _, tt := range tests {
		if got := env(tt.key); got != tt.want {
			t.Errorf("env(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestBoardsNew(t *testing.T) {
	ctx := context.Background()
	svc := task.NewMemoryService()
	existing, err := svc.CreateTask(ctx, "Shared")
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	notes := []task.StickyNote{{ID: "n1", Variant: "plain", Text: "hi", X: 1, Y: 1, Width: 20, Height: 6, Z: 1}}
	if _, err := svc.UpdateTask(ctx, existing.ID, task.Patch{StickyNotes: &notes}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	boards := Boards{Service: svc, TaskID: existing.ID}

	b, err := boards.New(ctx, "", 100, 30, ui.Clipboard{Remote: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if b.Task.ID != existing.ID || len(b.Notes) != 1 {
		t.Errorf("New() opened task %s with %d notes, want %s with 1", b.Task.ID, len(b.Notes), existing.ID)
	}
	if b.Width != 100 || b.Height != 30 {
		t.Errorf("board size = %dx%d, want 100x30", b.Width, b.Height)
	}

	if _, err := boards.New(ctx, " missing ", 80, 24, ui.Clipboard{Remote: true}); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("New(missing) error = %v, want ErrNotFound", err)
	}
}
