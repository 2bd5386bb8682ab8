package stickyboard

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/stickyboard/internal/config"
)

type fakePTY struct{ w, h int }

func (p fakePTY) Width() int  { return p.w }
func (p fakePTY) Height() int { return p.h }

func TestNewWithService(t *testing.T) {
	svc := NewMemoryService()
	m, err := New(WithService(svc), WithUserConfig(config.DefaultConfig()), WithSize(80, 24))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = m.Close() }()

	if m.Task == nil {
		t.Fatal("New() opened no task")
	}
	if _, err := svc.GetTask(context.Background(), m.Task.ID); err != nil {
		t.Errorf("task %s not stored: %v", m.Task.ID, err)
	}
	if m.Clipboard.Remote {
		t.Error("local board marked remote")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if next != m {
		t.Errorf("Update() returned %T, want the wrapping model", next)
	}
	if m.Width != 100 || m.Height != 30 {
		t.Errorf("size = %dx%d, want 100x30", m.Width, m.Height)
	}
}

func TestNewForPTYOpensNamedTask(t *testing.T) {
	svc := NewMemoryService()
	existing, err := svc.CreateTask(context.Background(), "Groceries")
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	m, err := NewForPTY(fakePTY{120, 40},
		WithService(svc),
		WithTask(existing.ID),
		WithUserConfig(config.DefaultConfig()),
	)
	if err != nil {
		t.Fatalf("NewForPTY() error = %v", err)
	}
	if m.Task.ID != existing.ID {
		t.Errorf("opened task %s, want %s", m.Task.ID, existing.ID)
	}
	if m.Width != 120 || m.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.Width, m.Height)
	}
	if !m.Clipboard.Remote {
		t.Error("PTY board not marked remote")
	}
}

func TestFilterMouseMotion(t *testing.T) {
	m, err := New(WithService(NewMemoryService()), WithUserConfig(config.DefaultConfig()), WithSize(80, 24))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if FilterMouseMotion(m, tea.MouseMotionMsg{X: 3, Y: 3}) != nil {
		t.Error("idle motion passed the filter")
	}
	if FilterMouseMotion(m, tea.MouseClickMsg{X: 3, Y: 3}) == nil {
		t.Error("click was filtered out")
	}
}
