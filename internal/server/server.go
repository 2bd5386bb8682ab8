// Package server serves boards over SSH and to the browser. Every
// connection gets its own board; all of them share one task store.
package server

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/stickyboard/internal/app"
	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/input"
	"github.com/Gaurav-Gosain/stickyboard/internal/task"
	"github.com/Gaurav-Gosain/stickyboard/internal/ui"
)

// Boards builds a board per connection.
type Boards struct {
	Service task.Service
	KeyMap  config.KeyMap
	// TaskID is the task shown when the client does not name one. Empty
	// means the active task.
	TaskID string
	Logger *log.Logger
}

// New opens the board for taskID, falling back to b.TaskID.
func (b Boards) New(ctx context.Context, taskID string, width, height int, clip ui.Clipboard) (*app.Board, error) {
	app.SetInputHandler(input.HandleInput)
	if taskID = strings.TrimSpace(taskID); taskID == "" {
		taskID = b.TaskID
	}
	t, err := task.Ensure(ctx, b.Service, taskID, "Untitled")
	if err != nil {
		return nil, err
	}
	return app.NewBoard(app.BoardOptions{
		Service:   b.Service,
		Task:      t,
		KeyMap:    b.KeyMap,
		Clipboard: clip,
		Width:     width,
		Height:    height,
		DebugLog:  b.Logger,
	}), nil
}

// ProgramOptions are the options every served program runs with.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(input.FilterMouseMotion),
	}
}
