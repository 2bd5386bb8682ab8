// Package stickyboard provides a board of sticky notes bound to a task
// that can be embedded in other Bubble Tea applications or served.
//
// # Basic Usage
//
// Open the board of the active task with the default storage:
//
//	model, err := stickyboard.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer model.Close()
//	p := tea.NewProgram(model, stickyboard.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model, err := stickyboard.New(
//		stickyboard.WithTask(id),
//		stickyboard.WithVariant("matrix"),
//		stickyboard.WithService(myService),
//	)
//
// # Using with sip (Web Terminal)
//
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		m, _ := stickyboard.NewForPTY(sess.Pty(), stickyboard.WithService(shared))
//		return m, stickyboard.ProgramOptions()
//	})
package stickyboard

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/stickyboard/internal/app"
	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/input"
	"github.com/Gaurav-Gosain/stickyboard/internal/task"
	"github.com/Gaurav-Gosain/stickyboard/internal/ui"
)

// Board is the board model. It implements tea.Model.
type Board = app.Board

// Service is the task store the board reads and writes.
type Service = task.Service

// NewMemoryService returns a task store that lives in memory.
func NewMemoryService() Service {
	return task.NewMemoryService()
}

// OpenService opens a task store: "bolt" with a database path, or
// "memory".
func OpenService(backend, path string) (Service, error) {
	return task.Open(backend, path)
}

// Options configures a board.
type Options struct {
	// Theme is the board theme name (e.g. "dracula"). Empty uses the
	// terminal's colors.
	Theme string

	// Variant is the type of new notes: plain, kerala, matrix or polaroid.
	Variant string

	// BorderStyle sets the note border style.
	BorderStyle string

	// TaskID is the task to open. Empty opens the active task, creating
	// one if there is none.
	TaskID string

	// Service is the task store. Nil opens the default bolt database.
	Service Service

	// Remote sends copies to the terminal through OSC 52 instead of the
	// host clipboard.
	Remote bool

	// Width and Height are the initial size (set automatically if 0).
	Width  int
	Height int

	// UserConfig is a custom user configuration. If nil, the config file
	// is loaded.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring a board.
type Option func(*Options)

// WithTheme sets the board theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithVariant sets the type of new notes.
func WithVariant(v string) Option {
	return func(o *Options) {
		o.Variant = v
	}
}

// WithBorderStyle sets the note border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithTask opens the notes of the given task.
func WithTask(id string) Option {
	return func(o *Options) {
		o.TaskID = id
	}
}

// WithService sets the task store.
func WithService(s Service) Option {
	return func(o *Options) {
		o.Service = s
	}
}

// WithRemote marks the board as running for a remote terminal.
func WithRemote(remote bool) Option {
	return func(o *Options) {
		o.Remote = remote
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// Model wraps a board with the store it opened, if any.
type Model struct {
	*Board
	owned Service
}

// Close releases the task store when New opened it.
func (m *Model) Close() error {
	if m.owned == nil {
		return nil
	}
	return m.owned.Close()
}

// New creates a board with the given options.
func New(opts ...Option) (*Model, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY is a terminal with a size, such as a sip or SSH session's PTY.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a remote board sized to pty.
func NewForPTY(pty PTY, opts ...Option) (*Model, error) {
	options := Options{Remote: true}
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()
	return newModel(options)
}

func newModel(options Options) (*Model, error) {
	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		ThemeName:   options.Theme,
		Variant:     options.Variant,
		BorderStyle: options.BorderStyle,
	}, userConfig)

	m := &Model{}
	svc := options.Service
	if svc == nil {
		var err error
		svc, err = task.Open(userConfig.Storage.Backend, userConfig.Storage.Path)
		if err != nil {
			return nil, err
		}
		m.owned = svc
	}

	taskID := options.TaskID
	if taskID == "" {
		taskID = userConfig.Storage.TaskID
	}
	t, err := task.Ensure(context.Background(), svc, taskID, "Untitled")
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	m.Board = app.NewBoard(app.BoardOptions{
		Service:   svc,
		Task:      t,
		KeyMap:    config.NewKeyMap(userConfig),
		Clipboard: ui.Clipboard{Remote: options.Remote},
		Width:     options.Width,
		Height:    options.Height,
	})
	return m, nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.Board.Update(msg)
	return m, cmd
}

// ProgramOptions returns the tea.ProgramOption values a board runs with:
//
//	p := tea.NewProgram(model, stickyboard.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops pointer
// motion unless a note is being dragged or resized.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if m, ok := model.(*Model); ok {
		return input.FilterMouseMotion(m.Board, msg)
	}
	return input.FilterMouseMotion(model, msg)
}
