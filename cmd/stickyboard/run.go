package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/stickyboard/internal/app"
	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/input"
	"github.com/Gaurav-Gosain/stickyboard/internal/server"
	"github.com/Gaurav-Gosain/stickyboard/internal/task"
)

// setup loads the config file, applies the flags and returns the config.
func setup() *config.UserConfig {
	if logLevel != "" {
		lvl, err := log.ParseLevel(logLevel)
		if err != nil {
			log.Warn("unknown log level, keeping info", "level", logLevel)
		} else {
			log.SetLevel(lvl)
		}
	}

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		BorderStyle:   borderStyle,
		ThemeName:     themeName,
		Variant:       variant,
		CaretStrategy: caretStrategy,
		DarkNotes:     darkNotes,
		HideClock:     hideClock,
		NoSysInfo:     noSysInfo,
	}, userConfig)

	app.SetInputHandler(input.HandleInput)
	return userConfig
}

// openService opens the task store selected by the flags and the config.
func openService(cfg *config.UserConfig) (task.Service, error) {
	backend := storage
	if backend == "" {
		backend = cfg.Storage.Backend
	}
	path := dbPath
	if path == "" {
		path = cfg.Storage.Path
	}
	svc, err := task.Open(backend, path)
	if err != nil {
		return nil, fmt.Errorf("could not open task storage: %w", err)
	}
	return svc, nil
}

// openDebugLog opens the --debug-log file, if any.
func openDebugLog() (*log.Logger, func(), error) {
	if debugLog == "" {
		return nil, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(debugLog), 0o750); err != nil {
		return nil, nil, err
	}
	// #nosec G304 - path given on the command line
	f, err := os.OpenFile(debugLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open debug log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "board",
	})
	return logger, func() { _ = f.Close() }, nil
}

func pickTaskID(cfg *config.UserConfig) string {
	if taskID != "" {
		return taskID
	}
	return cfg.Storage.TaskID
}

func runLocal() error {
	userConfig := setup()

	svc, err := openService(userConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Error("failed to close task storage", "err", err)
		}
	}()

	logger, closeLog, err := openDebugLog()
	if err != nil {
		return err
	}
	defer closeLog()

	t, err := task.Ensure(context.Background(), svc, pickTaskID(userConfig), "Untitled")
	if err != nil {
		return fmt.Errorf("could not open task: %w", err)
	}

	board := app.NewBoard(app.BoardOptions{
		Service:  svc,
		Task:     t,
		KeyMap:   config.NewKeyMap(userConfig),
		DebugLog: logger,
	})

	p := tea.NewProgram(
		board,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(input.FilterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if finalBoard, ok := finalModel.(*app.Board); ok {
		finalBoard.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// serve runs start until SIGINT or SIGTERM.
func serve(start func(ctx context.Context, cfg config.ServerConfig, boards server.Boards) error) error {
	userConfig := setup()

	svc, err := openService(userConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Error("failed to close task storage", "err", err)
		}
	}()

	logger, closeLog, err := openDebugLog()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("shutting down")
		cancel()
	}()

	return start(ctx, userConfig.Server, server.Boards{
		Service: svc,
		KeyMap:  config.NewKeyMap(userConfig),
		TaskID:  pickTaskID(userConfig),
		Logger:  logger,
	})
}

func newSSHCmd() *cobra.Command {
	var host, port, keyPath string

	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve boards over SSH",
		Long: `Serve boards over SSH

Every connection gets its own board. A client may name the task to open
as the SSH command; otherwise the --task flag or the active task is used.
Copying note text goes to the client's clipboard through OSC 52.`,
		Example: `  # Start on the default port
  stickyboard ssh

  # Connect to a given task
  ssh -t -p 2222 localhost 3f2c9a1e-...`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(func(ctx context.Context, cfg config.ServerConfig, boards server.Boards) error {
				err := server.StartSSHServer(ctx, &server.SSHServerConfig{
					Host:    pick(host, cfg.Host),
					Port:    pick(port, cfg.Port),
					KeyPath: pick(keyPath, cfg.HostKeyPath),
					Boards:  boards,
				})
				if err != nil {
					return fmt.Errorf("SSH server error: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "SSH server port (default: from config or 2222)")
	cmd.Flags().StringVar(&host, "host", "", "SSH server host (default: from config or localhost)")
	cmd.Flags().StringVar(&keyPath, "key-path", "", "Path to SSH host key (generated if missing)")
	return cmd
}

func newWebCmd() *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve boards in the browser",
		Long: `Serve boards in the browser

Starts a web terminal; every browser tab gets its own board on the task
given by --task or the active task.`,
		Example: `  stickyboard web --port 7681`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(func(ctx context.Context, cfg config.ServerConfig, boards server.Boards) error {
				err := server.StartWebServer(ctx, &server.WebServerConfig{
					Host:   pick(host, cfg.Host),
					Port:   pick(port, cfg.WebPort),
					Boards: boards,
				})
				if err != nil {
					return fmt.Errorf("web server error: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "HTTP port (default: from config or 7681)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP host (default: from config or localhost)")
	return cmd
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
