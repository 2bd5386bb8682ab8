package server

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/stickyboard/internal/ui"
)

// SSHServerConfig configures StartSSHServer.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	Boards  Boards
}

// DefaultHostKeyPath is where the generated host key is kept.
func DefaultHostKeyPath() (string, error) {
	return xdg.DataFile(filepath.Join("stickyboard", "ssh_host_ed25519"))
}

// StartSSHServer serves boards over SSH until ctx is cancelled. A client
// may name a task: `ssh -t host <task-id>`.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	keyPath := cfg.KeyPath
	if keyPath == "" {
		p, err := DefaultHostKeyPath()
		if err != nil {
			return err
		}
		keyPath = p
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return err
	}

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(sshHandler(cfg.Boards)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info("ssh server listening", "addr", s.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("stopping ssh server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

func sshHandler(boards Boards) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sess.Pty()

		taskID := ""
		if args := sess.Command(); len(args) > 0 {
			taskID = args[0]
		}

		env := sessionEnv(sess.Environ())
		clip := ui.Clipboard{Remote: true, Out: sess, Env: func(k string) string {
			if k == "TERM" && pty.Term != "" {
				return pty.Term
			}
			return env(k)
		}}
		b, err := boards.New(sess.Context(), taskID, pty.Window.Width, pty.Window.Height, clip)
		if err != nil {
			wish.Fatalln(sess, "stickyboard: "+err.Error())
			return nil, nil
		}
		log.Info("board opened", "user", sess.User(), "task", b.Task.ID)
		return b, ProgramOptions()
	}
}

// sessionEnv looks variables up in the environment the client sent.
func sessionEnv(environ []string) func(string) string {
	return func(k string) string {
		for _, kv := range environ {
			if len(kv) > len(k) && kv[len(k)] == '=' && kv[:len(k)] == k {
				return kv[len(k)+1:]
			}
		}
		return ""
	}
}
