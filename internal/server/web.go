package server

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/sip"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/stickyboard/internal/ui"
)

// WebServerConfig configures StartWebServer.
type WebServerConfig struct {
	Host   string
	Port   string
	Boards Boards
}

// StartWebServer serves boards to the browser until ctx is cancelled.
// Copies go out as OSC 52 through the program's own output.
func StartWebServer(ctx context.Context, cfg *WebServerConfig) error {
	sipCfg := sip.DefaultConfig()
	if cfg.Host != "" {
		sipCfg.Host = cfg.Host
	}
	if cfg.Port != "" {
		sipCfg.Port = cfg.Port
	}

	server := sip.NewServer(sipCfg)
	log.Info("web server listening", "host", sipCfg.Host, "port", sipCfg.Port)
	return server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		pty := sess.Pty()
		b, err := cfg.Boards.New(ctx, "", pty.Width, pty.Height, ui.Clipboard{Remote: true})
		if err != nil {
			log.Error("could not open board", "err", err)
			return nil, nil
		}
		return b, ProgramOptions()
	})
}
