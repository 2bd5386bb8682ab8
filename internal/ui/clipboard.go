package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// ClipboardMethod is how text reached the clipboard.
type ClipboardMethod uint8

const (
	ClipboardSystem ClipboardMethod = iota
	ClipboardOSC52
)

func (m ClipboardMethod) String() string {
	if m == ClipboardOSC52 {
		return "osc52"
	}
	return "system"
}

var (
	clipboardWriteAll = clipboard.WriteAll
	openTTY           = func() (io.WriteCloser, error) { return os.OpenFile("/dev/tty", os.O_WRONLY, 0) }
)

// Clipboard copies text for one terminal. Remote sessions set Remote so
// the system clipboard of the host is skipped and the OSC52 sequence is
// written to Out, the session's output.
type Clipboard struct {
	Remote bool
	Out    io.Writer
	Env    func(string) string
}

func (c Clipboard) getenv(k string) string {
	if c.Env != nil {
		return c.Env(k)
	}
	return os.Getenv(k)
}

// Copy writes text to the clipboard.
func (c Clipboard) Copy(text string) (ClipboardMethod, error) {
	if c.Remote {
		return ClipboardOSC52, c.writeOSC52(text)
	}
	sysErr := clipboardWriteAll(text)
	if sysErr == nil {
		return ClipboardSystem, nil
	}
	if oscErr := c.writeOSC52(text); oscErr != nil {
		return ClipboardSystem, c.combine(sysErr, oscErr)
	}
	return ClipboardOSC52, nil
}

func (c Clipboard) writeOSC52(text string) error {
	term := strings.ToLower(strings.TrimSpace(c.getenv("TERM")))
	if term == "" || term == "dumb" {
		return errors.New("OSC52 unavailable for this terminal")
	}
	w := c.Out
	if w == nil {
		tty, err := openTTY()
		if err != nil {
			return fmt.Errorf("open /dev/tty: %w", err)
		}
		defer tty.Close()
		w = tty
	}

	seq := osc52.New(text)
	switch {
	case c.getenv("TMUX") != "":
		if _, err := seq.WriteTo(w); err != nil {
			return err
		}
		seq = seq.Tmux()
	case strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}

func (c Clipboard) missingDisplay() bool {
	return strings.TrimSpace(c.getenv("DISPLAY")) == "" && strings.TrimSpace(c.getenv("WAYLAND_DISPLAY")) == ""
}

func (c Clipboard) combine(sysErr, oscErr error) error {
	if c.missingDisplay() {
		return fmt.Errorf("no GUI clipboard available (DISPLAY/WAYLAND_DISPLAY unset); OSC52 fallback failed: %w", oscErr)
	}
	return errors.Join(
		fmt.Errorf("system clipboard failed: %s", humanize(sysErr)),
		fmt.Errorf("OSC52 fallback failed: %w", oscErr),
	)
}

func humanize(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "exit status 1" {
		return "clipboard helper exited with status 1"
	}
	return msg
}
