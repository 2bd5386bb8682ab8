package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	xansi "github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/stickyboard/internal/task"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func stubSystemClipboard(t *testing.T, err error) *bool {
	t.Helper()
	orig := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = orig })
	called := false
	clipboardWriteAll = func(string) error {
		called = true
		return err
	}
	return &called
}

func TestClipboardUsesSystemFirst(t *testing.T) {
	stubSystemClipboard(t, nil)
	var out bytes.Buffer
	c := Clipboard{Out: &out, Env: env(map[string]string{"TERM": "xterm"})}

	m, err := c.Copy("hello")
	if err != nil || m != ClipboardSystem {
		t.Fatalf("Copy() = %v, %v; want system", m, err)
	}
	if out.Len() != 0 {
		t.Errorf("OSC52 written although the system clipboard worked: %q", out.String())
	}
}

func TestClipboardFallsBackToOSC52(t *testing.T) {
	stubSystemClipboard(t, errors.New("exit status 1"))
	var out bytes.Buffer
	c := Clipboard{Out: &out, Env: env(map[string]string{"TERM": "xterm", "DISPLAY": ":0"})}

	m, err := c.Copy("hello")
	if err != nil || m != ClipboardOSC52 {
		t.Fatalf("Copy() = %v, %v; want osc52", m, err)
	}
	if !strings.HasPrefix(out.String(), "\x1b]52;") {
		t.Errorf("output %q is not an OSC52 sequence", out.String())
	}
}

func TestClipboardRemoteSkipsSystem(t *testing.T) {
	called := stubSystemClipboard(t, nil)
	var out bytes.Buffer
	c := Clipboard{Remote: true, Out: &out, Env: env(map[string]string{"TERM": "xterm-256color", "TMUX": "1"})}

	if m, err := c.Copy("x"); err != nil || m != ClipboardOSC52 {
		t.Fatalf("Copy() = %v, %v", m, err)
	}
	if *called {
		t.Error("remote copy used the host clipboard")
	}
	if n := strings.Count(out.String(), "52;"); n != 2 {
		t.Errorf("tmux copy wrote %d sequences, want plain and wrapped", n)
	}
}

func TestClipboardBothFail(t *testing.T) {
	stubSystemClipboard(t, errors.New("exit status 1"))
	c := Clipboard{Out: &bytes.Buffer{}, Env: env(map[string]string{"TERM": "dumb"})}

	_, err := c.Copy("x")
	if err == nil {
		t.Fatal("Copy() succeeded with no clipboard")
	}
	if !strings.Contains(err.Error(), "no GUI clipboard") {
		t.Errorf("error = %q, want the missing display hint", err)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"# title", `\# title`},
		{"  - item", `  \- item`},
		{"1. first", `\1. first`},
		{"1.5 cups", "1.5 cups"},
		{"use `go`", "use \\`go\\`"},
	}
	for _, tt := range tests {
		if got := EscapeMarkdown(tt.in); got != tt.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTaskMarkdown(t *testing.T) {
	tk := &task.Task{
		Title:       "Ship it",
		Status:      task.StatusBlocked,
		Priority:    task.PriorityHigh,
		DueDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		StickyNotes: []task.StickyNote{{ID: "a", Variant: "matrix", Text: "# not a heading"}},
		Comments:    []task.Comment{{Body: "ok"}},
	}
	md := TaskMarkdown(tk)
	for _, want := range []string{"# Ship it", "blocked", "2024-05-01", `\# not a heading`, "anonymous"} {
		if !strings.Contains(md, want) {
			t.Errorf("TaskMarkdown() missing %q:\n%s", want, md)
		}
	}
}

func TestRenderMarkdownWidth(t *testing.T) {
	if got := RenderMarkdown("\n\n", 40, true); got != "" {
		t.Errorf("RenderMarkdown(blank) = %q", got)
	}
	out := RenderMarkdown(strings.Repeat("word ", 40), 30, false)
	for i, line := range strings.Split(out, "\n") {
		if w := xansi.StringWidth(line); w > 30 {
			t.Errorf("line %d is %d cells wide", i, w)
		}
	}
}
