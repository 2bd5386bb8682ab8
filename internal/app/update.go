package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/ui"
)

// TickerMsg drives the clock and notification expiry.
type TickerMsg time.Time

// SysInfoMsg carries a CPU and memory sample.
type SysInfoMsg struct {
	CPU float64
	RAM float64
	Err error
}

// FocusCaretMsg places the caret of a note that just entered edit mode.
// It is delivered after the press that started editing has been handled.
type FocusCaretMsg struct {
	NoteID string
	Offset int
}

// DragGuardExpiredMsg ends click suppression after a drag or resize.
type DragGuardExpiredMsg struct {
	NoteID string
	Seq    uint64
}

// CopiedMsg reports the result of copying note text.
type CopiedMsg struct {
	Method ui.ClipboardMethod
	Err    error
}

// InputHandler handles mouse, key and paste messages. It is registered by
// the input package, which imports app.
type InputHandler func(msg tea.Msg, b *Board) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler registers the input handler.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// TickCmd schedules the next clock tick.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickerMsg(t) })
}

// SysInfoCmd samples CPU and memory usage after the sampling interval.
func SysInfoCmd() tea.Cmd {
	return tea.Tick(config.SysInfoInterval, func(time.Time) tea.Msg {
		return sampleSysInfo()
	})
}

func sampleSysInfo() SysInfoMsg {
	var msg SysInfoMsg
	percents, err := cpu.Percent(0, false)
	if err != nil {
		msg.Err = err
		return msg
	}
	if len(percents) > 0 {
		msg.CPU = percents[0]
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		msg.Err = err
		return msg
	}
	msg.RAM = vm.UsedPercent
	return msg
}

// FocusCaretCmd delivers FocusCaretMsg on the next update.
func FocusCaretCmd(noteID string, offset int) tea.Cmd {
	return func() tea.Msg { return FocusCaretMsg{NoteID: noteID, Offset: offset} }
}

// DragGuardCmd expires the click guard of gesture seq after the
// suppression delay.
func DragGuardCmd(noteID string, seq uint64) tea.Cmd {
	return tea.Tick(config.ClickSuppressDelay, func(time.Time) tea.Msg {
		return DragGuardExpiredMsg{NoteID: noteID, Seq: seq}
	})
}

// CopyCmd copies text to the clipboard. A remote board without a writer
// of its own sends OSC 52 through the program output.
func (b *Board) CopyCmd(text string) tea.Cmd {
	c := b.Clipboard
	if c.Remote && c.Out == nil {
		return tea.Batch(tea.SetClipboard(text), func() tea.Msg {
			return CopiedMsg{Method: ui.ClipboardOSC52}
		})
	}
	return func() tea.Msg {
		m, err := c.Copy(text)
		return CopiedMsg{Method: m, Err: err}
	}
}

// Init starts the clock, the system sampler and marks the task active.
func (b *Board) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(), tea.RequestBackgroundColor, b.activateCmd()}
	if config.ShowSysInfo {
		cmds = append(cmds, SysInfoCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		b.CleanupNotifications(time.Time(msg))
		return b, TickCmd()

	case SysInfoMsg:
		if msg.Err != nil {
			b.HasSysInfo = false
			b.LogWarn("system stats unavailable: %v", msg.Err)
			return b, nil
		}
		b.CPUPercent, b.RAMPercent, b.HasSysInfo = msg.CPU, msg.RAM, true
		return b, SysInfoCmd()

	case FocusCaretMsg:
		if _, n := b.NoteByID(msg.NoteID); n != nil {
			n.FocusCaret(msg.Offset)
		}
		return b, nil

	case DragGuardExpiredMsg:
		if _, n := b.NoteByID(msg.NoteID); n != nil {
			n.ExpireGuard(msg.Seq)
		}
		return b, nil

	case PersistedMsg:
		b.handlePersisted(msg)
		return b, b.FlushPersist()

	case ActivatedMsg:
		if msg.Err != nil {
			b.LogWarn("could not mark task active: %v", msg.Err)
		}
		return b, nil

	case CopiedMsg:
		if msg.Err != nil {
			b.ShowNotification("Copy failed: "+msg.Err.Error(), "error", config.NotificationDuration)
		} else {
			b.ShowNotification("Copied note text ("+msg.Method.String()+")", "success", config.NotificationDuration)
		}
		return b, nil

	case tea.BackgroundColorMsg:
		b.DarkBackground = msg.IsDark()
		return b, nil

	case tea.WindowSizeMsg:
		b.Width, b.Height = msg.Width, msg.Height
		b.Help.SetWidth(msg.Width)
		return b, nil

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg, tea.PasteMsg:
		if inputHandler != nil {
			model, cmd := inputHandler(msg, b)
			return model, tea.Batch(cmd, b.FlushPersist())
		}
		return b, nil
	}
	return b, nil
}
