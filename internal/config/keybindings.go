package config

import (
	"strings"

	"charm.land/bubbles/v2/key"
)

// BoardActions are the actions bindable on the board, in help order.
var BoardActions = []string{
	"new_note", "edit_note", "cycle_variant", "cycle_palette", "toggle_dark",
	"copy_note", "delete_note", "next_note", "prev_note",
	"toggle_task", "toggle_logs", "toggle_help", "quit",
}

// EditActions are the actions bindable while editing a note.
var EditActions = []string{
	"save", "cancel", "newline", "left", "right", "up", "down",
	"home", "end", "backspace", "delete",
}

var actionDescriptions = map[string]string{
	"new_note":      "new note",
	"edit_note":     "edit note",
	"cycle_variant": "note type",
	"cycle_palette": "color",
	"toggle_dark":   "dark paper",
	"copy_note":     "copy text",
	"delete_note":   "delete",
	"next_note":     "next note",
	"prev_note":     "prev note",
	"toggle_task":   "task",
	"toggle_logs":   "logs",
	"toggle_help":   "help",
	"quit":          "quit",
	"save":          "save",
	"cancel":        "leave edit",
	"newline":       "newline",
	"left":          "left",
	"right":         "right",
	"up":            "up",
	"down":          "down",
	"home":          "line start",
	"end":           "line end",
	"backspace":     "delete back",
	"delete":        "delete forward",
}

// KeyMap holds the resolved key bindings.
type KeyMap struct {
	Board map[string]key.Binding
	Edit  map[string]key.Binding
}

// NewKeyMap builds bindings from cfg. A nil cfg uses the defaults.
func NewKeyMap(cfg *UserConfig) KeyMap {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	def := DefaultConfig().Keybindings
	return KeyMap{
		Board: buildBindings(BoardActions, cfg.Keybindings.Board, def.Board),
		Edit:  buildBindings(EditActions, cfg.Keybindings.Edit, def.Edit),
	}
}

func buildBindings(actions []string, keys, def map[string][]string) map[string]key.Binding {
	out := make(map[string]key.Binding, len(actions))
	for _, action := range actions {
		ks, ok := keys[action]
		if !ok {
			ks = def[action]
		}
		out[action] = key.NewBinding(
			key.WithKeys(ks...),
			key.WithHelp(strings.Join(ks, "/"), actionDescriptions[action]),
		)
	}
	return out
}

// BoardAction returns the board action bound to k.
func (m KeyMap) BoardAction(k string) (string, bool) {
	return lookup(m.Board, BoardActions, k)
}

// EditAction returns the edit action bound to k.
func (m KeyMap) EditAction(k string) (string, bool) {
	return lookup(m.Edit, EditActions, k)
}

func lookup(bindings map[string]key.Binding, order []string, k string) (string, bool) {
	for _, action := range order {
		b := bindings[action]
		for _, bk := range b.Keys() {
			if bk == k {
				return action, true
			}
		}
	}
	return "", false
}

func (m KeyMap) ordered(bindings map[string]key.Binding, actions ...string) []key.Binding {
	out := make([]key.Binding, 0, len(actions))
	for _, a := range actions {
		out = append(out, bindings[a])
	}
	return out
}

// ShortHelp implements help.KeyMap for the board footer.
func (m KeyMap) ShortHelp() []key.Binding {
	return m.ordered(m.Board, "new_note", "edit_note", "cycle_palette", "toggle_help", "quit")
}

// FullHelp implements help.KeyMap.
func (m KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		m.ordered(m.Board, "new_note", "edit_note", "cycle_variant", "cycle_palette", "toggle_dark"),
		m.ordered(m.Board, "copy_note", "delete_note", "next_note", "prev_note"),
		m.ordered(m.Board, "toggle_task", "toggle_logs", "toggle_help", "quit"),
		m.ordered(m.Edit, "save", "cancel", "newline", "home", "end"),
	}
}

// EditHelp is the footer shown while a note is being edited.
func (m KeyMap) EditHelp() []key.Binding {
	return m.ordered(m.Edit, "save", "cancel", "newline")
}

// Keybinding is one row of the keybinding reference.
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection groups related keybindings.
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns the reference printed by `keybinds list`.
func GetKeybindings(m KeyMap) []KeybindingSection {
	section := func(title string, bindings map[string]key.Binding, actions []string) KeybindingSection {
		s := KeybindingSection{Title: title}
		for _, a := range actions {
			h := bindings[a].Help()
			s.Bindings = append(s.Bindings, Keybinding{Key: h.Key, Description: h.Desc})
		}
		return s
	}

	return []KeybindingSection{
		section("Board", m.Board, BoardActions),
		section("Editing", m.Edit, EditActions),
		{
			Title: "Mouse",
			Bindings: []Keybinding{
				{"Drag top border", "Move note"},
				{"Drag edge or corner", "Resize note (handles depend on note type)"},
				{"Right drag", "Resize from the nearest corner"},
				{"Click text", "Edit with the caret at the click"},
				{"Click outside", "Leave edit mode"},
			},
		},
	}
}
