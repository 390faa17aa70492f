// Package keys maps terminal key presses onto editor keys.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/scrawl/internal/mode"
)

// KeyMap holds the bindings for named keys. Printable characters are not
// bound here; they reach the mode machine as runes.
type KeyMap struct {
	Escape    key.Binding
	Enter     key.Binding
	Backspace key.Binding
	Tab       key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding

	// Help-only bindings for the footer hints. Their keys arrive as runes.
	Insert  key.Binding
	Command key.Binding
	Write   key.Binding
	Quit    key.Binding
	Move    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "normal mode"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "insert tab"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),

		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Write: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Move: key.NewBinding(
			key.WithKeys("h", "j", "k", "l"),
			key.WithHelp("hjkl", "move"),
		),
	}
}

// Editor is the active key map.
var Editor = DefaultKeyMap()

// named pairs each named binding with the editor key it produces.
var named = []struct {
	binding *key.Binding
	code    mode.KeyCode
}{
	{&Editor.Escape, mode.KeyEscape},
	{&Editor.Enter, mode.KeyEnter},
	{&Editor.Backspace, mode.KeyBackspace},
	{&Editor.Tab, mode.KeyTab},
	{&Editor.Left, mode.KeyLeft},
	{&Editor.Right, mode.KeyRight},
	{&Editor.Up, mode.KeyUp},
	{&Editor.Down, mode.KeyDown},
}

// ToKeys converts a key message into editor keys. A message carrying
// several runes (fast typing or a paste) yields one key per rune, except
// that a "\r\n" pair is a single enter. Keys the
// editor has no use for, and alt-modified runes, yield nothing.
func ToKeys(msg tea.KeyMsg) []mode.Key {
	for _, n := range named {
		if key.Matches(msg, *n.binding) {
			return []mode.Key{mode.Named(n.code)}
		}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []mode.Key{mode.Rune(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		out := make([]mode.Key, 0, len(msg.Runes))
		for i, r := range msg.Runes {
			if r == '\n' && i > 0 && msg.Runes[i-1] == '\r' {
				continue
			}
			if r == '\r' || r == '\n' {
				out = append(out, mode.Named(mode.KeyEnter))
				continue
			}
			out = append(out, mode.Rune(r))
		}
		return out
	}
	return nil
}

// Hints returns the bindings worth showing in the footer for m.
func Hints(m mode.Mode) []key.Binding {
	switch m {
	case mode.Normal:
		return []key.Binding{Editor.Insert, Editor.Command, Editor.Move}
	case mode.Insert:
		return []key.Binding{Editor.Escape, Editor.Enter, Editor.Backspace}
	case mode.Command:
		return []key.Binding{Editor.Write, Editor.Quit, Editor.Escape}
	default:
		return nil
	}
}
