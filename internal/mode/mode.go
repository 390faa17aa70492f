// Package mode is the editor's finite state machine.
//
// Transition is a pure function from (mode, key) to the next mode and the
// ordered list of effects the session must apply. Nothing here touches the
// buffer or cursor, so the whole key grammar can be tested without an
// editing session.
package mode

import "github.com/zjrosen/scrawl/internal/cursor"

// Mode is the current interpretation context for key events.
type Mode int

const (
	// Normal handles navigation and dispatches into the other modes.
	Normal Mode = iota
	// Insert enters characters into the buffer.
	Insert
	// Command waits for a command key (save, quit).
	Command
	// Quit is terminal. No transition leaves it.
	Quit
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "Normal"
	case Insert:
		return "Insert"
	case Command:
		return "Command"
	case Quit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the session must stop.
func (m Mode) Terminal() bool {
	return m == Quit
}

// Bound is the cursor boundary policy that applies while in m.
func (m Mode) Bound() cursor.Bound {
	if m == Insert {
		return cursor.Insertion
	}
	return cursor.Navigation
}

// KeyCode classifies a key press.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Key is one key press: a printable rune or a named control key.
type Key struct {
	Code KeyCode
	Rune rune
}

// Rune returns the key press for a printable character.
func Rune(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Named returns the key press for a control key.
func Named(code KeyCode) Key {
	return Key{Code: code}
}

func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		return string(k.Rune)
	case KeyEscape:
		return "esc"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	default:
		return "unknown"
	}
}
