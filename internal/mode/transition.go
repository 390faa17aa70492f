package mode

import "unicode"

// EffectKind tags an Effect.
type EffectKind int

const (
	EffectMoveLeft EffectKind = iota
	EffectMoveRight
	EffectMoveUp
	EffectMoveDown
	// EffectInsert inserts Effect.Rune at the cursor and advances it.
	EffectInsert
	// EffectBackspace removes the character before the cursor.
	EffectBackspace
	// EffectSave writes the buffer to the bound file.
	EffectSave
	// EffectSettle clamps the cursor to the new mode's bound.
	EffectSettle
)

// Effect is one state change requested by a transition.
type Effect struct {
	Kind EffectKind
	Rune rune
}

func (e EffectKind) String() string {
	switch e {
	case EffectMoveLeft:
		return "move.left"
	case EffectMoveRight:
		return "move.right"
	case EffectMoveUp:
		return "move.up"
	case EffectMoveDown:
		return "move.down"
	case EffectInsert:
		return "insert.char"
	case EffectBackspace:
		return "delete.backward"
	case EffectSave:
		return "file.save"
	case EffectSettle:
		return "cursor.settle"
	default:
		return "unknown"
	}
}

// Mutates reports whether the effect changes buffer content.
func (e Effect) Mutates() bool {
	return e.Kind == EffectInsert || e.Kind == EffectBackspace
}

func effects(kinds ...EffectKind) []Effect {
	out := make([]Effect, len(kinds))
	for i, k := range kinds {
		out[i] = Effect{Kind: k}
	}
	return out
}

// motion maps navigation keys to cursor effects. Arrow keys work in every
// non-terminal mode that moves the cursor; hjkl only in Normal.
func motion(k Key, letters bool) (Effect, bool) {
	switch k.Code {
	case KeyLeft:
		return Effect{Kind: EffectMoveLeft}, true
	case KeyRight:
		return Effect{Kind: EffectMoveRight}, true
	case KeyUp:
		return Effect{Kind: EffectMoveUp}, true
	case KeyDown:
		return Effect{Kind: EffectMoveDown}, true
	case KeyRune:
		if !letters {
			return Effect{}, false
		}
		switch k.Rune {
		case 'h':
			return Effect{Kind: EffectMoveLeft}, true
		case 'j':
			return Effect{Kind: EffectMoveDown}, true
		case 'k':
			return Effect{Kind: EffectMoveUp}, true
		case 'l':
			return Effect{Kind: EffectMoveRight}, true
		}
	}
	return Effect{}, false
}

// Transition interprets k in mode m.
//
//	Normal:  i -> Insert, : -> Command, hjkl/arrows move, anything else ignored
//	Insert:  printable/tab/enter insert, backspace deletes, arrows move,
//	         esc -> Normal (cursor settles back onto a character)
//	Command: w saves and stays, q -> Quit, esc -> Normal, anything else ignored
//	Quit:    absorbing
func Transition(m Mode, k Key) (Mode, []Effect) {
	switch m {
	case Normal:
		return normal(k)
	case Insert:
		return insert(k)
	case Command:
		return command(k)
	default:
		return Quit, nil
	}
}

func normal(k Key) (Mode, []Effect) {
	if k.Code == KeyRune {
		switch k.Rune {
		case 'i':
			return Insert, nil
		case ':':
			return Command, nil
		}
	}
	if e, ok := motion(k, true); ok {
		return Normal, []Effect{e}
	}
	return Normal, nil
}

func insert(k Key) (Mode, []Effect) {
	switch k.Code {
	case KeyEscape:
		return Normal, effects(EffectSettle)
	case KeyEnter:
		return Insert, []Effect{{Kind: EffectInsert, Rune: '\n'}}
	case KeyTab:
		return Insert, []Effect{{Kind: EffectInsert, Rune: '\t'}}
	case KeyBackspace:
		return Insert, effects(EffectBackspace)
	case KeyRune:
		if unicode.IsPrint(k.Rune) {
			return Insert, []Effect{{Kind: EffectInsert, Rune: k.Rune}}
		}
		return Insert, nil
	}
	if e, ok := motion(k, false); ok {
		return Insert, []Effect{e}
	}
	return Insert, nil
}

func command(k Key) (Mode, []Effect) {
	switch {
	case k.Code == KeyEscape:
		return Normal, nil
	case k.Code == KeyRune && k.Rune == 'w':
		return Command, effects(EffectSave)
	case k.Code == KeyRune && k.Rune == 'q':
		return Quit, nil
	}
	return Command, nil
}
