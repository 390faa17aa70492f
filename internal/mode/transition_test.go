package mode

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/scrawl/internal/cursor"
)

func TestMode_String(t *testing.T) {
	require.Equal(t, "Normal", Normal.String())
	require.Equal(t, "Insert", Insert.String())
	require.Equal(t, "Command", Command.String())
	require.Equal(t, "Quit", Quit.String())
	require.Equal(t, "Unknown", Mode(42).String())
}

func TestMode_Bound(t *testing.T) {
	require.Equal(t, cursor.Navigation, Normal.Bound())
	require.Equal(t, cursor.Insertion, Insert.Bound())
	require.Equal(t, cursor.Navigation, Command.Bound())
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Mode
		key     Key
		to      Mode
		effects []Effect
	}{
		// Normal
		{name: "i enters insert", from: Normal, key: Rune('i'), to: Insert},
		{name: ": enters command", from: Normal, key: Rune(':'), to: Command},
		{name: "h moves left", from: Normal, key: Rune('h'), to: Normal, effects: []Effect{{Kind: EffectMoveLeft}}},
		{name: "j moves down", from: Normal, key: Rune('j'), to: Normal, effects: []Effect{{Kind: EffectMoveDown}}},
		{name: "k moves up", from: Normal, key: Rune('k'), to: Normal, effects: []Effect{{Kind: EffectMoveUp}}},
		{name: "l moves right", from: Normal, key: Rune('l'), to: Normal, effects: []Effect{{Kind: EffectMoveRight}}},
		{name: "left arrow", from: Normal, key: Named(KeyLeft), to: Normal, effects: []Effect{{Kind: EffectMoveLeft}}},
		{name: "down arrow", from: Normal, key: Named(KeyDown), to: Normal, effects: []Effect{{Kind: EffectMoveDown}}},
		{name: "unknown rune ignored", from: Normal, key: Rune('x'), to: Normal},
		{name: "esc in normal ignored", from: Normal, key: Named(KeyEscape), to: Normal},
		{name: "w in normal ignored", from: Normal, key: Rune('w'), to: Normal},
		{name: "q in normal ignored", from: Normal, key: Rune('q'), to: Normal},

		// Insert
		{name: "printable inserts", from: Insert, key: Rune('a'), to: Insert, effects: []Effect{{Kind: EffectInsert, Rune: 'a'}}},
		{name: "hjkl insert literally", from: Insert, key: Rune('j'), to: Insert, effects: []Effect{{Kind: EffectInsert, Rune: 'j'}}},
		{name: "colon inserts", from: Insert, key: Rune(':'), to: Insert, effects: []Effect{{Kind: EffectInsert, Rune: ':'}}},
		{name: "wide rune inserts", from: Insert, key: Rune('世'), to: Insert, effects: []Effect{{Kind: EffectInsert, Rune: '世'}}},
		{name: "enter inserts newline", from: Insert, key: Named(KeyEnter), to: Insert, effects: []Effect{{Kind: EffectInsert, Rune: '\n'}}},
		{name: "tab inserts tab", from: Insert, key: Named(KeyTab), to: Insert, effects: []Effect{{Kind: EffectInsert, Rune: '\t'}}},
		{name: "backspace deletes", from: Insert, key: Named(KeyBackspace), to: Insert, effects: []Effect{{Kind: EffectBackspace}}},
		{name: "arrow moves in insert", from: Insert, key: Named(KeyRight), to: Insert, effects: []Effect{{Kind: EffectMoveRight}}},
		{name: "control rune ignored", from: Insert, key: Rune('\x07'), to: Insert},
		{name: "esc returns to normal", from: Insert, key: Named(KeyEscape), to: Normal, effects: []Effect{{Kind: EffectSettle}}},

		// Command
		{name: "w saves and stays", from: Command, key: Rune('w'), to: Command, effects: []Effect{{Kind: EffectSave}}},
		{name: "q quits", from: Command, key: Rune('q'), to: Quit},
		{name: "esc cancels", from: Command, key: Named(KeyEscape), to: Normal},
		{name: "other rune ignored", from: Command, key: Rune('x'), to: Command},
		{name: "arrows ignored", from: Command, key: Named(KeyLeft), to: Command},

		// Quit
		{name: "quit absorbs esc", from: Quit, key: Named(KeyEscape), to: Quit},
		{name: "quit absorbs i", from: Quit, key: Rune('i'), to: Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			to, effects := Transition(tt.from, tt.key)
			require.Equal(t, tt.to, to)
			require.Equal(t, tt.effects, effects)
		})
	}
}

func TestEffect_Mutates(t *testing.T) {
	require.True(t, Effect{Kind: EffectInsert, Rune: 'a'}.Mutates())
	require.True(t, Effect{Kind: EffectBackspace}.Mutates())
	require.False(t, Effect{Kind: EffectSave}.Mutates())
	require.False(t, Effect{Kind: EffectMoveLeft}.Mutates())
}

func TestKey_String(t *testing.T) {
	require.Equal(t, "a", Rune('a').String())
	require.Equal(t, "esc", Named(KeyEscape).String())
	require.Equal(t, "down", Named(KeyDown).String())
}

var anyKey = rapid.Custom(func(t *rapid.T) Key {
	code := rapid.SampledFrom([]KeyCode{
		KeyRune, KeyEscape, KeyEnter, KeyBackspace, KeyTab, KeyLeft, KeyRight, KeyUp, KeyDown,
	}).Draw(t, "code")
	if code != KeyRune {
		return Named(code)
	}
	return Rune(rapid.Rune().Draw(t, "rune"))
})

func TestProperty_QuitIsAbsorbing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOf(anyKey).Draw(t, "keys")
		m := Quit
		for _, k := range keys {
			var effects []Effect
			m, effects = Transition(m, k)
			require.Equal(t, Quit, m)
			require.Empty(t, effects)
		}
	})
}

func TestProperty_OnlyInsertMutates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := rapid.SampledFrom([]Mode{Normal, Command, Quit}).Draw(t, "mode")
		k := anyKey.Draw(t, "key")
		_, effects := Transition(m, k)
		for _, e := range effects {
			require.False(t, e.Mutates(), "%s produced %s in %s", k, e.Kind, m)
		}
	})
}
