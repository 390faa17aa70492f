package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scrawl/internal/buffer"
	"github.com/zjrosen/scrawl/internal/mode"
	"github.com/zjrosen/scrawl/internal/persist"
)

func press(s *Session, keys ...mode.Key) {
	for _, k := range keys {
		s.HandleKey(context.Background(), k)
	}
}

func typeText(s *Session, text string) {
	for _, r := range text {
		s.HandleKey(context.Background(), mode.Rune(r))
	}
}

var esc = mode.Named(mode.KeyEscape)

func cursorOf(s *Session) [2]int {
	l, c := s.Cursor()
	return [2]int{l, c}
}

func TestNew_Defaults(t *testing.T) {
	s := New(buffer.New(), persist.Bind(""))

	require.Equal(t, mode.Normal, s.Mode())
	require.Equal(t, "NORMAL", s.ModeLabel())
	require.True(t, s.Running())
	require.False(t, s.Dirty())
	require.Empty(t, s.Status())
	require.Empty(t, s.FileName())
	require.Equal(t, [2]int{0, 0}, cursorOf(s))

	_, err := uuid.Parse(s.ID())
	require.NoError(t, err)
}

// Empty buffer, i, "hi", Esc, :w with no file name.
func TestScenario_SaveWithoutFileName(t *testing.T) {
	dir := t.TempDir()
	s := New(buffer.New(), persist.Bind(""))

	press(s, mode.Rune('i'))
	typeText(s, "hi")
	press(s, esc, mode.Rune(':'), mode.Rune('w'))

	require.Equal(t, "hi", s.Content())
	require.Equal(t, StatusMissingName, s.Status())
	require.True(t, s.Failed())
	require.True(t, s.Running())
	require.True(t, s.Dirty())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

// "abc\ndef", down once, right three times.
func TestScenario_DownThenRightThree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\ndef"), 0644))

	tests := []struct {
		name        string
		virtualEdit bool
		want        [2]int
	}{
		{name: "navigation bound", want: [2]int{1, 2}},
		{name: "virtual edit onemore", virtualEdit: true, want: [2]int{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Open(context.Background(), persist.NewGateway(), path, WithVirtualEdit(tt.virtualEdit))
			require.Equal(t, [2]int{0, 0}, cursorOf(s))

			press(s, mode.Rune('j'), mode.Rune('l'), mode.Rune('l'), mode.Rune('l'))
			require.Equal(t, tt.want, cursorOf(s))

			press(s, mode.Rune('l'))
			require.Equal(t, tt.want, cursorOf(s), "not beyond the end")
		})
	}
}

func TestScenario_ColonQQuits(t *testing.T) {
	s := New(buffer.FromString("x"), persist.Bind(""))

	press(s, mode.Rune(':'), mode.Rune('q'))
	require.Equal(t, mode.Quit, s.Mode())
	require.False(t, s.Running())

	press(s, mode.Rune('i'))
	typeText(s, "zzz")
	require.Equal(t, mode.Quit, s.Mode())
	require.Equal(t, "x", s.Content())
}

func TestNormalModeDoesNotInsert(t *testing.T) {
	s := New(buffer.FromString("abc"), persist.Bind(""))
	typeText(s, "xyzw")
	require.Equal(t, "abc", s.Content())
	require.False(t, s.Dirty())
}

func TestInsert_EnterSplitsAndBackspaceJoins(t *testing.T) {
	s := New(buffer.FromString("abcd"), persist.Bind(""))

	press(s, mode.Rune('l'), mode.Rune('l'), mode.Rune('i'), mode.Named(mode.KeyEnter))
	require.Equal(t, []string{"ab", "cd"}, s.Lines())
	require.Equal(t, [2]int{1, 0}, cursorOf(s))

	press(s, mode.Named(mode.KeyBackspace))
	require.Equal(t, []string{"abcd"}, s.Lines())
	require.Equal(t, [2]int{0, 2}, cursorOf(s))

	press(s, mode.Named(mode.KeyBackspace))
	require.Equal(t, "acd", s.Content())
	require.Equal(t, [2]int{0, 1}, cursorOf(s))
}

func TestInsert_TabAndWideRunes(t *testing.T) {
	s := New(buffer.New(), persist.Bind(""))
	press(s, mode.Rune('i'), mode.Named(mode.KeyTab))
	typeText(s, "世界")
	require.Equal(t, "\t世界", s.Content())
	require.Equal(t, [2]int{0, 3}, cursorOf(s))
}

func TestEscapeSettlesCursorOntoLastCharacter(t *testing.T) {
	s := New(buffer.New(), persist.Bind(""))
	press(s, mode.Rune('i'))
	typeText(s, "abc")
	require.Equal(t, [2]int{0, 3}, cursorOf(s))

	press(s, esc)
	require.Equal(t, mode.Normal, s.Mode())
	require.Equal(t, [2]int{0, 2}, cursorOf(s))

	press(s, mode.Rune('h'))
	require.Equal(t, [2]int{0, 1}, cursorOf(s), "left moves from the settled column")
}

func TestSave_BoundFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	s := Open(context.Background(), persist.NewGateway(), path)
	require.Equal(t, path, s.FileName())
	require.Empty(t, s.Status())

	press(s, mode.Rune('i'))
	typeText(s, "hello")
	require.True(t, s.Dirty())

	press(s, esc, mode.Rune(':'), mode.Rune('w'))
	require.Equal(t, mode.Command, s.Mode())
	require.False(t, s.Dirty())
	require.True(t, strings.HasPrefix(s.Status(), `"`+path+`" [New]`), s.Status())
	require.False(t, s.Failed())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	press(s, esc)
	require.Equal(t, mode.Normal, s.Mode())
}

func TestSave_WriteFailureIsStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "notes.txt")
	s := Open(context.Background(), persist.NewGateway(), path)

	press(s, mode.Rune('i'))
	typeText(s, "x")
	press(s, esc, mode.Rune(':'), mode.Rune('w'))

	require.True(t, strings.HasPrefix(s.Status(), "write failed: "), s.Status())
	require.True(t, s.Failed())
	require.True(t, s.Running())
	require.True(t, s.Dirty())

	_, err := os.Stat(path)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpen_LossyDecodeIsStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("ok\xfe"), 0644))

	s := Open(context.Background(), persist.NewGateway(), path)
	require.Equal(t, StatusDecodeLossy, s.Status())
	require.Equal(t, "ok\uFFFD", s.Content())
	require.True(t, s.Running())
}

func TestOpen_ReadFailureIsStatus(t *testing.T) {
	dir := t.TempDir()
	s := Open(context.Background(), persist.NewGateway(), dir)
	require.True(t, strings.HasPrefix(s.Status(), "read failed: "), s.Status())
	require.Equal(t, 1, s.LineCount())
	require.True(t, s.Binding().ReadOnly)
}

func TestSave_AfterReadFailureIsRefused(t *testing.T) {
	dir := t.TempDir()
	s := Open(context.Background(), persist.NewGateway(), dir)

	press(s, mode.Rune(':'), mode.Rune('w'))
	require.True(t, s.Failed())
	require.True(t, strings.HasPrefix(s.Status(), "write failed: "), s.Status())
	require.Contains(t, s.Status(), persist.ErrUnreadable.Error())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestStep_FailedEffectLeavesStateUnchanged(t *testing.T) {
	s := New(buffer.FromString("abc"), persist.Bind(""))
	press(s, mode.Rune('l'))
	require.Equal(t, mode.Normal, s.Mode())
	rev := s.buf.Revision()

	err := s.step(context.Background(), mode.Insert, []mode.Effect{
		{Kind: mode.EffectMoveRight},
		{Kind: mode.EffectKind(99)},
	})
	require.Error(t, err)
	require.Equal(t, mode.Normal, s.Mode(), "mode not committed")
	require.Equal(t, [2]int{0, 1}, cursorOf(s), "cursor restored")
	require.Equal(t, rev, s.buf.Revision())
	require.Equal(t, "abc", s.Content())
}

func TestWithCursor_ClampsToBuffer(t *testing.T) {
	s := New(buffer.FromString("abc\nde"), persist.Bind(""), WithCursor(9, 9))
	require.Equal(t, [2]int{1, 1}, cursorOf(s))

	s = New(buffer.FromString("abc\nde"), persist.Bind(""), WithCursor(0, 1))
	require.Equal(t, [2]int{0, 1}, cursorOf(s))
}

func TestNotifyExternalChange(t *testing.T) {
	s := New(buffer.FromString("abc"), persist.Bind("a.txt"))
	s.NotifyExternalChange()
	require.Equal(t, StatusChangedOnDisk, s.Status())
	require.Equal(t, "abc", s.Content(), "buffer is not reloaded")

	s.NotifyExternalRemoval()
	require.Equal(t, StatusRemovedOnDisk, s.Status())
}

func TestLine_OutOfRangeIsEmpty(t *testing.T) {
	s := New(buffer.FromString("a\nb"), persist.Bind(""))
	require.Equal(t, 2, s.LineCount())
	require.Equal(t, "b", s.Line(1))
	require.Empty(t, s.Line(5))
}

func TestModeLabel(t *testing.T) {
	s := New(buffer.New(), persist.Bind(""))
	press(s, mode.Rune('i'))
	require.Equal(t, "INSERT", s.ModeLabel())
	press(s, esc, mode.Rune(':'))
	require.Equal(t, "COMMAND", s.ModeLabel())
}
