// Package session composes the buffer, cursor, mode machine and file binding
// into the single unit the input source and renderer talk to.
//
// A Session is not safe for concurrent use. The run loop owns it and touches
// it only from its update step.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zjrosen/scrawl/internal/buffer"
	"github.com/zjrosen/scrawl/internal/cursor"
	"github.com/zjrosen/scrawl/internal/log"
	"github.com/zjrosen/scrawl/internal/mode"
	"github.com/zjrosen/scrawl/internal/persist"
)

// Status messages shown in the footer.
const (
	StatusMissingName   = "provide a file name"
	StatusDecodeLossy   = "decoded with replacement characters"
	StatusChangedOnDisk = "file changed on disk"
	StatusRemovedOnDisk = "file removed from disk"
)

// Session is one editing session over one buffer.
type Session struct {
	id      string
	mode    mode.Mode
	buf     *buffer.Buffer
	cur     cursor.Cursor
	binding persist.Binding
	gateway *persist.Gateway
	status  string
	failed  bool

	virtualEdit bool
	savedRev    uint64
}

// Option configures a Session.
type Option func(*Session)

// WithVirtualEdit lets the cursor rest one past the last character in Normal
// mode, as it does in Insert mode.
//
// Without it, loading "abc\ndef", pressing j and then l three times leaves the
// cursor on 'f' at (1, 2), because navigation keeps the cursor on a character.
// With it the same keys reach (1, 3), the end of "def", which is what callers
// expecting one-past-end motion want.
func WithVirtualEdit(enabled bool) Option {
	return func(s *Session) {
		s.virtualEdit = enabled
	}
}

// WithCursor places the cursor, typically restored from history. The
// position is clamped to the buffer.
func WithCursor(line, col int) Option {
	return func(s *Session) {
		s.cur = cursor.At(line, col)
	}
}

// WithGateway sets the gateway used for saving.
func WithGateway(gw *persist.Gateway) Option {
	return func(s *Session) {
		s.gateway = gw
	}
}

// New creates a session in Normal mode over buf.
func New(buf *buffer.Buffer, binding persist.Binding, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		mode:     mode.Normal,
		buf:      buf,
		cur:      cursor.New(),
		binding:  binding,
		savedRev: buf.Revision(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gateway == nil {
		s.gateway = persist.NewGateway()
	}
	s.cur.Settle(s.buf, s.bound())

	log.Debug(log.CatSession, "Session started",
		"id", s.id, "file", binding.Display(), "lines", buf.LineCount())
	return s
}

// Open loads name through gw and starts a session on it. Load failures do
// not stop the session; they become the initial status message.
func Open(ctx context.Context, gw *persist.Gateway, name string, opts ...Option) *Session {
	buf, binding, err := gw.Open(ctx, name)
	s := New(buf, binding, append([]Option{WithGateway(gw)}, opts...)...)

	var (
		derr *buffer.DecodeError
		rerr *persist.ReadError
	)
	switch {
	case errors.As(err, &derr):
		s.report(StatusDecodeLossy, true)
	case errors.As(err, &rerr):
		s.report(fmt.Sprintf("read failed: %v (saving disabled)", rerr.Err), true)
	case err != nil:
		s.report(err.Error(), true)
	}
	return s
}

// HandleKey interprets one key press. It applies at most one mode
// transition and its effects, then leaves the cursor addressable.
func (s *Session) HandleKey(ctx context.Context, k mode.Key) {
	from := s.mode
	next, effects := mode.Transition(from, k)
	if err := s.step(ctx, next, effects); err != nil {
		// Addresses come from a clamped cursor, so this is a bug.
		log.ErrorErr(log.CatSession, "Key dropped", err, "key", k, "mode", from, "cursor", s.cur)
		return
	}
	if from != next {
		log.Debug(log.CatMode, "Transition", "from", from, "to", next, "key", k)
	}
}

// step runs effects under next and commits the mode only when all of them
// succeed. On failure mode and cursor are restored. Buffer operations check
// their address before mutating, so a failing effect leaves the text as is.
func (s *Session) step(ctx context.Context, next mode.Mode, effects []mode.Effect) error {
	prevMode, prevCur := s.mode, s.cur
	s.mode = next
	for _, e := range effects {
		if err := s.apply(ctx, e); err != nil {
			s.mode, s.cur = prevMode, prevCur
			return fmt.Errorf("%s: %w", e.Kind, err)
		}
	}
	return nil
}

func (s *Session) apply(ctx context.Context, e mode.Effect) error {
	bound := s.bound()

	switch e.Kind {
	case mode.EffectMoveLeft:
		s.cur.Settle(s.buf, bound)
		s.cur.MoveLeft()
	case mode.EffectMoveRight:
		s.cur.MoveRight(s.buf, bound)
	case mode.EffectMoveUp:
		s.cur.MoveUp()
	case mode.EffectMoveDown:
		s.cur.MoveDown(s.buf)
	case mode.EffectSettle:
		s.cur.Settle(s.buf, bound)
	case mode.EffectInsert:
		line, col := s.cur.Resolve(s.buf, cursor.Insertion)
		if err := s.buf.InsertChar(line, col, e.Rune); err != nil {
			return err
		}
		if e.Rune == '\n' || e.Rune == '\r' {
			s.cur = cursor.At(line+1, 0)
		} else {
			s.cur = cursor.At(line, col+1)
		}
	case mode.EffectBackspace:
		line, col := s.cur.Resolve(s.buf, cursor.Insertion)
		line, col, err := s.buf.Backspace(line, col)
		if err != nil {
			return err
		}
		s.cur = cursor.At(line, col)
	case mode.EffectSave:
		s.save(ctx)
	default:
		return fmt.Errorf("unknown effect %d", e.Kind)
	}
	return nil
}

func (s *Session) save(ctx context.Context) {
	summary, err := s.gateway.Save(ctx, s.buf, s.binding)

	var werr *persist.WriteError
	switch {
	case errors.Is(err, persist.ErrMissingFileName):
		s.report(StatusMissingName, true)
	case errors.As(err, &werr):
		s.report(fmt.Sprintf("write failed: %v", werr.Err), true)
	case err != nil:
		s.report(err.Error(), true)
	default:
		s.savedRev = s.buf.Revision()
		s.report(summary.String(), false)
	}
	log.Debug(log.CatSession, "Save", "id", s.id, "status", s.status)
}

// bound is the cursor policy for the current mode.
func (s *Session) bound() cursor.Bound {
	if s.virtualEdit {
		return cursor.Insertion
	}
	return s.mode.Bound()
}

// NotifyExternalChange records that the bound file was modified by another
// process. The buffer is not reloaded.
func (s *Session) NotifyExternalChange() {
	s.report(StatusChangedOnDisk, true)
}

// NotifyExternalRemoval records that the bound file was deleted by another
// process. The next save recreates it.
func (s *Session) NotifyExternalRemoval() {
	s.report(StatusRemovedOnDisk, true)
}

func (s *Session) report(msg string, failed bool) {
	s.status = msg
	s.failed = failed
}

// ID identifies the session in logs and traces.
func (s *Session) ID() string { return s.id }

// Mode is the current mode.
func (s *Session) Mode() mode.Mode { return s.mode }

// ModeLabel is the mode as shown in the footer.
func (s *Session) ModeLabel() string {
	return strings.ToUpper(s.mode.String())
}

// Running reports whether the session has not reached Quit.
func (s *Session) Running() bool { return !s.mode.Terminal() }

// Status is the outcome of the last command, or empty.
func (s *Session) Status() string { return s.status }

// Failed reports whether Status describes a problem rather than a result.
func (s *Session) Failed() bool { return s.failed }

// Binding is the file the session saves to.
func (s *Session) Binding() persist.Binding { return s.binding }

// FileName is the bound file name, or empty when unbound.
func (s *Session) FileName() string { return s.binding.Name }

// Dirty reports whether the buffer changed since it was loaded or saved.
func (s *Session) Dirty() bool { return s.buf.Revision() != s.savedRev }

// LineCount is the number of lines in the buffer.
func (s *Session) LineCount() int { return s.buf.LineCount() }

// Line returns line i, or "" when out of range.
func (s *Session) Line(i int) string {
	line, err := s.buf.Line(i)
	if err != nil {
		return ""
	}
	return line
}

// Lines returns a copy of every line.
func (s *Session) Lines() []string { return s.buf.Lines() }

// Content is the buffer as one string joined by "\n".
func (s *Session) Content() string { return s.buf.String() }

// Cursor is the cursor position clamped for the current mode.
func (s *Session) Cursor() (line, col int) {
	return s.cur.Resolve(s.buf, s.bound())
}
