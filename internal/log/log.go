// Package log is scrawl's debug log.
//
// The editor owns the terminal while it runs, so nothing may be printed to
// stdout or stderr. Entries go to a file instead, and only when --debug or
// SCRAWL_DEBUG asks for it. Until then every call is a cheap no-op. Each
// entry is also published on a broker for in-process tailing.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/scrawl/internal/pubsub"
)

// Level is the severity of an entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name onto a Level. Unknown names yield LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Category names the part of the editor an entry comes from.
type Category string

const (
	CatBuffer  Category = "buffer"
	CatPersist Category = "persist" // open/save
	CatSession Category = "session"
	CatMode    Category = "mode"
	CatConfig  Category = "config"
	CatWatcher Category = "watcher"
	CatCache   Category = "cache"   // render cache
	CatHistory Category = "history" // cursor positions
	CatUI      Category = "ui"
	CatTrace   Category = "trace"
)

// sink is where entries end up. A nil sink drops everything.
type sink struct {
	mu       sync.Mutex
	w        io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var current *sink

// InitWithTeaLog opens path through tea.LogToFile and routes entries at or
// above minLevel to it. The returned func closes the file.
func InitWithTeaLog(path, prefix string, minLevel Level) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	InitWriter(f, minLevel)
	return func() { _ = f.Close() }, nil
}

// InitWriter routes entries at or above minLevel to w.
func InitWriter(w io.Writer, minLevel Level) {
	current = &sink{
		w:        w,
		enabled:  true,
		minLevel: minLevel,
		broker:   pubsub.NewBroker[string](),
	}
}

// SetEnabled pauses or resumes logging without dropping the writer.
func SetEnabled(enabled bool) {
	if s := current; s != nil {
		s.mu.Lock()
		s.enabled = enabled
		s.mu.Unlock()
	}
}

// SetMinLevel changes the threshold.
func SetMinLevel(level Level) {
	if s := current; s != nil {
		s.mu.Lock()
		s.minLevel = level
		s.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields) }

func Info(cat Category, msg string, fields ...any) { write(LevelInfo, cat, msg, fields) }

func Warn(cat Category, msg string, fields ...any) { write(LevelWarn, cat, msg, fields) }

func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields) }

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	errText := "<nil>"
	if err != nil {
		errText = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", errText))
}

func write(level Level, cat Category, msg string, fields []any) {
	s := current
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || level < s.minLevel {
		return
	}

	entry := format(time.Now(), level, cat, msg, fields)
	if s.w != nil {
		_, _ = io.WriteString(s.w, entry)
	}
	if s.broker != nil {
		s.broker.Publish(pubsub.CreatedEvent, entry)
	}
}

// format renders one line:
//
//	2026-10-16T10:45:00 [ERROR] [persist] Save failed name=notes.txt error=...
func format(at time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	b.WriteString(at.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %v=<missing>", fields[i])
			break
		}
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	b.WriteByte('\n')
	return b.String()
}

// LogEvent is one published entry.
type LogEvent = pubsub.Event[string]

// LogListener tails published entries.
type LogListener = pubsub.ContinuousListener[string]

// NewListener subscribes to entries until ctx is done. It returns nil when
// logging was never initialized.
func NewListener(ctx context.Context) *LogListener {
	s := current
	if s == nil || s.broker == nil {
		return nil
	}
	return pubsub.NewContinuousListener[string](ctx, s.broker)
}
