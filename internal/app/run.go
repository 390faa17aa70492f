package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/scrawl/internal/history"
	"github.com/zjrosen/scrawl/internal/log"
)

// Run takes over the terminal until the session quits or ctx is cancelled.
// The alternate screen and raw mode are released on every exit path,
// including a panic inside the program.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (Model, error) {
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return m, fmt.Errorf("running editor: %w", err)
	}
	return m, nil
}

// Remember records the session's cursor in store so the file reopens at the
// same place. Unbound sessions are skipped.
func Remember(ctx context.Context, store *history.Store, m Model) {
	s := m.Session()
	if store == nil || s.FileName() == "" {
		return
	}
	line, col := s.Cursor()
	if err := store.Record(ctx, s.FileName(), line, col); err != nil {
		log.Warn(log.CatHistory, "Failed to record cursor", "file", s.FileName(), "error", err)
	}
}
