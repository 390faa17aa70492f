package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Builder seeds cursor_positions rows directly, bypassing Store so tests
// control the timestamps.
type Builder struct {
	t         *testing.T
	db        *sql.DB
	positions []positionData
}

// NewBuilder creates a builder for the given history connection.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithPosition adds a row for path. Relative paths are made absolute the
// same way Store keys them.
func (b *Builder) WithPosition(path string, opts ...PositionOption) *Builder {
	p := defaultPosition(path)
	for _, opt := range opts {
		opt(&p)
	}
	b.positions = append(b.positions, p)
	return b
}

// Build inserts every row.
func (b *Builder) Build() {
	b.t.Helper()
	for _, p := range b.positions {
		abs, err := filepath.Abs(p.path)
		require.NoError(b.t, err)
		_, err = b.db.Exec(
			`INSERT INTO cursor_positions (path, line, col, updated_at) VALUES (?, ?, ?, ?)`,
			abs, p.line, p.col, p.updatedAt.Unix(),
		)
		require.NoError(b.t, err, "failed to insert position for %s", p.path)
	}
}
