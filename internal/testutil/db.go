// Package testutil provides fixtures for tests that touch the cursor
// history database or the file system.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scrawl/internal/history"
)

// NewHistoryDB opens a migrated history database in a temp dir. It is
// closed when the test ends.
func NewHistoryDB(t *testing.T) *history.DB {
	t.Helper()
	db, err := history.NewDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err, "failed to open history database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}
