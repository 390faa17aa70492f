package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// ErrNotFound is returned by Lookup for files with no recorded position.
var ErrNotFound = errors.New("no recorded position")

// Position is a saved cursor location.
type Position struct {
	Line      int
	Col       int
	UpdatedAt time.Time
}

// Store reads and writes cursor positions keyed by absolute file path.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func newStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// key normalizes name so "a.txt" and "./a.txt" share an entry.
func key(name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}
	return abs, nil
}

// Lookup returns the last recorded position for name.
func (s *Store) Lookup(ctx context.Context, name string) (Position, error) {
	path, err := key(name)
	if err != nil {
		return Position{}, err
	}

	var (
		pos     Position
		updated int64
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT line, col, updated_at FROM cursor_positions WHERE path = ?`, path,
	).Scan(&pos.Line, &pos.Col, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, ErrNotFound
	}
	if err != nil {
		return Position{}, fmt.Errorf("looking up position: %w", err)
	}
	pos.UpdatedAt = time.Unix(updated, 0)
	return pos, nil
}

// Record stores the position for name, replacing any previous one.
func (s *Store) Record(ctx context.Context, name string, line, col int) error {
	path, err := key(name)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cursor_positions (path, line, col, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET line = excluded.line, col = excluded.col, updated_at = excluded.updated_at`,
		path, max(line, 0), max(col, 0), s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording position: %w", err)
	}
	return nil
}

// Prune keeps the keep most recently updated entries and deletes the rest.
// It returns the number of rows removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cursor_positions WHERE path NOT IN (
			SELECT path FROM cursor_positions ORDER BY updated_at DESC, path LIMIT ?
		)`, max(keep, 0),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	return n, nil
}
