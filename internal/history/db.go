// Package history remembers where the cursor was when a file was last
// closed, so reopening it can put the cursor back.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/scrawl/internal/log"
)

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

// migrations[i] upgrades the schema from version i to i+1.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS cursor_positions (
			path       TEXT PRIMARY KEY,
			line       INTEGER NOT NULL,
			col        INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cursor_positions_updated_at
			ON cursor_positions(updated_at)`,
	},
}

// DB is the history database connection.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens or creates the history database at path and brings its schema
// up to date. Parent directories are created with 0700.
func NewDB(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(wal)" +
		"&_pragma=foreign_keys(1)"

	log.Debug(log.CatHistory, "Opening history database", "path", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	// One writer at a time; also keeps an in-memory database alive.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to history database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Info(log.CatHistory, "History database ready", "path", path)
	return db, nil
}

func (db *DB) migrate() error {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("history database schema %d is newer than supported %d", version, schemaVersion)
	}

	for v := version; v < schemaVersion; v++ {
		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %d: %w", v+1, err)
		}
		for _, stmt := range migrations[v] {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("applying migration %d: %w", v+1, err)
			}
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", v+1, err)
		}
		log.Debug(log.CatHistory, "Applied migration", "version", v+1)
	}
	return nil
}

// Store returns the cursor position store backed by this database.
func (db *DB) Store() *Store {
	return newStore(db.conn)
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
