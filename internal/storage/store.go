// Package storage persists the whiteboard workspace.
//
// A single SQLite database holds the serialized workspace snapshot, an
// append-only action journal, and an FTS5 index over every node for
// cross-board search. Snapshot writes arrive through a debounced saver
// so a burst of canvas edits lands as one disk write.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds storage configuration.
type Config struct {
	DataDir          string
	SaveDelay        time.Duration
	MaxSearchResults int
	MaxHistory       int
}

// DefaultConfig returns the default storage configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:          filepath.Join(home, ".swarmboard"),
		SaveDelay:        250 * time.Millisecond,
		MaxSearchResults: 20,
		MaxHistory:       200,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed workspace persistence layer.
type Store struct {
	db  *sql.DB
	cfg Config
	log zerolog.Logger
}

// New opens (or creates) the workspace database. It creates the data
// directory if needed, opens SQLite with WAL mode, and runs migrations.
func New(cfg Config, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("storage: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "swarmboard.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("storage: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg, log: log}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("storage: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS workspace_state (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS action_history (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			action     TEXT NOT NULL,
			board_id   TEXT,
			detail     TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_history_created ON action_history(created_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS node_search USING fts5(
			node_id UNINDEXED,
			board_id UNINDEXED,
			board_name,
			node_type,
			name,
			description
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
