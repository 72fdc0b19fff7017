package storage

import (
	"fmt"

	"github.com/rs/zerolog"
)

// HistoryEntry is one applied action in the journal.
type HistoryEntry struct {
	ID        int64  `json:"id"`
	Action    string `json:"action"`
	BoardID   string `json:"board_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

// AppendHistory records an applied action and prunes the journal down
// to the configured cap.
func (s *Store) AppendHistory(action, boardID, detail string) error {
	if _, err := s.db.Exec(
		`INSERT INTO action_history (action, board_id, detail) VALUES (?, ?, ?)`,
		action, nullableString(boardID), nullableString(detail),
	); err != nil {
		return fmt.Errorf("storage: append history: %w", err)
	}

	if s.cfg.MaxHistory > 0 {
		_, _ = s.db.Exec(
			`DELETE FROM action_history
			 WHERE id NOT IN (SELECT id FROM action_history ORDER BY id DESC LIMIT ?)`,
			s.cfg.MaxHistory,
		) // best-effort pruning
	}
	return nil
}

// RecentHistory returns the newest journal entries, newest first.
func (s *Store) RecentHistory(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, action, ifnull(board_id, ''), ifnull(detail, ''), created_at
		 FROM action_history
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: read history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.BoardID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Journal adapts the store to the dispatcher's fire-and-forget journal
// contract: append failures are logged, never surfaced.
type Journal struct {
	store *Store
	log   zerolog.Logger
}

// NewJournal wires a journal over the store.
func NewJournal(store *Store, log zerolog.Logger) *Journal {
	return &Journal{store: store, log: log}
}

// Append records one applied action.
func (j *Journal) Append(kind, documentID, detail string) {
	if err := j.store.AppendHistory(kind, documentID, detail); err != nil {
		j.log.Warn().Err(err).Str("action", kind).Msg("history append failed")
	}
}
