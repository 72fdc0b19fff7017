package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
)

// persistedState is the JSON payload written to workspace_state. The
// documents keep the camelCase wire format boards are exported in.
type persistedState struct {
	Documents        []*board.Document `json:"documents"`
	ActiveDocumentID string            `json:"activeDocumentId,omitempty"`
	SelectedNodeID   string            `json:"selectedNodeId,omitempty"`
	BreadcrumbIDs    []string          `json:"breadcrumbIds"`
	Zoom             float64           `json:"zoom"`
	Pan              board.Position    `json:"pan"`
}

// SaveState writes the snapshot and rebuilds the node search index in
// one transaction.
func (s *Store) SaveState(snap *registry.Snapshot) error {
	payload, err := json.Marshal(persistedState{
		Documents:        snap.Documents,
		ActiveDocumentID: snap.ActiveDocumentID,
		SelectedNodeID:   snap.UI.SelectedNodeID,
		BreadcrumbIDs:    snap.UI.BreadcrumbIDs,
		Zoom:             snap.UI.Zoom,
		Pan:              snap.UI.Pan,
	})
	if err != nil {
		return fmt.Errorf("storage: encode state: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(
		`INSERT INTO workspace_state (id, payload, updated_at)
		 VALUES (1, ?, datetime('now'))
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(payload),
	); err != nil {
		return fmt.Errorf("storage: write state: %w", err)
	}

	if err := s.reindexNodes(tx, snap.Documents); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit save: %w", err)
	}
	return nil
}

// reindexNodes rebuilds the FTS index from scratch. The index is
// derived data, so wholesale replacement keeps it trivially consistent
// with the snapshot written in the same transaction.
func (s *Store) reindexNodes(tx *sql.Tx, docs []*board.Document) error {
	if _, err := tx.Exec(`DELETE FROM node_search`); err != nil {
		return fmt.Errorf("storage: clear search index: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO node_search (node_id, board_id, board_name, node_type, name, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: prepare index insert: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		var indexErr error
		board.Walk(doc.Root, func(n *board.Node) {
			if indexErr != nil {
				return
			}
			_, indexErr = stmt.Exec(n.ID, doc.ID, doc.Name, string(n.Type), n.Name, n.Meta.Description)
		})
		if indexErr != nil {
			return fmt.Errorf("storage: index board %s: %w", doc.ID, indexErr)
		}
	}
	return nil
}

// LoadState reads the last saved snapshot. A fresh database returns
// (nil, nil) and the caller starts empty. Boards that fail validation
// are dropped with a warning rather than poisoning the whole load.
func (s *Store) LoadState() (*registry.Snapshot, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM workspace_state WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read state: %w", err)
	}

	var p persistedState
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("storage: decode state: %w", err)
	}

	snap := registry.Restore(p.Documents, p.ActiveDocumentID, registry.UIState{
		SelectedNodeID: p.SelectedNodeID,
		BreadcrumbIDs:  p.BreadcrumbIDs,
		Zoom:           p.Zoom,
		Pan:            p.Pan,
	})
	if dropped := len(p.Documents) - len(snap.Documents); dropped > 0 {
		s.log.Warn().Int("dropped", dropped).Msg("discarded invalid boards from saved state")
	}
	return snap, nil
}
