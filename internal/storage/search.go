package storage

import (
	"fmt"
	"strings"
)

// NodeHit is one cross-board search result.
type NodeHit struct {
	NodeID      string  `json:"node_id"`
	BoardID     string  `json:"board_id"`
	BoardName   string  `json:"board_name"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Rank        float64 `json:"rank"`
}

// SearchNodes performs full-text search across every board's nodes,
// matching names, descriptions, types and board names. The index
// reflects the last saved snapshot.
func (s *Store) SearchNodes(query string, limit int) ([]NodeHit, error) {
	if limit <= 0 || limit > s.cfg.MaxSearchResults {
		limit = s.cfg.MaxSearchResults
	}

	ftsQuery := sanitizeFTS(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT node_id, board_id, board_name, node_type, name, description, rank
		 FROM node_search
		 WHERE node_search MATCH ?
		 ORDER BY rank
		 LIMIT ?`,
		ftsQuery, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: search: %w", err)
	}
	defer rows.Close()

	var hits []NodeHit
	for rows.Next() {
		var h NodeHit
		if err := rows.Scan(&h.NodeID, &h.BoardID, &h.BoardName, &h.Type, &h.Name, &h.Description, &h.Rank); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// sanitizeFTS wraps each word in quotes for safe FTS5 queries.
// "data team" → `"data" "team"`
func sanitizeFTS(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		w = strings.Trim(w, `"`)
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}
