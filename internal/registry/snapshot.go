// Package registry owns the whiteboard state: the set of boards, which
// one is active, and the view state of the canvas. Every change flows
// through a single pure reducer over a closed action set; the Dispatcher
// serializes mutations and hands changed snapshots to persistence.
//
// The reducer inherits the engine's contract: an invalid or no-op action
// returns the SAME snapshot pointer, and that reference equality is the
// only rejection signal. There is no error channel and nothing panics.
package registry

import (
	"fmt"
	"math"

	"github.com/HendryAvila/swarmboard/internal/board"
)

// UIState is the view state of the active board.
type UIState struct {
	SelectedNodeID string         `json:"selectedNodeId,omitempty"`
	BreadcrumbIDs  []string       `json:"breadcrumbIds"`
	Zoom           float64        `json:"zoom"`
	Pan            board.Position `json:"pan"`
}

// Snapshot is the whole whiteboard state at one instant. Snapshots are
// immutable: readers may hold one indefinitely, and untouched documents
// are shared by pointer between consecutive snapshots.
type Snapshot struct {
	Documents        []*board.Document `json:"documents"`
	ActiveDocumentID string            `json:"activeDocumentId,omitempty"`
	UI               UIState           `json:"ui"`
}

// NewSnapshot returns an empty registry with default view state.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Documents: []*board.Document{},
		UI:        UIState{BreadcrumbIDs: []string{}, Zoom: 1},
	}
}

// Restore rebuilds a snapshot from persisted parts. Documents that fail
// validation or reuse an id are dropped, the active board falls back to
// the first surviving one, and the view state is re-validated against
// whatever board ends up active. Callers can compare document counts to
// learn how much was dropped.
func Restore(docs []*board.Document, activeID string, ui UIState) *Snapshot {
	s := NewSnapshot()
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if d == nil || seen[d.ID] || board.ValidateDocument(d) != nil {
			continue
		}
		seen[d.ID] = true
		s.Documents = append(s.Documents, d)
	}

	switch {
	case seen[activeID]:
		s.ActiveDocumentID = activeID
		if math.IsNaN(ui.Zoom) || math.IsInf(ui.Zoom, 0) || ui.Zoom <= 0 {
			ui.Zoom = 1
		}
		s.UI = revalidateUI(ui, s.ActiveDocument())
	case len(s.Documents) > 0:
		s.ActiveDocumentID = s.Documents[0].ID
		s.UI = uiFor(s.Documents[0])
	}
	return s
}

// Document returns the document with the given id, or nil.
func (s *Snapshot) Document(id string) *board.Document {
	if id == "" {
		return nil
	}
	for _, d := range s.Documents {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// ActiveDocument returns the active document, or nil when no board is
// active.
func (s *Snapshot) ActiveDocument() *board.Document {
	return s.Document(s.ActiveDocumentID)
}

// ResolveDocument finds a board by id or exact name. A name match is
// only honored when it is unambiguous.
func (s *Snapshot) ResolveDocument(ref string) (*board.Document, error) {
	if doc := s.Document(ref); doc != nil {
		return doc, nil
	}
	var match *board.Document
	for _, d := range s.Documents {
		if d.Name == ref {
			if match != nil {
				return nil, fmt.Errorf("board name %q is ambiguous, use the id instead", ref)
			}
			match = d
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no board with id or name %q", ref)
	}
	return match, nil
}

// isEmpty reports whether s carries no boards and default view state.
func (s *Snapshot) isEmpty() bool {
	return len(s.Documents) == 0 &&
		s.ActiveDocumentID == "" &&
		s.UI.SelectedNodeID == "" &&
		len(s.UI.BreadcrumbIDs) == 0 &&
		s.UI.Zoom == 1 &&
		s.UI.Pan == (board.Position{})
}

// clone returns a shallow copy of s with its own documents slice. The
// document pointers are shared; reductions replace only the ones they
// rebuild.
func (s *Snapshot) clone() *Snapshot {
	c := *s
	c.Documents = make([]*board.Document, len(s.Documents))
	copy(c.Documents, s.Documents)
	return &c
}

// withDocument returns a clone of s holding the given replacement for
// the document with the same id.
func (s *Snapshot) withDocument(doc *board.Document) *Snapshot {
	c := s.clone()
	for i, d := range c.Documents {
		if d.ID == doc.ID {
			c.Documents[i] = doc
			break
		}
	}
	return c
}

// uiFor returns the reset view state for a freshly opened board:
// breadcrumbs rooted at its root node, zoom 1, pan at the origin,
// nothing selected.
func uiFor(doc *board.Document) UIState {
	return UIState{BreadcrumbIDs: []string{doc.Root.ID}, Zoom: 1}
}

// revalidateUI drops a selection that no longer exists in the document
// and normalizes the breadcrumb trail. Zoom and pan survive untouched.
func revalidateUI(ui UIState, doc *board.Document) UIState {
	if ui.SelectedNodeID != "" && board.Find(doc.Root, ui.SelectedNodeID) == nil {
		ui.SelectedNodeID = ""
	}
	ui.BreadcrumbIDs = board.NormalizeBreadcrumbs(doc.Root, ui.BreadcrumbIDs)
	return ui
}
