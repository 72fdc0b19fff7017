package registry

import (
	"strings"
	"testing"

	"github.com/HendryAvila/swarmboard/internal/board"
)

func TestResolveDocument(t *testing.T) {
	a := board.NewDocument("Acme", "", "")
	b := board.NewDocument("Globex", "", "")
	c := board.NewDocument("Globex", "", "")
	s := Restore([]*board.Document{a, b, c}, a.ID, UIState{})

	if doc, err := s.ResolveDocument(a.ID); err != nil || doc != a {
		t.Errorf("resolve by id = %v, %v", doc, err)
	}
	if doc, err := s.ResolveDocument("Acme"); err != nil || doc != a {
		t.Errorf("resolve by unique name = %v, %v", doc, err)
	}
	if _, err := s.ResolveDocument("Globex"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("duplicate name should be ambiguous, got %v", err)
	}
	if _, err := s.ResolveDocument("Initech"); err == nil || !strings.Contains(err.Error(), "no board") {
		t.Errorf("unknown ref should fail, got %v", err)
	}
}

func TestRestore_KeepsValidDocuments(t *testing.T) {
	a := board.NewDocument("Acme", "", "")
	b := board.NewDocument("Globex", "", "")

	s := Restore([]*board.Document{a, b}, b.ID, UIState{
		SelectedNodeID: b.Root.ID,
		BreadcrumbIDs:  []string{b.Root.ID},
		Zoom:           1.25,
	})

	if len(s.Documents) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(s.Documents))
	}
	if s.ActiveDocumentID != b.ID {
		t.Errorf("expected %s active, got %s", b.ID, s.ActiveDocumentID)
	}
	if s.UI.SelectedNodeID != b.Root.ID || s.UI.Zoom != 1.25 {
		t.Errorf("expected the view state to survive, got %+v", s.UI)
	}
}

func TestRestore_DropsBrokenDocuments(t *testing.T) {
	good := board.NewDocument("Acme", "", "")
	duplicate := *good

	tests := []struct {
		name string
		docs []*board.Document
		want int
	}{
		{"nil entry", []*board.Document{nil, good}, 1},
		{"invalid document", []*board.Document{{ID: "x", Name: "broken"}, good}, 1},
		{"duplicate id", []*board.Document{good, &duplicate}, 1},
		{"nothing", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Restore(tt.docs, "", UIState{})
			if len(s.Documents) != tt.want {
				t.Errorf("expected %d surviving boards, got %d", tt.want, len(s.Documents))
			}
		})
	}
}

func TestRestore_RepairsViewState(t *testing.T) {
	doc := board.NewDocument("Acme", "", "")

	// Unknown active board falls back to the first surviving one with a
	// fresh view.
	s := Restore([]*board.Document{doc}, "gone", UIState{SelectedNodeID: "stale", Zoom: 3})
	if s.ActiveDocumentID != doc.ID {
		t.Fatalf("expected fallback to %s, got %q", doc.ID, s.ActiveDocumentID)
	}
	if s.UI.SelectedNodeID != "" || s.UI.Zoom != 1 {
		t.Errorf("expected a reset view after fallback, got %+v", s.UI)
	}

	// A stale selection and a corrupt zoom are repaired in place.
	s = Restore([]*board.Document{doc}, doc.ID, UIState{
		SelectedNodeID: "stale",
		BreadcrumbIDs:  []string{"stale"},
		Zoom:           -4,
	})
	if s.UI.SelectedNodeID != "" {
		t.Errorf("expected the stale selection to be dropped, got %q", s.UI.SelectedNodeID)
	}
	if len(s.UI.BreadcrumbIDs) != 1 || s.UI.BreadcrumbIDs[0] != doc.Root.ID {
		t.Errorf("expected breadcrumbs rooted at the board, got %v", s.UI.BreadcrumbIDs)
	}
	if s.UI.Zoom != 1 {
		t.Errorf("expected zoom to reset to 1, got %v", s.UI.Zoom)
	}
}
