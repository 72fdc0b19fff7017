package registry

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/HendryAvila/swarmboard/internal/board"
)

type recordingSaver struct {
	scheduled []*Snapshot
}

func (r *recordingSaver) Schedule(s *Snapshot) {
	r.scheduled = append(r.scheduled, s)
}

type journalEntry struct {
	kind       string
	documentID string
	detail     string
}

type recordingJournal struct {
	entries []journalEntry
}

func (r *recordingJournal) Append(kind, documentID, detail string) {
	r.entries = append(r.entries, journalEntry{kind, documentID, detail})
}

func newTestDispatcher() (*Dispatcher, *recordingSaver, *recordingJournal) {
	saver := &recordingSaver{}
	journal := &recordingJournal{}
	return NewDispatcher(nil, saver, journal, zerolog.Nop()), saver, journal
}

func TestDispatcher_AppliesAndPersists(t *testing.T) {
	d, saver, journal := newTestDispatcher()

	next, changed := d.Dispatch(CreateDocument{Name: "Acme"})
	if !changed {
		t.Fatal("expected the creation to be applied")
	}
	if next.ActiveDocument() == nil {
		t.Fatal("expected an active board")
	}

	if len(saver.scheduled) != 1 || saver.scheduled[0] != next {
		t.Errorf("expected exactly the new snapshot to be scheduled, got %d schedules", len(saver.scheduled))
	}
	if len(journal.entries) != 1 {
		t.Fatalf("expected 1 journal entry, got %d", len(journal.entries))
	}
	entry := journal.entries[0]
	if entry.kind != "create_document" {
		t.Errorf("expected kind create_document, got %q", entry.kind)
	}
	if entry.documentID != next.ActiveDocumentID {
		t.Errorf("expected the entry to reference the new board, got %q", entry.documentID)
	}
	if !strings.Contains(entry.detail, "Acme") {
		t.Errorf("expected the detail to name the board, got %q", entry.detail)
	}
}

func TestDispatcher_RejectedActionSkipsPersistence(t *testing.T) {
	d, saver, journal := newTestDispatcher()
	before := d.Snapshot()

	next, changed := d.Dispatch(CreateDocument{Name: "   "})
	if changed {
		t.Fatal("expected a blank name to be rejected")
	}
	if next != before || d.Snapshot() != before {
		t.Error("expected the snapshot to stay put on rejection")
	}
	if len(saver.scheduled) != 0 {
		t.Errorf("expected no schedules on rejection, got %d", len(saver.scheduled))
	}
	if len(journal.entries) != 0 {
		t.Errorf("expected no journal entries on rejection, got %d", len(journal.entries))
	}
}

func TestDispatcher_WorksWithoutCollaborators(t *testing.T) {
	d := NewDispatcher(nil, nil, nil, zerolog.Nop())

	if _, changed := d.Dispatch(CreateDocument{Name: "Acme"}); !changed {
		t.Fatal("expected the dispatcher to work without saver and journal")
	}
	if d.Snapshot().ActiveDocument() == nil {
		t.Error("expected the state to advance")
	}
}

func TestDispatcher_SnapshotReflectsLatest(t *testing.T) {
	d, _, _ := newTestDispatcher()

	d.Dispatch(CreateDocument{Name: "Acme"})
	rootID := d.Snapshot().ActiveDocument().Root.ID
	next, _ := d.Dispatch(InsertNode{ParentID: rootID, Spec: board.NodeSpec{Type: board.TypeDepartment, Name: "Engineering"}})

	if d.Snapshot() != next {
		t.Error("expected Snapshot to return the latest state")
	}
}

func TestDispatcher_ConcurrentDispatchesSerialize(t *testing.T) {
	d, saver, _ := newTestDispatcher()
	d.Dispatch(CreateDocument{Name: "Acme"})
	rootID := d.Snapshot().ActiveDocument().Root.ID

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			d.Dispatch(InsertNode{
				ParentID: rootID,
				Spec:     board.NodeSpec{Type: board.TypeDepartment, Name: fmt.Sprintf("Department %d", i)},
			})
		}(i)
	}
	wg.Wait()

	root := d.Snapshot().ActiveDocument().Root
	if len(root.Children) != workers {
		t.Errorf("expected %d departments, got %d", workers, len(root.Children))
	}
	if len(saver.scheduled) != workers+1 {
		t.Errorf("expected %d schedules, got %d", workers+1, len(saver.scheduled))
	}
}
