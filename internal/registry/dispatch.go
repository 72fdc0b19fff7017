package registry

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Saver receives snapshots that changed and persists them on its own
// schedule. The dispatcher never blocks on it.
type Saver interface {
	Schedule(s *Snapshot)
}

// Journal records applied actions for the history log. Implementations
// must tolerate being called from the dispatch path, so they should be
// fast or fire-and-forget.
type Journal interface {
	Append(kind, documentID, detail string)
}

// Dispatcher serializes actions against a single snapshot. All tool
// handlers go through here, which keeps reduction race-free without
// any locking inside the reducer itself.
type Dispatcher struct {
	mu       sync.Mutex
	snapshot *Snapshot

	saver   Saver
	journal Journal
	log     zerolog.Logger
}

// NewDispatcher wires a dispatcher around an initial snapshot. Saver
// and journal may be nil when persistence is unavailable.
func NewDispatcher(initial *Snapshot, saver Saver, journal Journal, log zerolog.Logger) *Dispatcher {
	if initial == nil {
		initial = NewSnapshot()
	}
	return &Dispatcher{
		snapshot: initial,
		saver:    saver,
		journal:  journal,
		log:      log,
	}
}

// Snapshot returns the current state. The returned value is shared and
// must be treated as read-only, which the persistent engine already
// guarantees for anything reached through it.
func (d *Dispatcher) Snapshot() *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot
}

// Dispatch applies one action. The bool reports whether the action
// changed anything; rejected and no-op actions leave the state as is.
func (d *Dispatcher) Dispatch(action Action) (*Snapshot, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := Reduce(d.snapshot, action)
	if next == d.snapshot {
		d.log.Debug().Str("action", action.Kind()).Msg("action rejected or no-op")
		return d.snapshot, false
	}
	d.snapshot = next

	d.log.Debug().
		Str("action", action.Kind()).
		Str("active_board", next.ActiveDocumentID).
		Int("boards", len(next.Documents)).
		Msg("state changed")

	if d.journal != nil {
		d.journal.Append(action.Kind(), next.ActiveDocumentID, detailFor(action))
	}
	if d.saver != nil {
		d.saver.Schedule(next)
	}
	return next, true
}

// detailFor renders the one-line history detail for an applied action.
func detailFor(action Action) string {
	switch a := action.(type) {
	case CreateDocument:
		return fmt.Sprintf("created board %q", a.Name)
	case OpenDocument:
		return fmt.Sprintf("opened board %s", a.ID)
	case ReplaceDocument:
		return fmt.Sprintf("replaced board %s", a.Doc.ID)
	case AdoptDocument:
		return fmt.Sprintf("imported board %q", a.Doc.Name)
	case DeleteDocument:
		return fmt.Sprintf("deleted board %s", a.ID)
	case InsertNode:
		return fmt.Sprintf("added %s %q under %s", a.Spec.Type, a.Spec.Name, a.ParentID)
	case UpdateNode:
		return fmt.Sprintf("updated node %s", a.NodeID)
	case MoveNode:
		return fmt.Sprintf("moved node %s under %s", a.NodeID, a.NewParentID)
	case DeleteNode:
		return fmt.Sprintf("deleted node %s", a.NodeID)
	case OpenAutomationBoard:
		return fmt.Sprintf("opened automation board for node %s", a.NodeID)
	case ReturnToParentBoard:
		return "returned to parent board"
	case SelectNode:
		if a.NodeID == "" {
			return "cleared selection"
		}
		return fmt.Sprintf("selected node %s", a.NodeID)
	case DrillDown:
		return fmt.Sprintf("drilled into node %s", a.NodeID)
	case NavigateBreadcrumb:
		return fmt.Sprintf("navigated to breadcrumb %s", a.NodeID)
	case SetPositions:
		return fmt.Sprintf("repositioned %d node(s)", len(a.Positions))
	case SetZoom:
		return fmt.Sprintf("zoom set to %.2f", a.Zoom)
	case SetPan:
		return fmt.Sprintf("pan set to (%.1f, %.1f)", a.Pan.X, a.Pan.Y)
	case SetLayerColor:
		return fmt.Sprintf("layer %s coloured %s", a.Type, a.Color)
	case SetLayoutMode:
		return fmt.Sprintf("layout set to %s", a.Mode)
	case Reset:
		return "workspace reset"
	default:
		return action.Kind()
	}
}
