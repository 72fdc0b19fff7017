package registry

import (
	"math"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/board"
)

// Reduce applies one action to a snapshot and returns the next state.
// It is pure and total: no mutation of the input, no I/O, no error
// channel. Whenever the action is invalid or changes nothing, the SAME
// snapshot pointer comes back — callers detect rejection by reference
// equality, exactly like the tree engine underneath.
func Reduce(s *Snapshot, action Action) *Snapshot {
	if s == nil || action == nil {
		return s
	}

	switch a := action.(type) {
	case CreateDocument:
		return reduceCreateDocument(s, a)
	case OpenDocument:
		return reduceOpenDocument(s, a)
	case ReplaceDocument:
		return reduceReplaceDocument(s, a)
	case AdoptDocument:
		return reduceAdoptDocument(s, a)
	case DeleteDocument:
		return reduceDeleteDocument(s, a)
	case InsertNode:
		return reduceInsertNode(s, a)
	case UpdateNode:
		return reduceUpdateNode(s, a)
	case MoveNode:
		return reduceMoveNode(s, a)
	case DeleteNode:
		return reduceDeleteNode(s, a)
	case OpenAutomationBoard:
		return reduceOpenAutomationBoard(s, a)
	case ReturnToParentBoard:
		return reduceReturnToParentBoard(s)
	case SelectNode:
		return reduceSelectNode(s, a)
	case DrillDown:
		return reduceDrillDown(s, a)
	case NavigateBreadcrumb:
		return reduceNavigateBreadcrumb(s, a)
	case SetPositions:
		return reduceSetPositions(s, a)
	case SetZoom:
		return reduceSetZoom(s, a)
	case SetPan:
		return reduceSetPan(s, a)
	case SetLayerColor:
		return reduceSetLayerColor(s, a)
	case SetLayoutMode:
		return reduceSetLayoutMode(s, a)
	case Reset:
		return reduceReset(s)
	default:
		return s
	}
}

// --- Document reductions ---

func reduceCreateDocument(s *Snapshot, a CreateDocument) *Snapshot {
	if strings.TrimSpace(a.Name) == "" {
		return s
	}
	doc := board.NewDocument(a.Name, a.Description, a.CreatedBy)

	c := s.clone()
	c.Documents = append(c.Documents, doc)
	c.ActiveDocumentID = doc.ID
	c.UI = uiFor(doc)
	return c
}

func reduceOpenDocument(s *Snapshot, a OpenDocument) *Snapshot {
	if a.ID == s.ActiveDocumentID {
		return s
	}
	doc := s.Document(a.ID)
	if doc == nil {
		return s
	}

	c := s.clone()
	c.ActiveDocumentID = doc.ID
	c.UI = uiFor(doc)
	return c
}

func reduceReplaceDocument(s *Snapshot, a ReplaceDocument) *Snapshot {
	if a.Doc == nil || board.ValidateDocument(a.Doc) != nil {
		return s
	}
	if s.Document(a.Doc.ID) == nil {
		return s
	}

	c := s.withDocument(a.Doc)
	if c.ActiveDocumentID == a.Doc.ID {
		c.UI = revalidateUI(c.UI, a.Doc)
	}
	return c
}

func reduceAdoptDocument(s *Snapshot, a AdoptDocument) *Snapshot {
	if a.Doc == nil || board.ValidateDocument(a.Doc) != nil {
		return s
	}
	if s.Document(a.Doc.ID) != nil {
		return s
	}

	c := s.clone()
	c.Documents = append(c.Documents, a.Doc)
	c.ActiveDocumentID = a.Doc.ID
	c.UI = uiFor(a.Doc)
	return c
}

func reduceDeleteDocument(s *Snapshot, a DeleteDocument) *Snapshot {
	doc := s.Document(a.ID)
	if doc == nil {
		return s
	}

	doomed := cascadeSet(s.Documents, a.ID)
	kept := make([]*board.Document, 0, len(s.Documents))
	for _, d := range s.Documents {
		if !doomed[d.ID] {
			kept = append(kept, d)
		}
	}

	c := s.clone()
	c.Documents = kept
	if doomed[c.ActiveDocumentID] {
		c.ActiveDocumentID = fallbackActive(doc, kept, doomed)
		if next := c.ActiveDocument(); next != nil {
			c.UI = uiFor(next)
		} else {
			c.UI = UIState{BreadcrumbIDs: []string{}, Zoom: 1}
		}
	}
	return c
}

// cascadeSet returns the ids of the given board and of every board
// reachable from it through parentBoardId back-links, so deleting a
// board takes its whole sub-board lineage with it.
func cascadeSet(docs []*board.Document, rootID string) map[string]bool {
	doomed := map[string]bool{rootID: true}
	for changed := true; changed; {
		changed = false
		for _, d := range docs {
			if d.ParentBoardID != "" && doomed[d.ParentBoardID] && !doomed[d.ID] {
				doomed[d.ID] = true
				changed = true
			}
		}
	}
	return doomed
}

// fallbackActive picks the board to activate after the active one was
// deleted: the deleted board's own parent when it survives, else the
// first remaining board, else none.
func fallbackActive(deleted *board.Document, kept []*board.Document, doomed map[string]bool) string {
	if deleted.ParentBoardID != "" && !doomed[deleted.ParentBoardID] {
		for _, d := range kept {
			if d.ID == deleted.ParentBoardID {
				return d.ID
			}
		}
	}
	if len(kept) > 0 {
		return kept[0].ID
	}
	return ""
}

// --- Node reductions ---

func reduceInsertNode(s *Snapshot, a InsertNode) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil {
		return s
	}
	next, created := board.Insert(doc.Root, a.ParentID, a.Spec, doc.Kind)
	if next == doc.Root {
		return s
	}

	updated := doc.WithRoot(next)
	c := s.withDocument(updated)
	ui := revalidateUI(c.UI, updated)
	ui.SelectedNodeID = created.ID
	c.UI = ui
	return c
}

func reduceUpdateNode(s *Snapshot, a UpdateNode) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil {
		return s
	}
	next := board.Update(doc.Root, a.NodeID, a.Patch)
	if next == doc.Root {
		return s
	}

	updated := doc.WithRoot(next)
	c := s.withDocument(updated)
	c.UI = revalidateUI(c.UI, updated)
	return c
}

func reduceMoveNode(s *Snapshot, a MoveNode) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil {
		return s
	}
	next := board.Move(doc.Root, a.NodeID, a.NewParentID, doc.Kind)
	if next == doc.Root {
		return s
	}

	updated := doc.WithRoot(next)
	c := s.withDocument(updated)
	c.UI = revalidateUI(c.UI, updated)
	return c
}

func reduceDeleteNode(s *Snapshot, a DeleteNode) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil {
		return s
	}

	// Collect sub-board links before the subtree disappears.
	links := board.AutomationBoardIDs(doc.Root, a.NodeID)

	next := board.Delete(doc.Root, a.NodeID)
	if next == doc.Root {
		return s
	}

	updated := doc.WithRoot(next)
	c := s.withDocument(updated)

	if len(links) > 0 {
		doomed := make(map[string]bool)
		for _, id := range links {
			for did := range cascadeSet(c.Documents, id) {
				doomed[did] = true
			}
		}
		kept := make([]*board.Document, 0, len(c.Documents))
		for _, d := range c.Documents {
			if !doomed[d.ID] {
				kept = append(kept, d)
			}
		}
		c.Documents = kept
	}

	c.UI = revalidateUI(c.UI, updated)
	return c
}

// --- Automation sub-board reductions ---

func reduceOpenAutomationBoard(s *Snapshot, a OpenAutomationBoard) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil {
		return s
	}
	node := board.Find(doc.Root, a.NodeID)
	if node == nil || node.Type != board.TypeAutomation {
		return s
	}

	// Follow a live link.
	if node.AutomationBoardID != "" {
		if target := s.Document(node.AutomationBoardID); target != nil {
			c := s.clone()
			c.ActiveDocumentID = target.ID
			c.UI = uiFor(target)
			return c
		}
		// Dangling link: fall through and synthesize a replacement.
	}

	// Synthesize the sub-board and link it in one reduction, so no
	// intermediate snapshot ever shows the board without the link.
	sub := board.NewAutomationDocument(node, doc)
	linkID := sub.ID
	next := board.Update(doc.Root, node.ID, board.NodePatch{AutomationBoardID: &linkID})
	if next == doc.Root {
		return s
	}

	c := s.withDocument(doc.WithRoot(next))
	c.Documents = append(c.Documents, sub)
	c.ActiveDocumentID = sub.ID
	c.UI = uiFor(sub)
	return c
}

func reduceReturnToParentBoard(s *Snapshot) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil || doc.Kind != board.KindAutomation || doc.ParentBoardID == "" {
		return s
	}
	parent := s.Document(doc.ParentBoardID)
	if parent == nil {
		return s
	}

	c := s.clone()
	c.ActiveDocumentID = parent.ID
	ui := uiFor(parent)
	if doc.ParentAutomationNodeID != "" && board.Find(parent.Root, doc.ParentAutomationNodeID) != nil {
		ui.SelectedNodeID = doc.ParentAutomationNodeID
	}
	c.UI = ui
	return c
}

// --- View reductions ---

func reduceSelectNode(s *Snapshot, a SelectNode) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil {
		return s
	}
	if a.NodeID == s.UI.SelectedNodeID {
		return s
	}
	if a.NodeID != "" && board.Find(doc.Root, a.NodeID) == nil {
		return s
	}

	c := s.clone()
	c.UI.SelectedNodeID = a.NodeID
	return c
}

func reduceDrillDown(s *Snapshot, a DrillDown) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil || board.Find(doc.Root, a.NodeID) == nil {
		return s
	}
	trail := s.UI.BreadcrumbIDs
	if len(trail) > 0 && trail[len(trail)-1] == a.NodeID {
		return s
	}

	c := s.clone()
	// A node already in the trail truncates back to itself; anything
	// else pushes. Either way the trail is freshly allocated, so older
	// snapshots never share backing arrays with newer ones.
	if idx := indexOf(trail, a.NodeID); idx >= 0 {
		c.UI.BreadcrumbIDs = copyTrail(trail[:idx+1])
	} else {
		next := make([]string, len(trail), len(trail)+1)
		copy(next, trail)
		c.UI.BreadcrumbIDs = append(next, a.NodeID)
	}
	return c
}

func reduceNavigateBreadcrumb(s *Snapshot, a NavigateBreadcrumb) *Snapshot {
	if s.ActiveDocument() == nil {
		return s
	}
	trail := s.UI.BreadcrumbIDs
	idx := indexOf(trail, a.NodeID)
	if idx < 0 || idx == len(trail)-1 {
		return s
	}

	c := s.clone()
	c.UI.BreadcrumbIDs = copyTrail(trail[:idx+1])
	return c
}

func indexOf(trail []string, id string) int {
	for i, v := range trail {
		if v == id {
			return i
		}
	}
	return -1
}

func copyTrail(trail []string) []string {
	out := make([]string, len(trail))
	copy(out, trail)
	return out
}

func reduceSetPositions(s *Snapshot, a SetPositions) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil {
		return s
	}
	next := board.SetPositions(doc.Root, a.Positions)
	if next == doc.Root {
		return s
	}

	updated := doc.WithRoot(next)
	c := s.withDocument(updated)
	c.UI = revalidateUI(c.UI, updated)
	return c
}

func reduceSetZoom(s *Snapshot, a SetZoom) *Snapshot {
	if s.ActiveDocument() == nil {
		return s
	}
	if math.IsNaN(a.Zoom) || math.IsInf(a.Zoom, 0) || a.Zoom <= 0 {
		return s
	}
	if a.Zoom == s.UI.Zoom {
		return s
	}

	c := s.clone()
	c.UI.Zoom = a.Zoom
	return c
}

func reduceSetPan(s *Snapshot, a SetPan) *Snapshot {
	if s.ActiveDocument() == nil {
		return s
	}
	if a.Pan == s.UI.Pan {
		return s
	}

	c := s.clone()
	c.UI.Pan = a.Pan
	return c
}

func reduceSetLayerColor(s *Snapshot, a SetLayerColor) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil {
		return s
	}
	if board.ValidateNodeType(a.Type) != nil {
		return s
	}
	color := strings.TrimSpace(a.Color)
	if color == "" || doc.LayerColors[a.Type] == color {
		return s
	}

	return s.withDocument(doc.WithLayerColor(a.Type, color))
}

func reduceSetLayoutMode(s *Snapshot, a SetLayoutMode) *Snapshot {
	doc := s.ActiveDocument()
	if doc == nil {
		return s
	}
	if board.ValidateLayoutMode(a.Mode) != nil || doc.LayoutMode == a.Mode {
		return s
	}

	return s.withDocument(doc.WithLayoutMode(a.Mode))
}

func reduceReset(s *Snapshot) *Snapshot {
	if s.isEmpty() {
		return s
	}
	return NewSnapshot()
}
