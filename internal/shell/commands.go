package shell

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/blueprint"
	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
)

// active returns the current snapshot and its active board, or an error
// telling the user how to get one.
func (s *Shell) active() (*registry.Snapshot, *board.Document, error) {
	snap := s.dispatcher.Snapshot()
	doc := snap.ActiveDocument()
	if doc == nil {
		return nil, nil, fmt.Errorf("no active board — 'new' or 'open' one first")
	}
	return snap, doc, nil
}

func (s *Shell) handleNew(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: new <name>")
	}
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("the board name cannot be empty")
	}

	next, ok := s.dispatcher.Dispatch(registry.CreateDocument{Name: name})
	if !ok {
		return fmt.Errorf("the board was not created")
	}
	doc := next.ActiveDocument()
	fmt.Fprintf(s.out, "Board created and activated: %q (id: %s, root node: %s)\n", doc.Name, doc.ID, doc.Root.ID)
	return nil
}

func (s *Shell) handleList(args []string) error {
	snap := s.dispatcher.Snapshot()
	if len(snap.Documents) == 0 {
		fmt.Fprintln(s.out, "No boards yet. 'new <name>' or 'import <file>' starts one.")
		return nil
	}

	fmt.Fprintf(s.out, "%d board(s):\n", len(snap.Documents))
	for _, d := range snap.Documents {
		marker := "  "
		if d.ID == snap.ActiveDocumentID {
			marker = "* "
		}
		fmt.Fprintf(s.out, "%s%s  %q (%s, %d nodes)\n", marker, d.ID, d.Name, d.Kind, board.Count(d.Root))
		if d.Kind == board.KindAutomation && d.ParentBoardID != "" {
			fmt.Fprintf(s.out, "      sub-board of %s\n", d.ParentBoardID)
		}
	}
	return nil
}

func (s *Shell) handleOpen(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: open <board id or name>")
	}

	doc, err := s.dispatcher.Snapshot().ResolveDocument(args[0])
	if err != nil {
		return err
	}
	s.dispatcher.Dispatch(registry.OpenDocument{ID: doc.ID})
	fmt.Fprintf(s.out, "Active board: %q (id: %s, %d nodes)\n", doc.Name, doc.ID, board.Count(doc.Root))
	return nil
}

func (s *Shell) handleDrop(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: drop <board id or name>")
	}

	snap := s.dispatcher.Snapshot()
	doc, err := snap.ResolveDocument(args[0])
	if err != nil {
		return err
	}
	next, ok := s.dispatcher.Dispatch(registry.DeleteDocument{ID: doc.ID})
	if !ok {
		return fmt.Errorf("board %q was not deleted", args[0])
	}

	msg := fmt.Sprintf("Board %q deleted", doc.Name)
	if removed := len(snap.Documents) - len(next.Documents); removed > 1 {
		msg += fmt.Sprintf(" along with %d linked sub-board(s)", removed-1)
	}
	if active := next.ActiveDocument(); active != nil && next.ActiveDocumentID != snap.ActiveDocumentID {
		msg += fmt.Sprintf(". Active board is now %q", active.Name)
	}
	fmt.Fprintln(s.out, msg+".")
	return nil
}

func (s *Shell) handleTree(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: tree [node-id]")
	}
	_, doc, err := s.active()
	if err != nil {
		return err
	}

	root := doc.Root
	if len(args) == 1 {
		root = board.Find(doc.Root, args[0])
		if root == nil {
			return fmt.Errorf("node %q not found on board %q", args[0], doc.Name)
		}
	}

	fmt.Fprintf(s.out, "%s (%s board, %d nodes)\n\n", doc.Name, doc.Kind, board.Count(doc.Root))
	fmt.Fprint(s.out, board.Outline(root))
	return nil
}

func (s *Shell) handleAdd(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: add <type> <name> [parent-id]")
	}

	typ := board.NodeType(args[0])
	if err := board.ValidateNodeType(typ); err != nil {
		return err
	}
	name := strings.TrimSpace(args[1])
	if name == "" {
		return fmt.Errorf("the node name cannot be empty")
	}

	snap, doc, err := s.active()
	if err != nil {
		return err
	}

	parentID := ""
	if len(args) == 3 {
		parentID = args[2]
	}
	if parentID == "" {
		parentID = snap.UI.SelectedNodeID
	}
	if parentID == "" {
		parentID = doc.Root.ID
	}
	parent := board.Find(doc.Root, parentID)
	if parent == nil {
		return fmt.Errorf("parent node %q not found on the active board", parentID)
	}
	if !board.CanNest(parent.Type, typ, doc.Kind) {
		allowed := board.AllowedChildren(parent.Type, doc.Kind)
		if len(allowed) == 0 {
			return fmt.Errorf("a %s does not accept children", parent.Type)
		}
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		return fmt.Errorf("a %s cannot go under a %s (allowed there: %s)", typ, parent.Type, strings.Join(names, ", "))
	}

	next, ok := s.dispatcher.Dispatch(registry.InsertNode{
		ParentID: parentID,
		Spec:     board.NodeSpec{Type: typ, Name: name},
	})
	if !ok {
		return fmt.Errorf("the board rejected the node")
	}

	created := board.Find(next.ActiveDocument().Root, next.UI.SelectedNodeID)
	fmt.Fprintf(s.out, "Added %s %q (id: %s) under %q. It is now selected.\n", created.Type, created.Name, created.ID, parent.Name)
	return nil
}

func (s *Shell) handleMove(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: mv <node-id> <new-parent-id>")
	}
	id, newParentID := args[0], args[1]

	_, doc, err := s.active()
	if err != nil {
		return err
	}
	node := board.Find(doc.Root, id)
	if node == nil {
		return fmt.Errorf("node %q not found on the active board", id)
	}
	if node == doc.Root {
		return fmt.Errorf("the root node cannot be moved")
	}
	dest := board.Find(doc.Root, newParentID)
	if dest == nil {
		return fmt.Errorf("destination node %q not found on the active board", newParentID)
	}
	if board.Find(node, newParentID) != nil {
		return fmt.Errorf("cannot move %q inside its own subtree", node.Name)
	}
	if !board.CanNest(dest.Type, node.Type, doc.Kind) {
		return fmt.Errorf("a %s cannot go under a %s", node.Type, dest.Type)
	}

	if _, ok := s.dispatcher.Dispatch(registry.MoveNode{NodeID: id, NewParentID: newParentID}); !ok {
		return fmt.Errorf("the move was rejected")
	}
	fmt.Fprintf(s.out, "Moved %s %q under %q.\n", node.Type, node.Name, dest.Name)
	return nil
}

func (s *Shell) handleRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <node-id>")
	}
	id := args[0]

	snap, doc, err := s.active()
	if err != nil {
		return err
	}
	node := board.Find(doc.Root, id)
	if node == nil {
		return fmt.Errorf("node %q not found on the active board", id)
	}
	if node == doc.Root {
		return fmt.Errorf("the root node cannot be deleted; 'drop' removes the whole board")
	}

	removed := board.Count(node)
	next, ok := s.dispatcher.Dispatch(registry.DeleteNode{NodeID: id})
	if !ok {
		return fmt.Errorf("the deletion was rejected")
	}

	msg := fmt.Sprintf("Deleted %s %q (%d node(s) removed)", node.Type, node.Name, removed)
	if boards := len(snap.Documents) - len(next.Documents); boards > 0 {
		msg += fmt.Sprintf(" and %d linked sub-board(s)", boards)
	}
	fmt.Fprintln(s.out, msg+".")
	return nil
}

func (s *Shell) handleSelect(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: select [node-id]")
	}
	_, doc, err := s.active()
	if err != nil {
		return err
	}

	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	if id != "" && board.Find(doc.Root, id) == nil {
		return fmt.Errorf("node %q not found on the active board", id)
	}

	next, ok := s.dispatcher.Dispatch(registry.SelectNode{NodeID: id})
	switch {
	case !ok:
		fmt.Fprintln(s.out, "Selection unchanged.")
	case id == "":
		fmt.Fprintln(s.out, "Selection cleared.")
	default:
		n := board.Find(next.ActiveDocument().Root, id)
		fmt.Fprintf(s.out, "Selected %s %q.\n", n.Type, n.Name)
	}
	return nil
}

func (s *Shell) handleDrill(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: drill <node-id>")
	}
	id := args[0]

	snap, doc, err := s.active()
	if err != nil {
		return err
	}
	if board.Find(doc.Root, id) == nil {
		return fmt.Errorf("node %q not found on the active board", id)
	}

	next, ok := s.dispatcher.Dispatch(registry.DrillDown{NodeID: id})
	if !ok {
		fmt.Fprintf(s.out, "Already there. Trail: %s\n", board.TrailNames(doc.Root, snap.UI.BreadcrumbIDs))
		return nil
	}
	fmt.Fprintf(s.out, "Trail: %s\n", board.TrailNames(doc.Root, next.UI.BreadcrumbIDs))
	return nil
}

func (s *Shell) handleAuto(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: auto <node-id>")
	}
	id := args[0]

	snap, doc, err := s.active()
	if err != nil {
		return err
	}
	node := board.Find(doc.Root, id)
	if node == nil {
		return fmt.Errorf("node %q not found on the active board", id)
	}
	if node.Type != board.TypeAutomation {
		return fmt.Errorf("node %q is a %s; only automation nodes have sub-boards", node.Name, node.Type)
	}

	existed := node.AutomationBoardID != "" && snap.Document(node.AutomationBoardID) != nil
	next, ok := s.dispatcher.Dispatch(registry.OpenAutomationBoard{NodeID: id})
	if !ok {
		return fmt.Errorf("the sub-board could not be opened")
	}

	sub := next.ActiveDocument()
	verb := "Created and opened"
	if existed {
		verb = "Opened"
	}
	fmt.Fprintf(s.out, "%s sub-board %q (id: %s). 'back' returns.\n", verb, sub.Name, sub.ID)
	return nil
}

// handleBack is context sensitive: on an automation sub-board it returns
// to the parent board, otherwise it steps the breadcrumb trail up one
// level.
func (s *Shell) handleBack(args []string) error {
	snap, doc, err := s.active()
	if err != nil {
		return err
	}

	if doc.Kind == board.KindAutomation {
		next, ok := s.dispatcher.Dispatch(registry.ReturnToParentBoard{})
		if !ok {
			return fmt.Errorf("the parent board no longer exists; 'open' another board")
		}
		parent := next.ActiveDocument()
		msg := fmt.Sprintf("Back on %q", parent.Name)
		if next.UI.SelectedNodeID != "" {
			if n := board.Find(parent.Root, next.UI.SelectedNodeID); n != nil {
				msg += fmt.Sprintf(", automation node %q selected", n.Name)
			}
		}
		fmt.Fprintln(s.out, msg+".")
		return nil
	}

	trail := snap.UI.BreadcrumbIDs
	if len(trail) < 2 {
		fmt.Fprintln(s.out, "Already at the top of the trail.")
		return nil
	}
	next, ok := s.dispatcher.Dispatch(registry.NavigateBreadcrumb{NodeID: trail[len(trail)-2]})
	if !ok {
		return fmt.Errorf("could not step the trail back")
	}
	fmt.Fprintf(s.out, "Trail: %s\n", board.TrailNames(doc.Root, next.UI.BreadcrumbIDs))
	return nil
}

func (s *Shell) handleZoom(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: zoom <factor>")
	}
	zoom, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("zoom factor %q is not a number", args[0])
	}
	if _, _, err := s.active(); err != nil {
		return err
	}

	next, ok := s.dispatcher.Dispatch(registry.SetZoom{Zoom: zoom})
	if !ok {
		if s.dispatcher.Snapshot().UI.Zoom == zoom {
			fmt.Fprintf(s.out, "Zoom already at %.2f.\n", zoom)
			return nil
		}
		return fmt.Errorf("zoom %v was rejected; it must be a positive finite number", zoom)
	}
	fmt.Fprintf(s.out, "Zoom set to %.2f.\n", next.UI.Zoom)
	return nil
}

func (s *Shell) handleStatus(args []string) error {
	snap := s.dispatcher.Snapshot()
	if len(snap.Documents) == 0 {
		fmt.Fprintln(s.out, "Empty workspace: no boards yet. 'new <name>' or 'import <file>' starts one.")
		return nil
	}

	doc := snap.ActiveDocument()
	total := 0
	for _, d := range snap.Documents {
		total += board.Count(d.Root)
	}

	fmt.Fprintf(s.out, "Active board: %q (%s, %d nodes)\n", doc.Name, doc.Kind, board.Count(doc.Root))
	fmt.Fprintf(s.out, "Workspace: %d board(s), %d node(s) total\n", len(snap.Documents), total)
	if snap.UI.SelectedNodeID != "" {
		if n := board.Find(doc.Root, snap.UI.SelectedNodeID); n != nil {
			fmt.Fprintf(s.out, "Selected: %s %q (id: %s)\n", n.Type, n.Name, n.ID)
		}
	} else {
		fmt.Fprintln(s.out, "Selected: nothing")
	}
	fmt.Fprintf(s.out, "Trail: %s\n", board.TrailNames(doc.Root, snap.UI.BreadcrumbIDs))
	fmt.Fprintf(s.out, "View: zoom %.2f, pan (%.1f, %.1f), %s layout\n",
		snap.UI.Zoom, snap.UI.Pan.X, snap.UI.Pan.Y, doc.LayoutMode)
	if line := board.CountSummary(board.CountByType(doc.Root)); line != "" {
		fmt.Fprintf(s.out, "Nodes: %s\n", line)
	}
	return nil
}

func (s *Shell) handleImport(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: import <file> [template|document]")
	}

	payload, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	format := "template"
	if len(args) == 2 {
		format = args[1]
	}

	var doc *board.Document
	switch format {
	case "template":
		bp, err := blueprint.Parse(payload)
		if err != nil {
			return err
		}
		doc, err = blueprint.Build(bp, "")
		if err != nil {
			return err
		}
	case "document":
		doc, err = board.ImportDocument(payload)
		if err != nil {
			return err
		}
		if s.dispatcher.Snapshot().Document(doc.ID) != nil {
			return fmt.Errorf("a board with id %q already exists; 'drop' it first or change the file's id", doc.ID)
		}
	default:
		return fmt.Errorf("format must be template or document, not %q", format)
	}

	next, ok := s.dispatcher.Dispatch(registry.AdoptDocument{Doc: doc})
	if !ok {
		return fmt.Errorf("the board could not be adopted")
	}
	adopted := next.ActiveDocument()
	fmt.Fprintf(s.out, "Imported board %q (id: %s): %s.\n", adopted.Name, adopted.ID, board.CountSummary(board.CountByType(adopted.Root)))
	return nil
}

func (s *Shell) handleExport(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: export <file> [board id or name]")
	}

	snap := s.dispatcher.Snapshot()
	var doc *board.Document
	if len(args) == 2 {
		var err error
		doc, err = snap.ResolveDocument(args[1])
		if err != nil {
			return err
		}
	} else {
		doc = snap.ActiveDocument()
		if doc == nil {
			return fmt.Errorf("no active board — 'new' or 'open' one first")
		}
	}

	data, err := board.ExportDocument(doc)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	fmt.Fprintf(s.out, "Exported %q to %s (%d bytes).\n", doc.Name, args[0], len(data))
	return nil
}

func (s *Shell) handleSearch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: search <query>")
	}
	if s.store == nil {
		return fmt.Errorf("search needs the on-disk workspace, which is not available in this session")
	}

	if s.saver != nil {
		s.saver.Flush()
	}
	hits, err := s.store.SearchNodes(strings.Join(args, " "), 10)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(hits) == 0 {
		fmt.Fprintln(s.out, "No nodes match the query.")
		return nil
	}

	fmt.Fprintf(s.out, "Found %d node(s):\n", len(hits))
	for i, h := range hits {
		fmt.Fprintf(s.out, "[%d] %s %q on board %q\n    node id: %s | board id: %s\n",
			i+1, h.Type, h.Name, h.BoardName, h.NodeID, h.BoardID)
		if h.Description != "" {
			fmt.Fprintf(s.out, "    %s\n", h.Description)
		}
	}
	return nil
}

func (s *Shell) handleHistory(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: history [n]")
	}
	if s.store == nil {
		return fmt.Errorf("history needs the on-disk workspace, which is not available in this session")
	}

	limit := 20
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("history size %q is not a positive number", args[0])
		}
		limit = n
	}

	entries, err := s.store.RecentHistory(limit)
	if err != nil {
		return fmt.Errorf("history read failed: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No actions recorded yet.")
		return nil
	}

	fmt.Fprintf(s.out, "Last %d action(s), newest first:\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(s.out, "%s  %s", e.CreatedAt, e.Action)
		if e.Detail != "" {
			fmt.Fprintf(s.out, ": %s", e.Detail)
		}
		if e.BoardID != "" {
			fmt.Fprintf(s.out, " (board %s)", e.BoardID)
		}
		fmt.Fprintln(s.out)
	}
	return nil
}
