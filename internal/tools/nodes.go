package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── AddNodeTool ────────────────────────────────────────────────────────────

// AddNodeTool handles the node_add MCP tool.
type AddNodeTool struct {
	dispatcher *registry.Dispatcher
}

// NewAddNodeTool creates an AddNodeTool with the given dispatcher.
func NewAddNodeTool(d *registry.Dispatcher) *AddNodeTool {
	return &AddNodeTool{dispatcher: d}
}

// Definition returns the MCP tool definition for node_add.
func (t *AddNodeTool) Definition() mcp.Tool {
	return mcp.NewTool("node_add",
		mcp.WithDescription(
			"Add a node to the active board. The hierarchy policy decides what fits where: "+
				"departments under the organisation, teams and agent swarms under departments, "+
				"people and tools under teams, and workflow > process > agent > automation chains.",
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Node type: "+strings.Join(board.NodeTypeNames(), ", ")),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Display name"),
		),
		mcp.WithString("parent_id",
			mcp.Description("Parent node id (default: the selected node, else the board root)"),
		),
		mcp.WithString("description",
			mcp.Description("Free-text description"),
		),
		mcp.WithString("department_head",
			mcp.Description("Head of department (department nodes)"),
		),
		mcp.WithString("workflow_type",
			mcp.Description("How a workflow executes: agentic or linear (workflow nodes)"),
		),
		mcp.WithString("documentation_url",
			mcp.Description("Link to external documentation"),
		),
		mcp.WithNumber("x",
			mcp.Description("Canvas x coordinate"),
		),
		mcp.WithNumber("y",
			mcp.Description("Canvas y coordinate"),
		),
	)
}

// Handle processes the node_add tool call.
func (t *AddNodeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typ := board.NodeType(req.GetString("type", ""))
	if err := board.ValidateNodeType(typ); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	snap := t.dispatcher.Snapshot()
	doc := snap.ActiveDocument()
	if doc == nil {
		return mcp.NewToolResultError("no active board — create or open one first"), nil
	}

	parentID := req.GetString("parent_id", "")
	if parentID == "" {
		parentID = snap.UI.SelectedNodeID
	}
	if parentID == "" {
		parentID = doc.Root.ID
	}
	parent := board.Find(doc.Root, parentID)
	if parent == nil {
		return mcp.NewToolResultError(fmt.Sprintf("parent node %q not found on the active board", parentID)), nil
	}
	if !board.CanNest(parent.Type, typ, doc.Kind) {
		allowed := board.AllowedChildren(parent.Type, doc.Kind)
		if len(allowed) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("a %s does not accept children", parent.Type)), nil
		}
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		return mcp.NewToolResultError(fmt.Sprintf(
			"a %s cannot go under a %s (allowed there: %s)", typ, parent.Type, strings.Join(names, ", "),
		)), nil
	}

	var workflowType board.WorkflowType
	if v := req.GetString("workflow_type", ""); v != "" {
		workflowType = board.WorkflowType(v)
		if err := board.ValidateWorkflowType(workflowType); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	x, _ := floatArg(req, "x")
	y, _ := floatArg(req, "y")

	next, ok := t.dispatcher.Dispatch(registry.InsertNode{
		ParentID: parentID,
		Spec: board.NodeSpec{
			Type: typ,
			Name: name,
			Meta: board.Meta{
				Description:      req.GetString("description", ""),
				DepartmentHead:   req.GetString("department_head", ""),
				WorkflowType:     workflowType,
				DocumentationURL: req.GetString("documentation_url", ""),
			},
			Position: board.Position{X: x, Y: y},
		},
	})
	if !ok {
		return mcp.NewToolResultError("the board rejected the node"), nil
	}

	created := board.Find(next.ActiveDocument().Root, next.UI.SelectedNodeID)
	return mcp.NewToolResultText(fmt.Sprintf(
		"Added %s %q (id: %s) under %q. It is now selected.", created.Type, created.Name, created.ID, parent.Name,
	)), nil
}

// ─── UpdateNodeTool ─────────────────────────────────────────────────────────

// UpdateNodeTool handles the node_update MCP tool.
type UpdateNodeTool struct {
	dispatcher *registry.Dispatcher
}

// NewUpdateNodeTool creates an UpdateNodeTool with the given dispatcher.
func NewUpdateNodeTool(d *registry.Dispatcher) *UpdateNodeTool {
	return &UpdateNodeTool{dispatcher: d}
}

// Definition returns the MCP tool definition for node_update.
func (t *UpdateNodeTool) Definition() mcp.Tool {
	return mcp.NewTool("node_update",
		mcp.WithDescription(
			"Update a node on the active board. Only provided fields are changed.",
		),
		mcp.WithString("node_id",
			mcp.Required(),
			mcp.Description("Node id to update"),
		),
		mcp.WithString("name",
			mcp.Description("New display name"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("department_head",
			mcp.Description("New head of department"),
		),
		mcp.WithString("workflow_type",
			mcp.Description("New workflow execution style: agentic or linear"),
		),
		mcp.WithString("documentation_url",
			mcp.Description("New documentation link"),
		),
		mcp.WithNumber("x",
			mcp.Description("New canvas x coordinate"),
		),
		mcp.WithNumber("y",
			mcp.Description("New canvas y coordinate"),
		),
	)
}

// Handle processes the node_update tool call.
func (t *UpdateNodeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("node_id", "")
	if id == "" {
		return mcp.NewToolResultError("'node_id' is required"), nil
	}

	snap := t.dispatcher.Snapshot()
	doc := snap.ActiveDocument()
	if doc == nil {
		return mcp.NewToolResultError("no active board — create or open one first"), nil
	}
	current := board.Find(doc.Root, id)
	if current == nil {
		return mcp.NewToolResultError(fmt.Sprintf("node %q not found on the active board", id)), nil
	}

	patch := board.NodePatch{}
	var changed []string

	if v := strings.TrimSpace(req.GetString("name", "")); v != "" {
		patch.Name = &v
		changed = append(changed, "name")
	}
	if v := req.GetString("description", ""); v != "" {
		patch.Description = &v
		changed = append(changed, "description")
	}
	if v := req.GetString("department_head", ""); v != "" {
		patch.DepartmentHead = &v
		changed = append(changed, "department_head")
	}
	if v := req.GetString("workflow_type", ""); v != "" {
		workflowType := board.WorkflowType(v)
		if err := board.ValidateWorkflowType(workflowType); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		patch.WorkflowType = &workflowType
		changed = append(changed, "workflow_type")
	}
	if v := req.GetString("documentation_url", ""); v != "" {
		patch.DocumentationURL = &v
		changed = append(changed, "documentation_url")
	}
	x, xok := floatArg(req, "x")
	y, yok := floatArg(req, "y")
	if xok || yok {
		pos := current.Position
		if xok {
			pos.X = x
		}
		if yok {
			pos.Y = y
		}
		patch.Position = &pos
		changed = append(changed, "position")
	}

	if len(changed) == 0 {
		return mcp.NewToolResultError("at least one field to update is required"), nil
	}

	next, ok := t.dispatcher.Dispatch(registry.UpdateNode{NodeID: id, Patch: patch})
	if !ok {
		return mcp.NewToolResultError("the update was rejected"), nil
	}

	updated := board.Find(next.ActiveDocument().Root, id)
	return mcp.NewToolResultText(fmt.Sprintf(
		"Node %q updated (%s).", updated.Name, strings.Join(changed, ", "),
	)), nil
}

// ─── MoveNodeTool ───────────────────────────────────────────────────────────

// MoveNodeTool handles the node_move MCP tool.
type MoveNodeTool struct {
	dispatcher *registry.Dispatcher
}

// NewMoveNodeTool creates a MoveNodeTool with the given dispatcher.
func NewMoveNodeTool(d *registry.Dispatcher) *MoveNodeTool {
	return &MoveNodeTool{dispatcher: d}
}

// Definition returns the MCP tool definition for node_move.
func (t *MoveNodeTool) Definition() mcp.Tool {
	return mcp.NewTool("node_move",
		mcp.WithDescription(
			"Move a node (with its whole subtree) under a new parent on the active board. "+
				"The hierarchy policy applies at the destination.",
		),
		mcp.WithString("node_id",
			mcp.Required(),
			mcp.Description("Node id to move"),
		),
		mcp.WithString("new_parent_id",
			mcp.Required(),
			mcp.Description("Id of the new parent node"),
		),
	)
}

// Handle processes the node_move tool call.
func (t *MoveNodeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("node_id", "")
	newParentID := req.GetString("new_parent_id", "")
	if id == "" {
		return mcp.NewToolResultError("'node_id' is required"), nil
	}
	if newParentID == "" {
		return mcp.NewToolResultError("'new_parent_id' is required"), nil
	}

	snap := t.dispatcher.Snapshot()
	doc := snap.ActiveDocument()
	if doc == nil {
		return mcp.NewToolResultError("no active board — create or open one first"), nil
	}
	node := board.Find(doc.Root, id)
	if node == nil {
		return mcp.NewToolResultError(fmt.Sprintf("node %q not found on the active board", id)), nil
	}
	if node == doc.Root {
		return mcp.NewToolResultError("the root node cannot be moved"), nil
	}
	dest := board.Find(doc.Root, newParentID)
	if dest == nil {
		return mcp.NewToolResultError(fmt.Sprintf("destination node %q not found on the active board", newParentID)), nil
	}
	if board.Find(node, newParentID) != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot move %q inside its own subtree", node.Name)), nil
	}
	if !board.CanNest(dest.Type, node.Type, doc.Kind) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"a %s cannot go under a %s", node.Type, dest.Type,
		)), nil
	}

	if _, ok := t.dispatcher.Dispatch(registry.MoveNode{NodeID: id, NewParentID: newParentID}); !ok {
		return mcp.NewToolResultError("the move was rejected"), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Moved %s %q under %q.", node.Type, node.Name, dest.Name,
	)), nil
}

// ─── DeleteNodeTool ─────────────────────────────────────────────────────────

// DeleteNodeTool handles the node_delete MCP tool.
type DeleteNodeTool struct {
	dispatcher *registry.Dispatcher
}

// NewDeleteNodeTool creates a DeleteNodeTool with the given dispatcher.
func NewDeleteNodeTool(d *registry.Dispatcher) *DeleteNodeTool {
	return &DeleteNodeTool{dispatcher: d}
}

// Definition returns the MCP tool definition for node_delete.
func (t *DeleteNodeTool) Definition() mcp.Tool {
	return mcp.NewTool("node_delete",
		mcp.WithDescription(
			"Delete a node and its whole subtree from the active board. "+
				"Automation sub-boards linked anywhere inside the subtree are deleted too.",
		),
		mcp.WithString("node_id",
			mcp.Required(),
			mcp.Description("Node id to delete"),
		),
	)
}

// Handle processes the node_delete tool call.
func (t *DeleteNodeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("node_id", "")
	if id == "" {
		return mcp.NewToolResultError("'node_id' is required"), nil
	}

	snap := t.dispatcher.Snapshot()
	doc := snap.ActiveDocument()
	if doc == nil {
		return mcp.NewToolResultError("no active board — create or open one first"), nil
	}
	node := board.Find(doc.Root, id)
	if node == nil {
		return mcp.NewToolResultError(fmt.Sprintf("node %q not found on the active board", id)), nil
	}
	if node == doc.Root {
		return mcp.NewToolResultError("the root node cannot be deleted; delete the board instead"), nil
	}

	removed := board.Count(node)
	next, ok := t.dispatcher.Dispatch(registry.DeleteNode{NodeID: id})
	if !ok {
		return mcp.NewToolResultError("the deletion was rejected"), nil
	}

	msg := fmt.Sprintf("Deleted %s %q (%d node(s) removed)", node.Type, node.Name, removed)
	if boards := len(snap.Documents) - len(next.Documents); boards > 0 {
		msg += fmt.Sprintf(" and %d linked sub-board(s)", boards)
	}
	return mcp.NewToolResultText(msg + "."), nil
}
