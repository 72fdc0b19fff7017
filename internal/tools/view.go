package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── SelectNodeTool ─────────────────────────────────────────────────────────

// SelectNodeTool handles the view_select MCP tool.
type SelectNodeTool struct {
	dispatcher *registry.Dispatcher
}

// NewSelectNodeTool creates a SelectNodeTool with the given dispatcher.
func NewSelectNodeTool(d *registry.Dispatcher) *SelectNodeTool {
	return &SelectNodeTool{dispatcher: d}
}

// Definition returns the MCP tool definition for view_select.
func (t *SelectNodeTool) Definition() mcp.Tool {
	return mcp.NewTool("view_select",
		mcp.WithDescription(
			"Select a node on the active board, or clear the selection. "+
				"The selected node is the default parent for node_add.",
		),
		mcp.WithString("node_id",
			mcp.Description("Node id to select; omit to clear the selection"),
		),
	)
}

// Handle processes the view_select tool call.
func (t *SelectNodeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := t.dispatcher.Snapshot()
	doc := snap.ActiveDocument()
	if doc == nil {
		return mcp.NewToolResultError("no active board — create or open one first"), nil
	}

	id := req.GetString("node_id", "")
	if id != "" && board.Find(doc.Root, id) == nil {
		return mcp.NewToolResultError(fmt.Sprintf("node %q not found on the active board", id)), nil
	}

	next, ok := t.dispatcher.Dispatch(registry.SelectNode{NodeID: id})
	if !ok {
		return mcp.NewToolResultText("Selection unchanged."), nil
	}
	if id == "" {
		return mcp.NewToolResultText("Selection cleared."), nil
	}

	n := board.Find(next.ActiveDocument().Root, id)
	return mcp.NewToolResultText(fmt.Sprintf("Selected %s %q.", n.Type, n.Name)), nil
}

// ─── DrillTool ──────────────────────────────────────────────────────────────

// DrillTool handles the view_drill MCP tool.
type DrillTool struct {
	dispatcher *registry.Dispatcher
}

// NewDrillTool creates a DrillTool with the given dispatcher.
func NewDrillTool(d *registry.Dispatcher) *DrillTool {
	return &DrillTool{dispatcher: d}
}

// Definition returns the MCP tool definition for view_drill.
func (t *DrillTool) Definition() mcp.Tool {
	return mcp.NewTool("view_drill",
		mcp.WithDescription(
			"Drill the breadcrumb trail down into a node. Drilling into a node "+
				"already on the trail goes back to it instead of pushing a duplicate.",
		),
		mcp.WithString("node_id",
			mcp.Required(),
			mcp.Description("Node id to drill into"),
		),
	)
}

// Handle processes the view_drill tool call.
func (t *DrillTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("node_id", "")
	if id == "" {
		return mcp.NewToolResultError("'node_id' is required"), nil
	}

	snap := t.dispatcher.Snapshot()
	doc := snap.ActiveDocument()
	if doc == nil {
		return mcp.NewToolResultError("no active board — create or open one first"), nil
	}
	if board.Find(doc.Root, id) == nil {
		return mcp.NewToolResultError(fmt.Sprintf("node %q not found on the active board", id)), nil
	}

	next, ok := t.dispatcher.Dispatch(registry.DrillDown{NodeID: id})
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Already there. Trail: %s", board.TrailNames(doc.Root, snap.UI.BreadcrumbIDs),
		)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Trail: %s", board.TrailNames(doc.Root, next.UI.BreadcrumbIDs),
	)), nil
}

// ─── BreadcrumbTool ─────────────────────────────────────────────────────────

// BreadcrumbTool handles the view_breadcrumb MCP tool.
type BreadcrumbTool struct {
	dispatcher *registry.Dispatcher
}

// NewBreadcrumbTool creates a BreadcrumbTool with the given dispatcher.
func NewBreadcrumbTool(d *registry.Dispatcher) *BreadcrumbTool {
	return &BreadcrumbTool{dispatcher: d}
}

// Definition returns the MCP tool definition for view_breadcrumb.
func (t *BreadcrumbTool) Definition() mcp.Tool {
	return mcp.NewTool("view_breadcrumb",
		mcp.WithDescription(
			"Jump back to a node on the breadcrumb trail. The trail is cut after it.",
		),
		mcp.WithString("node_id",
			mcp.Required(),
			mcp.Description("Id of a node already on the trail"),
		),
	)
}

// Handle processes the view_breadcrumb tool call.
func (t *BreadcrumbTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("node_id", "")
	if id == "" {
		return mcp.NewToolResultError("'node_id' is required"), nil
	}

	snap := t.dispatcher.Snapshot()
	doc := snap.ActiveDocument()
	if doc == nil {
		return mcp.NewToolResultError("no active board — create or open one first"), nil
	}

	next, ok := t.dispatcher.Dispatch(registry.NavigateBreadcrumb{NodeID: id})
	if !ok {
		trail := snap.UI.BreadcrumbIDs
		if len(trail) > 0 && trail[len(trail)-1] == id {
			return mcp.NewToolResultText(fmt.Sprintf(
				"Already there. Trail: %s", board.TrailNames(doc.Root, trail),
			)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("node %q is not on the breadcrumb trail", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Trail: %s", board.TrailNames(doc.Root, next.UI.BreadcrumbIDs),
	)), nil
}
