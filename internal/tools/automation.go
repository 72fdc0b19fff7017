package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── OpenAutomationTool ─────────────────────────────────────────────────────

// OpenAutomationTool handles the automation_open MCP tool.
type OpenAutomationTool struct {
	dispatcher *registry.Dispatcher
}

// NewOpenAutomationTool creates an OpenAutomationTool with the given dispatcher.
func NewOpenAutomationTool(d *registry.Dispatcher) *OpenAutomationTool {
	return &OpenAutomationTool{dispatcher: d}
}

// Definition returns the MCP tool definition for automation_open.
func (t *OpenAutomationTool) Definition() mcp.Tool {
	return mcp.NewTool("automation_open",
		mcp.WithDescription(
			"Open the sub-board behind an automation node, creating and linking it first when none exists. "+
				"The sub-board becomes the active board.",
		),
		mcp.WithString("node_id",
			mcp.Required(),
			mcp.Description("Automation node id on the active board"),
		),
	)
}

// Handle processes the automation_open tool call.
func (t *OpenAutomationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	if node.Type != board.TypeAutomation {
		return mcp.NewToolResultError(fmt.Sprintf(
			"node %q is a %s; only automation nodes have sub-boards", node.Name, node.Type,
		)), nil
	}

	existed := node.AutomationBoardID != "" && snap.Document(node.AutomationBoardID) != nil

	next, ok := t.dispatcher.Dispatch(registry.OpenAutomationBoard{NodeID: id})
	if !ok {
		return mcp.NewToolResultError("the sub-board could not be opened"), nil
	}

	sub := next.ActiveDocument()
	verb := "Created and opened"
	if existed {
		verb = "Opened"
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"%s sub-board %q (id: %s). Use automation_return to go back.", verb, sub.Name, sub.ID,
	)), nil
}

// ─── ReturnTool ─────────────────────────────────────────────────────────────

// ReturnTool handles the automation_return MCP tool.
type ReturnTool struct {
	dispatcher *registry.Dispatcher
}

// NewReturnTool creates a ReturnTool with the given dispatcher.
func NewReturnTool(d *registry.Dispatcher) *ReturnTool {
	return &ReturnTool{dispatcher: d}
}

// Definition returns the MCP tool definition for automation_return.
func (t *ReturnTool) Definition() mcp.Tool {
	return mcp.NewTool("automation_return",
		mcp.WithDescription(
			"Return from an automation sub-board to its parent board, selecting the originating automation node.",
		),
	)
}

// Handle processes the automation_return tool call.
func (t *ReturnTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := t.dispatcher.Snapshot()
	doc := snap.ActiveDocument()
	if doc == nil {
		return mcp.NewToolResultError("no active board"), nil
	}
	if doc.Kind != board.KindAutomation {
		return mcp.NewToolResultError(fmt.Sprintf("%q is not an automation sub-board", doc.Name)), nil
	}

	next, ok := t.dispatcher.Dispatch(registry.ReturnToParentBoard{})
	if !ok {
		return mcp.NewToolResultError("the parent board no longer exists; use board_open to switch boards"), nil
	}

	parent := next.ActiveDocument()
	msg := fmt.Sprintf("Back on %q", parent.Name)
	if next.UI.SelectedNodeID != "" {
		if n := board.Find(parent.Root, next.UI.SelectedNodeID); n != nil {
			msg += fmt.Sprintf(", automation node %q selected", n.Name)
		}
	}
	return mcp.NewToolResultText(msg + "."), nil
}
