package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── CreateBoardTool ────────────────────────────────────────────────────────

// CreateBoardTool handles the board_create MCP tool.
type CreateBoardTool struct {
	dispatcher *registry.Dispatcher
}

// NewCreateBoardTool creates a CreateBoardTool with the given dispatcher.
func NewCreateBoardTool(d *registry.Dispatcher) *CreateBoardTool {
	return &CreateBoardTool{dispatcher: d}
}

// Definition returns the MCP tool definition for board_create.
func (t *CreateBoardTool) Definition() mcp.Tool {
	return mcp.NewTool("board_create",
		mcp.WithDescription(
			"Create a new organisation board and make it the active one. "+
				"The board starts with a single organisation root node named after it.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Board name (e.g. 'Acme Corp')"),
		),
		mcp.WithString("description",
			mcp.Description("What this board maps out"),
		),
		mcp.WithString("created_by",
			mcp.Description("Author recorded on the board"),
		),
	)
}

// Handle processes the board_create tool call.
func (t *CreateBoardTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	next, ok := t.dispatcher.Dispatch(registry.CreateDocument{
		Name:        name,
		Description: req.GetString("description", ""),
		CreatedBy:   req.GetString("created_by", ""),
	})
	if !ok {
		return mcp.NewToolResultError("the board was not created"), nil
	}

	doc := next.ActiveDocument()
	return mcp.NewToolResultText(fmt.Sprintf(
		"Board created and activated: %q (id: %s, root node: %s)", doc.Name, doc.ID, doc.Root.ID,
	)), nil
}

// ─── ListBoardsTool ─────────────────────────────────────────────────────────

// ListBoardsTool handles the board_list MCP tool.
type ListBoardsTool struct {
	dispatcher *registry.Dispatcher
}

// NewListBoardsTool creates a ListBoardsTool with the given dispatcher.
func NewListBoardsTool(d *registry.Dispatcher) *ListBoardsTool {
	return &ListBoardsTool{dispatcher: d}
}

// Definition returns the MCP tool definition for board_list.
func (t *ListBoardsTool) Definition() mcp.Tool {
	return mcp.NewTool("board_list",
		mcp.WithDescription(
			"List every board in the workspace with its id, kind, and node count. The active board is marked with *.",
		),
	)
}

// Handle processes the board_list tool call.
func (t *ListBoardsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := t.dispatcher.Snapshot()
	if len(snap.Documents) == 0 {
		return mcp.NewToolResultText("No boards yet. Use board_create or board_import to start one."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d board(s):\n\n", len(snap.Documents))
	for _, d := range snap.Documents {
		marker := "  "
		if d.ID == snap.ActiveDocumentID {
			marker = "* "
		}
		fmt.Fprintf(&b, "%s%s  %q (%s, %d nodes)\n", marker, d.ID, d.Name, d.Kind, board.Count(d.Root))
		if d.Kind == board.KindAutomation && d.ParentBoardID != "" {
			fmt.Fprintf(&b, "      sub-board of %s\n", d.ParentBoardID)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ─── OpenBoardTool ──────────────────────────────────────────────────────────

// OpenBoardTool handles the board_open MCP tool.
type OpenBoardTool struct {
	dispatcher *registry.Dispatcher
}

// NewOpenBoardTool creates an OpenBoardTool with the given dispatcher.
func NewOpenBoardTool(d *registry.Dispatcher) *OpenBoardTool {
	return &OpenBoardTool{dispatcher: d}
}

// Definition returns the MCP tool definition for board_open.
func (t *OpenBoardTool) Definition() mcp.Tool {
	return mcp.NewTool("board_open",
		mcp.WithDescription(
			"Switch the active board. Opening a board resets the view to its root.",
		),
		mcp.WithString("board",
			mcp.Required(),
			mcp.Description("Board id or exact board name"),
		),
	)
}

// Handle processes the board_open tool call.
func (t *OpenBoardTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := strings.TrimSpace(req.GetString("board", ""))
	if ref == "" {
		return mcp.NewToolResultError("'board' is required"), nil
	}

	doc, err := t.dispatcher.Snapshot().ResolveDocument(ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Opening the already-active board is a no-op, which still deserves
	// a success message.
	next, ok := t.dispatcher.Dispatch(registry.OpenDocument{ID: doc.ID})
	if !ok && next.ActiveDocumentID != doc.ID {
		return mcp.NewToolResultError(fmt.Sprintf("board %q could not be opened", ref)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Active board: %q (id: %s, %d nodes)", doc.Name, doc.ID, board.Count(doc.Root),
	)), nil
}

// ─── DeleteBoardTool ────────────────────────────────────────────────────────

// DeleteBoardTool handles the board_delete MCP tool.
type DeleteBoardTool struct {
	dispatcher *registry.Dispatcher
}

// NewDeleteBoardTool creates a DeleteBoardTool with the given dispatcher.
func NewDeleteBoardTool(d *registry.Dispatcher) *DeleteBoardTool {
	return &DeleteBoardTool{dispatcher: d}
}

// Definition returns the MCP tool definition for board_delete.
func (t *DeleteBoardTool) Definition() mcp.Tool {
	return mcp.NewTool("board_delete",
		mcp.WithDescription(
			"Delete a board. Automation sub-boards hanging off it are deleted with it.",
		),
		mcp.WithString("board",
			mcp.Required(),
			mcp.Description("Board id or exact board name"),
		),
	)
}

// Handle processes the board_delete tool call.
func (t *DeleteBoardTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := strings.TrimSpace(req.GetString("board", ""))
	if ref == "" {
		return mcp.NewToolResultError("'board' is required"), nil
	}

	snap := t.dispatcher.Snapshot()
	doc, err := snap.ResolveDocument(ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	next, ok := t.dispatcher.Dispatch(registry.DeleteDocument{ID: doc.ID})
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("board %q was not deleted", ref)), nil
	}

	msg := fmt.Sprintf("Board %q deleted", doc.Name)
	if removed := len(snap.Documents) - len(next.Documents); removed > 1 {
		msg += fmt.Sprintf(" along with %d linked sub-board(s)", removed-1)
	}
	if active := next.ActiveDocument(); active != nil && next.ActiveDocumentID != snap.ActiveDocumentID {
		msg += fmt.Sprintf(". Active board is now %q", active.Name)
	}
	return mcp.NewToolResultText(msg + "."), nil
}
