package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// TreeTool handles the board_tree MCP tool.
type TreeTool struct {
	dispatcher *registry.Dispatcher
}

// NewTreeTool creates a TreeTool with the given dispatcher.
func NewTreeTool(d *registry.Dispatcher) *TreeTool {
	return &TreeTool{dispatcher: d}
}

// Definition returns the MCP tool definition for board_tree.
func (t *TreeTool) Definition() mcp.Tool {
	return mcp.NewTool("board_tree",
		mcp.WithDescription(
			"Render a board as a text tree, one node per line with its type. "+
				"Linked automation nodes carry a [sub-board] marker.",
		),
		mcp.WithString("board",
			mcp.Description("Board id or name (default: the active board)"),
		),
		mcp.WithString("node_id",
			mcp.Description("Render only the subtree under this node"),
		),
	)
}

// Handle processes the board_tree tool call.
func (t *TreeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := t.dispatcher.Snapshot()

	var doc *board.Document
	if ref := strings.TrimSpace(req.GetString("board", "")); ref != "" {
		var err error
		doc, err = snap.ResolveDocument(ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	} else {
		doc = snap.ActiveDocument()
		if doc == nil {
			return mcp.NewToolResultError("no active board — create or open one first"), nil
		}
	}

	root := doc.Root
	if id := req.GetString("node_id", ""); id != "" {
		root = board.Find(doc.Root, id)
		if root == nil {
			return mcp.NewToolResultError(fmt.Sprintf("node %q not found on board %q", id, doc.Name)), nil
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s board, %d nodes)\n\n", doc.Name, doc.Kind, board.Count(doc.Root))
	b.WriteString(board.Outline(root))
	return mcp.NewToolResultText(b.String()), nil
}
