package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// Detail level constants for read-heavy tools. Three verbosity levels
// enable progressive disclosure: summary for a quick glance, standard
// for day-to-day work, full for a complete dump.
const (
	detailSummary  = "summary"
	detailStandard = "standard"
	detailFull     = "full"
)

// parseDetailLevel normalizes a detail_level string, defaulting to
// "standard" for empty or unrecognized values.
func parseDetailLevel(s string) string {
	switch s {
	case detailSummary, detailFull:
		return s
	default:
		return detailStandard
	}
}

// summaryFooter is appended to summary-mode responses to guide the AI
// toward fetching more detail only when needed.
const summaryFooter = "\n---\n💡 Use detail_level: standard or full for more detail."

// StatusTool handles the board_status MCP tool.
type StatusTool struct {
	dispatcher *registry.Dispatcher
}

// NewStatusTool creates a StatusTool with the given dispatcher.
func NewStatusTool(d *registry.Dispatcher) *StatusTool {
	return &StatusTool{dispatcher: d}
}

// Definition returns the MCP tool definition for board_status.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("board_status",
		mcp.WithDescription(
			"Describe the current workspace: the active board, selection, breadcrumb trail, "+
				"view state, and node counts.",
		),
		mcp.WithString("detail_level",
			mcp.Description("Verbosity: summary (one glance), standard (default), full (adds the tree and palette)"),
			mcp.Enum(detailSummary, detailStandard, detailFull),
		),
	)
}

// Handle processes the board_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := t.dispatcher.Snapshot()
	level := parseDetailLevel(req.GetString("detail_level", ""))

	if len(snap.Documents) == 0 {
		return mcp.NewToolResultText("Empty workspace: no boards yet. Use board_create or board_import to start one."), nil
	}

	doc := snap.ActiveDocument()
	total := 0
	for _, d := range snap.Documents {
		total += board.Count(d.Root)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active board: %q (%s, %d nodes)\n", doc.Name, doc.Kind, board.Count(doc.Root))
	fmt.Fprintf(&b, "Workspace: %d board(s), %d node(s) total\n", len(snap.Documents), total)
	if snap.UI.SelectedNodeID != "" {
		if n := board.Find(doc.Root, snap.UI.SelectedNodeID); n != nil {
			fmt.Fprintf(&b, "Selected: %s %q (id: %s)\n", n.Type, n.Name, n.ID)
		}
	} else {
		b.WriteString("Selected: nothing\n")
	}

	if level == detailSummary {
		b.WriteString(summaryFooter)
		return mcp.NewToolResultText(b.String()), nil
	}

	fmt.Fprintf(&b, "Trail: %s\n", board.TrailNames(doc.Root, snap.UI.BreadcrumbIDs))
	fmt.Fprintf(&b, "View: zoom %.2f, pan (%.1f, %.1f), %s layout\n",
		snap.UI.Zoom, snap.UI.Pan.X, snap.UI.Pan.Y, doc.LayoutMode)
	if line := board.CountSummary(board.CountByType(doc.Root)); line != "" {
		fmt.Fprintf(&b, "Nodes: %s\n", line)
	}

	linked := 0
	board.Walk(doc.Root, func(n *board.Node) {
		if n.AutomationBoardID != "" {
			linked++
		}
	})
	if linked > 0 {
		fmt.Fprintf(&b, "Sub-boards linked from here: %d\n", linked)
	}

	if level != detailFull {
		return mcp.NewToolResultText(b.String()), nil
	}

	b.WriteString("\nTree:\n")
	b.WriteString(board.Outline(doc.Root))

	b.WriteString("\nLayer colours:\n")
	for _, name := range board.NodeTypeNames() {
		if c, ok := doc.LayerColors[board.NodeType(name)]; ok {
			fmt.Fprintf(&b, "  %-13s %s\n", name, c)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
