package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Flusher pushes pending snapshot writes to disk so a read that goes
// through SQLite sees the latest board state.
type Flusher interface {
	Flush()
}

// ─── SearchTool ─────────────────────────────────────────────────────────────

// SearchTool handles the board_search MCP tool.
type SearchTool struct {
	store *storage.Store
	saver Flusher
}

// NewSearchTool creates a SearchTool over the given store. The saver may
// be nil when writes are synchronous.
func NewSearchTool(store *storage.Store, saver Flusher) *SearchTool {
	return &SearchTool{store: store, saver: saver}
}

// Definition returns the MCP tool definition for board_search.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("board_search",
		mcp.WithDescription(
			"Full-text search across node names and descriptions on every saved board.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search terms — natural language or keywords"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10)"),
		),
	)
}

// Handle processes the board_search tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	if t.saver != nil {
		t.saver.Flush()
	}

	hits, err := t.store.SearchNodes(query, intArg(req, "limit", 10))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(hits) == 0 {
		return mcp.NewToolResultText("No nodes match the query."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d node(s):\n\n", len(hits))
	for i, h := range hits {
		fmt.Fprintf(&b, "[%d] %s %q on board %q\n    node id: %s | board id: %s\n",
			i+1, h.Type, h.Name, h.BoardName, h.NodeID, h.BoardID)
		if h.Description != "" {
			fmt.Fprintf(&b, "    %s\n", h.Description)
		}
		b.WriteByte('\n')
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ─── HistoryTool ────────────────────────────────────────────────────────────

// HistoryTool handles the board_history MCP tool.
type HistoryTool struct {
	store *storage.Store
}

// NewHistoryTool creates a HistoryTool over the given store.
func NewHistoryTool(store *storage.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for board_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("board_history",
		mcp.WithDescription(
			"Show the most recent board actions, newest first.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Max entries (default: 20)"),
		),
	)
}

// Handle processes the board_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := t.store.RecentHistory(intArg(req, "limit", 20))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history read failed: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No actions recorded yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Last %d action(s), newest first:\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s", e.CreatedAt, e.Action)
		if e.Detail != "" {
			fmt.Fprintf(&b, ": %s", e.Detail)
		}
		if e.BoardID != "" {
			fmt.Fprintf(&b, " (board %s)", e.BoardID)
		}
		b.WriteByte('\n')
	}
	return mcp.NewToolResultText(b.String()), nil
}
