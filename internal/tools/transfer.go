package tools

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/blueprint"
	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/ratelimit"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── ImportTool ─────────────────────────────────────────────────────────────

// ImportTool handles the board_import MCP tool.
type ImportTool struct {
	dispatcher *registry.Dispatcher
	limiter    *ratelimit.Limiter
}

// NewImportTool creates an ImportTool guarded by the given limiter.
// A nil limiter disables rate limiting.
func NewImportTool(d *registry.Dispatcher, l *ratelimit.Limiter) *ImportTool {
	return &ImportTool{dispatcher: d, limiter: l}
}

// Definition returns the MCP tool definition for board_import.
func (t *ImportTool) Definition() mcp.Tool {
	return mcp.NewTool("board_import",
		mcp.WithDescription(
			"Import a board and make it active. format=template takes an organisation blueprint "+
				"(name, departments, teams, workflows...) and builds a full board from it; "+
				"format=document takes a previously exported board JSON. Imports are rate limited.",
		),
		mcp.WithString("payload",
			mcp.Required(),
			mcp.Description("The JSON to import"),
		),
		mcp.WithString("format",
			mcp.Description("Payload kind"),
			mcp.Enum("template", "document"),
		),
		mcp.WithString("created_by",
			mcp.Description("Author recorded on the board (template imports)"),
		),
	)
}

// Handle processes the board_import tool call.
func (t *ImportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload := req.GetString("payload", "")
	if payload == "" {
		return mcp.NewToolResultError("'payload' is required"), nil
	}

	if t.limiter != nil {
		if d := t.limiter.Allow("board_import"); !d.Allowed {
			wait := int(math.Ceil(d.RetryAfter.Seconds()))
			if wait < 1 {
				wait = 1
			}
			return mcp.NewToolResultError(fmt.Sprintf(
				"import rate limit exceeded, retry in about %d second(s)", wait,
			)), nil
		}
	}

	var doc *board.Document
	switch format := req.GetString("format", "template"); format {
	case "template":
		bp, err := blueprint.Parse([]byte(payload))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		doc, err = blueprint.Build(bp, req.GetString("created_by", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	case "document":
		var err error
		doc, err = board.ImportDocument([]byte(payload))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if t.dispatcher.Snapshot().Document(doc.ID) != nil {
			return mcp.NewToolResultError(fmt.Sprintf(
				"a board with id %q already exists; delete it first or change the payload id", doc.ID,
			)), nil
		}
	default:
		return mcp.NewToolResultError("'format' must be template or document"), nil
	}

	next, ok := t.dispatcher.Dispatch(registry.AdoptDocument{Doc: doc})
	if !ok {
		return mcp.NewToolResultError("the board could not be adopted"), nil
	}

	adopted := next.ActiveDocument()
	return mcp.NewToolResultText(fmt.Sprintf(
		"Imported board %q (id: %s): %s.", adopted.Name, adopted.ID, board.CountSummary(board.CountByType(adopted.Root)),
	)), nil
}

// ─── ExportTool ─────────────────────────────────────────────────────────────

// ExportTool handles the board_export MCP tool.
type ExportTool struct {
	dispatcher *registry.Dispatcher
}

// NewExportTool creates an ExportTool with the given dispatcher.
func NewExportTool(d *registry.Dispatcher) *ExportTool {
	return &ExportTool{dispatcher: d}
}

// Definition returns the MCP tool definition for board_export.
func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("board_export",
		mcp.WithDescription(
			"Export a board as indented JSON. The payload round-trips through board_import with format=document.",
		),
		mcp.WithString("board",
			mcp.Description("Board id or name (default: the active board)"),
		),
	)
}

// Handle processes the board_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	data, err := board.ExportDocument(doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
