package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/swarmboard/internal/board"
	"github.com/HendryAvila/swarmboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// CanvasTool handles the board_canvas MCP tool.
type CanvasTool struct {
	dispatcher *registry.Dispatcher
}

// NewCanvasTool creates a CanvasTool with the given dispatcher.
func NewCanvasTool(d *registry.Dispatcher) *CanvasTool {
	return &CanvasTool{dispatcher: d}
}

// Definition returns the MCP tool definition for board_canvas.
func (t *CanvasTool) Definition() mcp.Tool {
	return mcp.NewTool("board_canvas",
		mcp.WithDescription(
			"Adjust the canvas of the active board: zoom, pan, layout orientation, "+
				"layer colours, or batch node positions.",
		),
		mcp.WithString("op",
			mcp.Required(),
			mcp.Description("What to adjust"),
			mcp.Enum("zoom", "pan", "layout", "color", "positions"),
		),
		mcp.WithNumber("zoom",
			mcp.Description("Zoom factor for op=zoom (1 = 100%, must be positive)"),
		),
		mcp.WithNumber("x",
			mcp.Description("Pan x offset for op=pan"),
		),
		mcp.WithNumber("y",
			mcp.Description("Pan y offset for op=pan"),
		),
		mcp.WithString("mode",
			mcp.Description("Layout for op=layout: vertical or horizontal"),
		),
		mcp.WithString("type",
			mcp.Description("Node type whose layer colour to change for op=color"),
		),
		mcp.WithString("color",
			mcp.Description("CSS colour for op=color (e.g. '#FF8800')"),
		),
		mcp.WithString("positions",
			mcp.Description(`JSON object mapping node ids to coordinates for op=positions, e.g. {"node-1":{"x":10,"y":20}}`),
		),
	)
}

// Handle processes the board_canvas tool call.
func (t *CanvasTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := t.dispatcher.Snapshot()
	if snap.ActiveDocument() == nil {
		return mcp.NewToolResultError("no active board — create or open one first"), nil
	}

	switch op := req.GetString("op", ""); op {
	case "zoom":
		zoom, present := floatArg(req, "zoom")
		if !present {
			return mcp.NewToolResultError("'zoom' is required for op=zoom"), nil
		}
		next, ok := t.dispatcher.Dispatch(registry.SetZoom{Zoom: zoom})
		if !ok {
			if snap.UI.Zoom == zoom {
				return mcp.NewToolResultText(fmt.Sprintf("Zoom already at %.2f.", zoom)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("zoom %v was rejected; it must be a positive finite number", zoom)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Zoom set to %.2f.", next.UI.Zoom)), nil

	case "pan":
		x, xok := floatArg(req, "x")
		y, yok := floatArg(req, "y")
		if !xok || !yok {
			return mcp.NewToolResultError("'x' and 'y' are required for op=pan"), nil
		}
		t.dispatcher.Dispatch(registry.SetPan{Pan: board.Position{X: x, Y: y}})
		return mcp.NewToolResultText(fmt.Sprintf("Pan set to (%.1f, %.1f).", x, y)), nil

	case "layout":
		mode := board.LayoutMode(req.GetString("mode", ""))
		if err := board.ValidateLayoutMode(mode); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t.dispatcher.Dispatch(registry.SetLayoutMode{Mode: mode})
		return mcp.NewToolResultText(fmt.Sprintf("Layout set to %s.", mode)), nil

	case "color":
		typ := board.NodeType(req.GetString("type", ""))
		if err := board.ValidateNodeType(typ); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		color := strings.TrimSpace(req.GetString("color", ""))
		if color == "" {
			return mcp.NewToolResultError("'color' is required for op=color"), nil
		}
		t.dispatcher.Dispatch(registry.SetLayerColor{Type: typ, Color: color})
		return mcp.NewToolResultText(fmt.Sprintf("Layer %s coloured %s.", typ, color)), nil

	case "positions":
		raw := req.GetString("positions", "")
		if raw == "" {
			return mcp.NewToolResultError("'positions' is required for op=positions"), nil
		}
		var positions map[string]board.Position
		if err := json.Unmarshal([]byte(raw), &positions); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid positions payload: %v", err)), nil
		}
		if len(positions) == 0 {
			return mcp.NewToolResultError("the positions payload is empty"), nil
		}
		if _, ok := t.dispatcher.Dispatch(registry.SetPositions{Positions: positions}); !ok {
			return mcp.NewToolResultText("Positions unchanged (unknown ids or identical coordinates)."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Applied positions for %d node(s).", len(positions))), nil

	default:
		return mcp.NewToolResultError("'op' must be one of: zoom, pan, layout, color, positions"), nil
	}
}
