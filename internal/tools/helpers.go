// Package tools provides the MCP tool handlers for the whiteboard.
//
// Each tool handler follows the same pattern:
// - A struct with its dependencies (dispatcher, store) injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Handlers validate arguments at the boundary and translate them into
// registry actions. The reducer stays the single authority on what a
// board accepts; the checks here exist to turn a silent rejection into
// a message the caller can act on. Tool failures are returned as tool
// errors, never as Go errors.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// floatArg extracts a float argument, reporting whether it was present.
func floatArg(req mcp.CallToolRequest, key string) (float64, bool) {
	v, ok := req.GetArguments()[key].(float64)
	return v, ok
}
