// Package prompts implements MCP prompt handlers for the whiteboard.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the board-start MCP prompt.
// It guides the AI to set up a first organisation board.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("board-start",
		mcp.WithPromptDescription(
			"Map out an organisation on a fresh board. "+
				"This walks you from an empty workspace to a structured chart of "+
				"departments, teams, people, and workflows.",
		),
		mcp.WithArgument("board_name",
			mcp.ArgumentDescription("Name for the board (usually the organisation's name)"),
		),
	)
}

// Handle processes the board-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	boardName := "My Organisation"
	if args := req.Params.Arguments; args != nil {
		if name, ok := args["board_name"]; ok && name != "" {
			boardName = name
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Map out organisation: %s", boardName),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to map out the organisation '%s' on a whiteboard.\n\n"+
						"Please:\n"+
						"1. Run `board_create` with name='%s'\n"+
						"2. Ask me which departments the organisation has, then add each with `node_add` (type=department)\n"+
						"3. For each department, ask about its teams, people, and tools and add them the same way\n"+
						"4. Ask whether any workflows should be captured; add them with type=workflow and drill into the "+
						"process > agent > automation chain where it applies\n"+
						"5. Finish with `board_tree` so I can see the whole structure\n\n"+
						"If I already know the full structure, offer to take it as one description and build it "+
						"with `board_import` instead of step-by-step questions.",
					boardName, boardName,
				)),
			},
		},
	}, nil
}
