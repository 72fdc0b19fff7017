package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the board-review MCP prompt.
// It instructs the AI to inspect a board and point out structural gaps.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("board-review",
		mcp.WithPromptDescription(
			"Review a board for structural gaps: empty departments, teams without "+
				"a lead, workflows without processes, automations that were never "+
				"opened. Ends with concrete suggestions.",
		),
		mcp.WithArgument("board",
			mcp.ArgumentDescription("Board id or name to review (default: the active board)"),
		),
	)
}

// Handle processes the board-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	scope := "the active board"
	if args := req.Params.Arguments; args != nil {
		if b, ok := args["board"]; ok && b != "" {
			scope = "the board '" + b + "'"
		}
	}

	return &mcp.GetPromptResult{
		Description: "Board structure review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please review " + scope + " for me.\n\n" +
						"Steps:\n" +
						"1. Run `board_status` with detail_level='full' and `board_tree` to see the structure\n" +
						"2. Point out gaps: departments with no teams, teams with no lead or members, " +
						"workflows with no processes, automation nodes whose sub-board was never opened\n" +
						"3. Check the naming for consistency and flag duplicates\n" +
						"4. Give me a short, prioritized list of suggestions\n" +
						"5. Offer to apply the fixes with `node_add`, `node_move`, or `node_update` — " +
						"but only after I confirm",
				),
			},
		},
	}, nil
}
