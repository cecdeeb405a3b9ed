package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ImprovePrompt handles the text_improvement MCP prompt.
type ImprovePrompt struct{}

// NewImprovePrompt creates an ImprovePrompt.
func NewImprovePrompt() *ImprovePrompt {
	return &ImprovePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ImprovePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("text_improvement",
		mcp.WithPromptDescription(
			"Template for improving text quality",
		),
		mcp.WithArgument("text",
			mcp.ArgumentDescription("Text to improve"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("style",
			mcp.ArgumentDescription("Writing style (formal, casual, professional)"),
		),
	)
}

// Handle processes the text_improvement prompt request.
func (p *ImprovePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	var text, style string
	if args := req.Params.Arguments; args != nil {
		text = args["text"]
		style = args["style"]
	}

	content := "rephrasing: [Please provide text to improve]"
	if text != "" {
		content = "rephrasing: " + text
	}

	description := "Improve text quality"
	if style != "" {
		description = fmt.Sprintf("Improve text quality in a %s style", style)
	}

	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(content),
			},
		},
	}, nil
}
