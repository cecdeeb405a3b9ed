// Package prompts implements the MCP prompt handlers for the assistant.
//
// MCP prompts are user-triggered templates (like slash commands) that
// pre-fill a mode-prefixed request for the assistant. Unlike tools
// (which the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StarterPrompt handles the conversation_starter MCP prompt.
type StarterPrompt struct{}

// NewStarterPrompt creates a StarterPrompt.
func NewStarterPrompt() *StarterPrompt {
	return &StarterPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StarterPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("conversation_starter",
		mcp.WithPromptDescription(
			"Start a friendly conversation with the AI assistant",
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("Topic to discuss"),
		),
	)
}

// Handle processes the conversation_starter prompt request.
func (p *StarterPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := "general topics"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["topic"]; ok && v != "" {
			topic = v
		}
	}

	content := fmt.Sprintf(
		"conversational: Let's have a friendly conversation about %s. "+
			"What would you like to know or discuss?", topic,
	)

	return &mcp.GetPromptResult{
		Description: "Start a conversation",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(content),
			},
		},
	}, nil
}
