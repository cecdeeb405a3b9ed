package chattools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"parley/internal/assistant"
)

// ChatTool handles the conversational_chat MCP tool.
type ChatTool struct {
	assistant *assistant.Assistant
}

// NewChatTool creates a ChatTool over the shared assistant.
func NewChatTool(a *assistant.Assistant) *ChatTool {
	return &ChatTool{assistant: a}
}

// Definition returns the MCP tool definition for conversational_chat.
func (t *ChatTool) Definition() mcp.Tool {
	return mcp.NewTool("conversational_chat",
		mcp.WithDescription(
			"Have a conversational chat with the AI assistant. Maintains context "+
				"and conversation history.",
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Your message or question for the AI assistant"),
		),
		mcp.WithString("session_id",
			mcp.Description("Optional session ID to maintain conversation context (default: default)"),
		),
	)
}

// Handle processes the conversational_chat tool call.
func (t *ChatTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := req.GetString("message", "")
	if message == "" {
		return mcp.NewToolResultError("'message' is required"), nil
	}
	sessionID := req.GetString("session_id", DefaultSessionID)

	result := t.assistant.Process(ctx, sessionID, "conversational: "+message)
	if !result.Success {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %s", result.Error)), nil
	}
	return mcp.NewToolResultText(result.Response), nil
}
