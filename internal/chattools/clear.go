package chattools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"parley/internal/assistant"
)

// ClearTool handles the clear_conversation_history MCP tool.
type ClearTool struct {
	assistant *assistant.Assistant
}

// NewClearTool creates a ClearTool.
func NewClearTool(a *assistant.Assistant) *ClearTool {
	return &ClearTool{assistant: a}
}

// Definition returns the MCP tool definition for clear_conversation_history.
func (t *ClearTool) Definition() mcp.Tool {
	return mcp.NewTool("clear_conversation_history",
		mcp.WithDescription(
			"Clear the conversation history for a specific session.",
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID to clear history for (default: default)"),
		),
	)
}

// Handle processes the clear_conversation_history tool call. Clearing
// an unknown session is a no-op and still reports success.
func (t *ClearTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", DefaultSessionID)
	t.assistant.ClearHistory(sessionID)
	return mcp.NewToolResultText(fmt.Sprintf("Cleared conversation history for session %q", sessionID)), nil
}
